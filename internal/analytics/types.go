package analytics

import (
	"time"

	"github.com/yamboly/tutor-dashboard-service/internal/models"
)

// Trend classifies how recent performance on a topic compares with earlier
// performance. Values are the labels the report renders verbatim.
type Trend string

const (
	TrendImproving    Trend = "mejorando"
	TrendWorsening    Trend = "empeorando"
	TrendStable       Trend = "estable"
	TrendInsufficient Trend = "insuficiente"
)

// RiskTier is the discrete priority bucket derived from the risk score.
type RiskTier string

const (
	RiskHigh   RiskTier = "Alto"
	RiskMedium RiskTier = "Medio"
	RiskLow    RiskTier = "Bajo"
)

// TopicAggregate holds the derived per-topic statistics, enriched with trend,
// risk and recommendations. Rates are fractions in [0,1].
type TopicAggregate struct {
	Topic           string   `json:"topic"`
	TotalSuccess    int      `json:"total_success"`
	TotalErrors     int      `json:"total_errors"`
	TotalAttempts   int      `json:"total_attempts"`
	AttemptsCount   int      `json:"attempts_count"`
	AvgDifficulty   float64  `json:"avg_difficulty"`
	MaxDifficulty   int      `json:"max_difficulty"`
	MinDifficulty   int      `json:"min_difficulty"`
	DifficultyRange int      `json:"difficulty_range"`
	SuccessRate     float64  `json:"success_rate"`
	ErrorRate       float64  `json:"error_rate"`
	TemporalTrend   Trend    `json:"temporal_trend"`
	Risk            RiskTier `json:"risk"`
	RiskScore       int      `json:"risk_score"`
	WeightedScore   float64  `json:"weighted_score"`
	Recommendations []string `json:"recommendations"`
}

// CourseAggregate holds the derived statistics for one subscribed course.
// SuccessRate is a percentage (0-100) because every consumer of the course
// table renders it that way. HasData is false when the course has no attempt
// rows at all; no other metric is meaningful then.
type CourseAggregate struct {
	CourseID           string   `json:"course_id"`
	CourseName         string   `json:"course_name"`
	HasData            bool     `json:"has_data"`
	SuccessRate        float64  `json:"success_rate"`
	AvgDifficulty      float64  `json:"avg_difficulty"`
	UniqueTopics       int      `json:"unique_topics"`
	TotalAttempts      int      `json:"total_attempts"`
	ExercisesCount     int      `json:"exercises_count"`
	CompletedExercises int      `json:"completed_exercises"`
	DaysSincePractice  *int     `json:"days_since_practice"`
	ChatSessions       int      `json:"chat_sessions"`
	Recommendations    []string `json:"recommendations"`
}

// StudyHabits captures streak and session cadence derived from exercise
// creation dates.
type StudyHabits struct {
	CurrentStreak int    `json:"current_streak"`
	Frequency     string `json:"frequency"`
	Consistency   string `json:"consistency"`
}

// Summary is the block of top-level scalars every report opens with.
type Summary struct {
	TotalSessions      int     `json:"total_sessions"`
	TotalExercises     int     `json:"total_exercises"`
	CompletedExercises int     `json:"completed_exercises"`
	CompletionRate     float64 `json:"completion_rate"` // percentage
}

// Report is the full enriched output of one engine invocation. When
// HasSufficientData is false the only populated field is Summary; the
// presentation layer must render an explicit insufficient-data notice.
type Report struct {
	UserID            string            `json:"user_id"`
	GeneratedAt       time.Time         `json:"generated_at"`
	HasSufficientData bool              `json:"has_sufficient_data"`
	Summary           Summary           `json:"summary"`
	Habits            StudyHabits       `json:"habits"`
	Topics            []TopicAggregate  `json:"topics"`
	WorstTopics       []TopicAggregate  `json:"worst_topics"`
	BestTopics        []TopicAggregate  `json:"best_topics"`
	TopicsByRisk      map[RiskTier][]TopicAggregate `json:"topics_by_risk"`
	PracticedCourses  []CourseAggregate `json:"practiced_courses"`
	UnpracticedCourses []CourseAggregate `json:"unpracticed_courses"`
	UnpracticedAdvice []string          `json:"unpracticed_advice,omitempty"`
	GeneralAdvice     []string          `json:"general_advice"`
}

// Snapshot is the fully materialized input for one report generation. The
// engine never reaches back to storage; callers fetch everything up front.
type Snapshot struct {
	UserID        string
	Attempts      []models.AttemptRecord
	Exercises     []models.Exercise
	ChatSessions  []models.ChatSession
	Subscriptions []models.Subscription
	Subjects      []models.Subject
}
