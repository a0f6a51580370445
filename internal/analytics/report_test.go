package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yamboly/tutor-dashboard-service/internal/models"
)

func fixedEngine(now time.Time) *Engine {
	return NewEngineAt(func() time.Time { return now })
}

func TestBuildReportInsufficientData(t *testing.T) {
	now := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	engine := fixedEngine(now)

	report := engine.BuildReport(Snapshot{UserID: "u1"})
	require.NotNil(t, report)
	assert.False(t, report.HasSufficientData)
	assert.Empty(t, report.Topics)
	assert.Equal(t, now, report.GeneratedAt)
}

func TestBuildReportSummary(t *testing.T) {
	now := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	engine := fixedEngine(now)

	snap := Snapshot{
		UserID: "u1",
		Attempts: []models.AttemptRecord{
			record("A", 8, 2, 2),
		},
		Exercises: []models.Exercise{
			{Completed: true, CreatedAt: now},
			{Completed: true, CreatedAt: now},
			{CreatedAt: now},
			{CreatedAt: now},
		},
		ChatSessions: []models.ChatSession{{}, {}, {}},
	}

	report := engine.BuildReport(snap)
	assert.True(t, report.HasSufficientData)
	assert.Equal(t, 3, report.Summary.TotalSessions)
	assert.Equal(t, 4, report.Summary.TotalExercises)
	assert.Equal(t, 2, report.Summary.CompletedExercises)
	assert.InDelta(t, 50.0, report.Summary.CompletionRate, 1e-9)
}

func TestBuildReportRanksTopicsByUrgency(t *testing.T) {
	now := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	engine := fixedEngine(now)

	snap := Snapshot{
		UserID: "u1",
		Attempts: []models.AttemptRecord{
			record("dominado", 18, 2, 2),  // weighted ~0.13
			record("regular", 12, 8, 3),   // weighted ~0.32
			record("critico", 2, 18, 5),   // weighted ~0.65
			record("dudoso", 1, 3, 4),     // small sample, high urgency
		},
	}

	report := engine.BuildReport(snap)
	require.Len(t, report.Topics, 4)

	require.Len(t, report.WorstTopics, 3)
	assert.Equal(t, "critico", report.WorstTopics[0].Topic)

	require.Len(t, report.BestTopics, 2)
	assert.Equal(t, "dominado", report.BestTopics[0].Topic)

	// Every topic lands in exactly one risk bucket.
	var total int
	for _, group := range report.TopicsByRisk {
		total += len(group)
	}
	assert.Equal(t, len(report.Topics), total)
}

func TestBuildReportRiskGroupOrdering(t *testing.T) {
	now := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	engine := fixedEngine(now)

	snap := Snapshot{
		UserID: "u1",
		Attempts: []models.AttemptRecord{
			record("facil-uno", 19, 1, 1),
			record("facil-dos", 16, 4, 2),
		},
	}

	report := engine.BuildReport(snap)
	low := report.TopicsByRisk[RiskLow]
	require.Len(t, low, 2)
	// Bajo lists least urgent first.
	assert.LessOrEqual(t, low[0].WeightedScore, low[1].WeightedScore)
}

func TestBuildReportSeparatesPracticedCourses(t *testing.T) {
	now := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	engine := fixedEngine(now)

	snap := Snapshot{
		UserID: "u1",
		Attempts: []models.AttemptRecord{
			{UserID: "u1", SubjectID: "math", Topic: "Derivadas", DifficultyLevel: 3, SuccessCount: 5, ErrorCount: 5},
		},
		Subscriptions: []models.Subscription{
			{UserID: "u1", SubjectID: "math"},
			{UserID: "u1", SubjectID: "physics"},
		},
		Subjects: []models.Subject{
			{ID: "math", Name: "Matemáticas"},
			{ID: "physics", Name: "Física"},
		},
	}

	report := engine.BuildReport(snap)
	require.Len(t, report.PracticedCourses, 1)
	assert.Equal(t, "Matemáticas", report.PracticedCourses[0].CourseName)
	require.Len(t, report.UnpracticedCourses, 1)
	assert.Equal(t, "Física", report.UnpracticedCourses[0].CourseName)
	assert.Len(t, report.UnpracticedAdvice, 4)
}

func TestBuildReportIdempotent(t *testing.T) {
	now := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	engine := fixedEngine(now)

	practiced := now.AddDate(0, 0, -2)
	snap := Snapshot{
		UserID: "u1",
		Attempts: []models.AttemptRecord{
			{UserID: "u1", SubjectID: "math", Topic: "A", DifficultyLevel: 2, SuccessCount: 4, ErrorCount: 1, LastPracticed: &practiced},
			{UserID: "u1", SubjectID: "math", Topic: "B", DifficultyLevel: 4, SuccessCount: 1, ErrorCount: 6},
		},
		Exercises: []models.Exercise{
			{SubjectID: "math", CreatedAt: practiced, Completed: true},
		},
		Subscriptions: []models.Subscription{{UserID: "u1", SubjectID: "math"}},
		Subjects:      []models.Subject{{ID: "math", Name: "Matemáticas"}},
	}

	assert.Equal(t, engine.BuildReport(snap), engine.BuildReport(snap))
}
