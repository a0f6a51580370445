package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents different types of dashboard events
type EventType string

const (
	// Report events
	EventReportGenerated EventType = "report.generated"
	EventReportExported  EventType = "report.exported"

	// Exercise events
	EventExerciseRequested EventType = "exercise.requested"
	EventExerciseGraded    EventType = "exercise.graded"

	// Chat events
	EventChatMessageSent EventType = "chat.message_sent"

	// Enrollment events
	EventSubscriptionsReplaced EventType = "subscriptions.replaced"
)

const eventSource = "tutor-dashboard-service"

// DashboardEvent is the base envelope for all published events
type DashboardEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Report event payloads

type ReportGeneratedEvent struct {
	UserID            string    `json:"user_id"`
	GeneratedAt       time.Time `json:"generated_at"`
	HasSufficientData bool      `json:"has_sufficient_data"`
	TopicCount        int       `json:"topic_count"`
	HighRiskCount     int       `json:"high_risk_count"`
}

type ReportExportedEvent struct {
	UserID     string    `json:"user_id"`
	ExportedAt time.Time `json:"exported_at"`
	Format     string    `json:"format"`
	SizeBytes  int       `json:"size_bytes"`
}

// Exercise event payloads

type ExerciseRequestedEvent struct {
	UserID     string    `json:"user_id"`
	SubjectID  string    `json:"subject_id"`
	Topic      string    `json:"topic"`
	Difficulty int       `json:"difficulty"`
	Custom     bool      `json:"custom"`
	RequestedAt time.Time `json:"requested_at"`
}

type ExerciseGradedEvent struct {
	UserID     string    `json:"user_id"`
	ExerciseID string    `json:"exercise_id"`
	SubjectID  string    `json:"subject_id"`
	Topic      string    `json:"topic"`
	Correct    bool      `json:"correct"`
	GradedAt   time.Time `json:"graded_at"`
}

// Chat event payload

type ChatMessageSentEvent struct {
	UserID    string    `json:"user_id"`
	SessionID string    `json:"session_id"`
	SubjectID string    `json:"subject_id"`
	SentAt    time.Time `json:"sent_at"`
}

// Enrollment event payload

type SubscriptionsReplacedEvent struct {
	StudentID  string    `json:"student_id"`
	SubjectIDs []string  `json:"subject_ids"`
	ReplacedBy string    `json:"replaced_by"`
	ReplacedAt time.Time `json:"replaced_at"`
}

// Event factory functions

func NewReportGeneratedEvent(userID string, generatedAt time.Time, sufficient bool, topicCount, highRiskCount int) *DashboardEvent {
	return newEvent(EventReportGenerated, ReportGeneratedEvent{
		UserID:            userID,
		GeneratedAt:       generatedAt,
		HasSufficientData: sufficient,
		TopicCount:        topicCount,
		HighRiskCount:     highRiskCount,
	})
}

func NewReportExportedEvent(userID, format string, sizeBytes int) *DashboardEvent {
	return newEvent(EventReportExported, ReportExportedEvent{
		UserID:     userID,
		ExportedAt: time.Now(),
		Format:     format,
		SizeBytes:  sizeBytes,
	})
}

func NewExerciseRequestedEvent(userID, subjectID, topic string, difficulty int, custom bool) *DashboardEvent {
	return newEvent(EventExerciseRequested, ExerciseRequestedEvent{
		UserID:      userID,
		SubjectID:   subjectID,
		Topic:       topic,
		Difficulty:  difficulty,
		Custom:      custom,
		RequestedAt: time.Now(),
	})
}

func NewExerciseGradedEvent(userID, exerciseID, subjectID, topic string, correct bool) *DashboardEvent {
	return newEvent(EventExerciseGraded, ExerciseGradedEvent{
		UserID:     userID,
		ExerciseID: exerciseID,
		SubjectID:  subjectID,
		Topic:      topic,
		Correct:    correct,
		GradedAt:   time.Now(),
	})
}

func NewChatMessageSentEvent(userID, sessionID, subjectID string) *DashboardEvent {
	return newEvent(EventChatMessageSent, ChatMessageSentEvent{
		UserID:    userID,
		SessionID: sessionID,
		SubjectID: subjectID,
		SentAt:    time.Now(),
	})
}

func NewSubscriptionsReplacedEvent(studentID string, subjectIDs []string, replacedBy string) *DashboardEvent {
	return newEvent(EventSubscriptionsReplaced, SubscriptionsReplacedEvent{
		StudentID:  studentID,
		SubjectIDs: subjectIDs,
		ReplacedBy: replacedBy,
		ReplacedAt: time.Now(),
	})
}

func newEvent(eventType EventType, data interface{}) *DashboardEvent {
	return &DashboardEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   "1.0",
		Data:      data,
	}
}
