package models

import (
	"time"

	"gorm.io/datatypes"
)

type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

type MessageType string

const (
	MessageTypeText     MessageType = "text"
	MessageTypeExercise MessageType = "exercise"
)

type ChatSession struct {
	ID           string    `json:"id" gorm:"primaryKey;type:uuid"`
	UserID       string    `json:"user_id" gorm:"not null;index;type:uuid" validate:"required"`
	SubjectID    string    `json:"subject_id" gorm:"index;type:uuid" validate:"required"`
	SessionTitle string    `json:"session_title" gorm:"size:200"`
	CreatedAt    time.Time `json:"created_at" gorm:"index"`

	Subject  Subject       `json:"subject" gorm:"foreignKey:SubjectID"`
	Messages []ChatMessage `json:"messages,omitempty" gorm:"foreignKey:SessionID"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}

// ChatMessage content is JSON because the tutoring agent writes either plain
// text or a structured payload (exercise, grading feedback) into one column.
type ChatMessage struct {
	ID          string         `json:"id" gorm:"primaryKey;type:uuid"`
	SessionID   string         `json:"session_id" gorm:"not null;index;type:uuid" validate:"required"`
	Role        MessageRole    `json:"role" gorm:"not null;size:20" validate:"required,oneof=user assistant"`
	Content     datatypes.JSON `json:"content" gorm:"type:jsonb"`
	MessageType MessageType    `json:"message_type" gorm:"default:text;size:20"`
	CreatedAt   time.Time      `json:"created_at" gorm:"index"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
