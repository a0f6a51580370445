package models

import (
	"time"
)

// Subject is a course a student can subscribe to. Attempt and exercise rows
// reference subjects by id.
type Subject struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid"`
	Name        string    `json:"name" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description *string   `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Subject) TableName() string {
	return "subjects"
}

// Subscription links a student to a subject. Assignments are soft-switched via
// IsActive rather than deleted by the reporting paths.
type Subscription struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	UserID    string    `json:"user_id" gorm:"not null;index;type:uuid" validate:"required"`
	SubjectID string    `json:"subject_id" gorm:"not null;index;type:uuid" validate:"required"`
	IsActive  bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt time.Time `json:"created_at"`

	Subject Subject `json:"subject" gorm:"foreignKey:SubjectID"`
}

func (Subscription) TableName() string {
	return "user_subscriptions"
}
