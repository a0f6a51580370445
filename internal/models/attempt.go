package models

import (
	"time"
)

// AttemptRecord is one logged practice interaction on a topic. Success and
// error counters accumulate per row; a row with both at zero carries no signal
// for rate computations.
type AttemptRecord struct {
	ID              string     `json:"id" gorm:"primaryKey;type:uuid"`
	UserID          string     `json:"user_id" gorm:"not null;index;type:uuid" validate:"required"`
	SubjectID       string     `json:"subject_id" gorm:"index;type:uuid"`
	Topic           string     `json:"topic" gorm:"not null;size:200;index" validate:"required"`
	DifficultyLevel int        `json:"difficulty_level" gorm:"not null" validate:"required,difficulty_level"`
	SuccessCount    int        `json:"success_count" gorm:"default:0" validate:"min=0"`
	ErrorCount      int        `json:"error_count" gorm:"default:0" validate:"min=0"`
	LastPracticed   *time.Time `json:"last_practiced"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (AttemptRecord) TableName() string {
	return "difficulty_tracking"
}

// Attempts is the total number of practice interactions the row accumulates.
func (r AttemptRecord) Attempts() int {
	return r.SuccessCount + r.ErrorCount
}
