package models

import (
	"time"
)

// Exercise is one generated practice exercise. The tutoring agent writes the
// row when generation finishes; answering marks it completed.
type Exercise struct {
	ID              string    `json:"id" gorm:"primaryKey;type:uuid"`
	UserID          string    `json:"user_id" gorm:"not null;index;type:uuid" validate:"required"`
	SubjectID       string    `json:"subject_id" gorm:"index;type:uuid"`
	Topic           string    `json:"topic" gorm:"not null;size:200" validate:"required"`
	DifficultyLevel int       `json:"difficulty_level" gorm:"not null" validate:"required,difficulty_level"`
	ExerciseText    string    `json:"exercise_text" gorm:"type:text"`
	Completed       bool      `json:"completed" gorm:"default:false;index"`
	UserAnswer      *string   `json:"user_answer" gorm:"type:text"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Exercise) TableName() string {
	return "generated_exercises"
}
