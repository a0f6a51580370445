package services

import (
	"errors"
	"fmt"

	apperrors "github.com/yamboly/tutor-dashboard-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrForbidden        = errors.New("forbidden - insufficient permissions")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound  = errors.New("user not found")
	ErrNotAStudent   = errors.New("user is not a student")
	ErrStudentAccess = errors.New("students can only access their own data")

	// Course errors
	ErrSubjectNotFound  = errors.New("subject not found")
	ErrSubjectInactive  = errors.New("subject is not active")
	ErrNoSubscriptions  = errors.New("student has no active subscriptions")
	ErrEmptyEnrollment  = errors.New("at least one subject is required")

	// Chat errors
	ErrSessionNotFound     = errors.New("chat session not found")
	ErrSessionAccessDenied = errors.New("access denied to chat session")
	ErrEmptyMessage        = errors.New("message text is required")

	// Exercise errors
	ErrExerciseNotFound      = errors.New("exercise not found")
	ErrExerciseAccessDenied  = errors.New("access denied to exercise")
	ErrExerciseCompleted     = errors.New("exercise already completed")
	ErrEmptyAnswer           = errors.New("answer text is required")

	// Tutoring agent errors
	ErrTutorUnavailable = errors.New("tutoring agent is unavailable")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrSubjectNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrExerciseNotFound)
}

// IsUnauthorized checks if error represents an "unauthorized" condition
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrStudentAccess) ||
		errors.Is(err, ErrSessionAccessDenied) ||
		errors.Is(err, ErrExerciseAccessDenied)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrBadRequest) ||
		errors.Is(err, ErrEmptyMessage) ||
		errors.Is(err, ErrEmptyAnswer) ||
		errors.Is(err, ErrEmptyEnrollment) {
		return true
	}
	var fieldErrors ValidationErrors
	return errors.As(err, &fieldErrors)
}

// WrapInternal tags an unexpected repository or transport failure so handlers
// map it to a 500 without leaking details.
func WrapInternal(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrInternalError, err)
}
