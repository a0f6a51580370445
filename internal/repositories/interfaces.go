package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// Repository bundles the per-table repositories behind one dependency for the
// service layer.
type Repository interface {
	Attempt() AttemptRepository
	Exercise() ExerciseRepository
	Chat() ChatRepository
	Subject() SubjectRepository
	Subscription() SubscriptionRepository
	User() UserRepository
}

// IsNotFoundError reports whether err means the row does not exist, so
// services can map it to their own sentinel errors.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
