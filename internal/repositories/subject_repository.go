package repositories

import (
	"context"

	"github.com/yamboly/tutor-dashboard-service/internal/models"
)

// SubjectRepository interface for course catalog operations
type SubjectRepository interface {
	GetByID(ctx context.Context, id string) (*models.Subject, error)
	List(ctx context.Context) ([]models.Subject, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Subject, error)
}

// SubscriptionRepository interface for student-course assignment operations
type SubscriptionRepository interface {
	GetActiveByUser(ctx context.Context, userID string) ([]models.Subscription, error)

	// Replace makes subjectIDs the complete active set for the student:
	// assignments outside the set are deactivated, missing ones are created
	// or reactivated. Runs in a single transaction.
	Replace(ctx context.Context, userID string, subjectIDs []string) error
}
