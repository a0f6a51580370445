package repositories

import (
	"context"

	"github.com/yamboly/tutor-dashboard-service/internal/models"
)

// ExerciseRepository interface for generated exercise operations
type ExerciseRepository interface {
	GetByID(ctx context.Context, id string) (*models.Exercise, error)
	GetByUser(ctx context.Context, userID string) ([]models.Exercise, error)
	GetByUserAndSubject(ctx context.Context, userID, subjectID string) ([]models.Exercise, error)
	GetPendingByUser(ctx context.Context, userID string) ([]models.Exercise, error)
}
