package repositories

import (
	"context"

	"github.com/yamboly/tutor-dashboard-service/internal/models"
)

// UserRepository interface for user lookups
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	ListStudents(ctx context.Context) ([]models.User, error)
}
