package repositories

import (
	"context"

	"github.com/yamboly/tutor-dashboard-service/internal/models"
)

// AttemptRepository reads the per-topic practice counters the tutoring agent
// accumulates in difficulty_tracking.
type AttemptRepository interface {
	GetByUser(ctx context.Context, userID string) ([]models.AttemptRecord, error)
	GetByUserAndSubject(ctx context.Context, userID, subjectID string) ([]models.AttemptRecord, error)
}
