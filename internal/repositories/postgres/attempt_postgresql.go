package postgres

import (
	"context"

	"github.com/yamboly/tutor-dashboard-service/internal/models"
	"github.com/yamboly/tutor-dashboard-service/internal/repositories"
	"gorm.io/gorm"
)

type AttemptPostgreSQL struct {
	db *gorm.DB
}

func NewAttemptPostgreSQL(db *gorm.DB) repositories.AttemptRepository {
	return &AttemptPostgreSQL{db: db}
}

func (a AttemptPostgreSQL) GetByUser(ctx context.Context, userID string) ([]models.AttemptRecord, error) {
	var records []models.AttemptRecord
	if err := a.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("topic ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (a AttemptPostgreSQL) GetByUserAndSubject(ctx context.Context, userID, subjectID string) ([]models.AttemptRecord, error) {
	var records []models.AttemptRecord
	if err := a.db.WithContext(ctx).
		Where("user_id = ? AND subject_id = ?", userID, subjectID).
		Order("topic ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}
