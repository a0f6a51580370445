package postgres

import (
	"context"

	"github.com/yamboly/tutor-dashboard-service/internal/models"
	"github.com/yamboly/tutor-dashboard-service/internal/repositories"
	"gorm.io/gorm"
)

type ExercisePostgreSQL struct {
	db *gorm.DB
}

func NewExercisePostgreSQL(db *gorm.DB) repositories.ExerciseRepository {
	return &ExercisePostgreSQL{db: db}
}

func (e ExercisePostgreSQL) GetByID(ctx context.Context, id string) (*models.Exercise, error) {
	var exercise models.Exercise
	if err := e.db.WithContext(ctx).First(&exercise, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &exercise, nil
}

func (e ExercisePostgreSQL) GetByUser(ctx context.Context, userID string) ([]models.Exercise, error) {
	var exercises []models.Exercise
	if err := e.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&exercises).Error; err != nil {
		return nil, err
	}

	return exercises, nil
}

func (e ExercisePostgreSQL) GetByUserAndSubject(ctx context.Context, userID, subjectID string) ([]models.Exercise, error) {
	var exercises []models.Exercise
	if err := e.db.WithContext(ctx).
		Where("user_id = ? AND subject_id = ?", userID, subjectID).
		Order("created_at DESC").
		Find(&exercises).Error; err != nil {
		return nil, err
	}

	return exercises, nil
}

func (e ExercisePostgreSQL) GetPendingByUser(ctx context.Context, userID string) ([]models.Exercise, error) {
	var exercises []models.Exercise
	if err := e.db.WithContext(ctx).
		Where("user_id = ? AND completed = ?", userID, false).
		Order("created_at DESC").
		Find(&exercises).Error; err != nil {
		return nil, err
	}

	return exercises, nil
}
