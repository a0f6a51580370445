package postgres

import (
	"context"

	"github.com/yamboly/tutor-dashboard-service/internal/models"
	"github.com/yamboly/tutor-dashboard-service/internal/repositories"
	"gorm.io/gorm"
)

type SubjectPostgreSQL struct {
	db *gorm.DB
}

func NewSubjectPostgreSQL(db *gorm.DB) repositories.SubjectRepository {
	return &SubjectPostgreSQL{db: db}
}

func (s SubjectPostgreSQL) GetByID(ctx context.Context, id string) (*models.Subject, error) {
	var subject models.Subject
	if err := s.db.WithContext(ctx).First(&subject, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &subject, nil
}

func (s SubjectPostgreSQL) List(ctx context.Context) ([]models.Subject, error) {
	var subjects []models.Subject
	if err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&subjects).Error; err != nil {
		return nil, err
	}

	return subjects, nil
}

func (s SubjectPostgreSQL) GetByIDs(ctx context.Context, ids []string) ([]models.Subject, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var subjects []models.Subject
	if err := s.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("name ASC").
		Find(&subjects).Error; err != nil {
		return nil, err
	}

	return subjects, nil
}

type SubscriptionPostgreSQL struct {
	db *gorm.DB
}

func NewSubscriptionPostgreSQL(db *gorm.DB) repositories.SubscriptionRepository {
	return &SubscriptionPostgreSQL{db: db}
}

func (s SubscriptionPostgreSQL) GetActiveByUser(ctx context.Context, userID string) ([]models.Subscription, error) {
	var subscriptions []models.Subscription
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Preload("Subject").
		Order("created_at ASC").
		Find(&subscriptions).Error; err != nil {
		return nil, err
	}

	return subscriptions, nil
}

func (s SubscriptionPostgreSQL) Replace(ctx context.Context, userID string, subjectIDs []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Subscription{}).
			Where("user_id = ?", userID).
			Update("is_active", false).Error; err != nil {
			return err
		}

		for _, subjectID := range subjectIDs {
			var existing models.Subscription
			err := tx.Where("user_id = ? AND subject_id = ?", userID, subjectID).
				First(&existing).Error
			switch {
			case err == nil:
				if err := tx.Model(&existing).Update("is_active", true).Error; err != nil {
					return err
				}
			case repositories.IsNotFoundError(err):
				sub := models.Subscription{
					UserID:    userID,
					SubjectID: subjectID,
					IsActive:  true,
				}
				if err := tx.Create(&sub).Error; err != nil {
					return err
				}
			default:
				return err
			}
		}

		return nil
	})
}
