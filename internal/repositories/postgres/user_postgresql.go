package postgres

import (
	"context"

	"github.com/yamboly/tutor-dashboard-service/internal/models"
	"github.com/yamboly/tutor-dashboard-service/internal/repositories"
	"gorm.io/gorm"
)

type UserPostgreSQL struct {
	db *gorm.DB
}

func NewUserPostgreSQL(db *gorm.DB) repositories.UserRepository {
	return &UserPostgreSQL{db: db}
}

func (u UserPostgreSQL) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (u UserPostgreSQL) ListStudents(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := u.db.WithContext(ctx).
		Where("role = ? AND is_active = ?", models.RoleStudent, true).
		Order("full_name ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}
