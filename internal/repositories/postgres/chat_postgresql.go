package postgres

import (
	"context"
	"time"

	"github.com/yamboly/tutor-dashboard-service/internal/models"
	"github.com/yamboly/tutor-dashboard-service/internal/repositories"
	"gorm.io/gorm"
)

type ChatPostgreSQL struct {
	db *gorm.DB
}

func NewChatPostgreSQL(db *gorm.DB) repositories.ChatRepository {
	return &ChatPostgreSQL{db: db}
}

func (c ChatPostgreSQL) CreateSession(ctx context.Context, session *models.ChatSession) error {
	return c.db.WithContext(ctx).Create(session).Error
}

func (c ChatPostgreSQL) GetSessionByID(ctx context.Context, id string) (*models.ChatSession, error) {
	var session models.ChatSession
	if err := c.db.WithContext(ctx).
		Preload("Subject").
		First(&session, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &session, nil
}

func (c ChatPostgreSQL) GetSessionsByUser(ctx context.Context, userID string) ([]models.ChatSession, error) {
	var sessions []models.ChatSession
	if err := c.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Subject").
		Order("created_at ASC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}

	return sessions, nil
}

func (c ChatPostgreSQL) GetSessionsByUserAndSubject(ctx context.Context, userID, subjectID string) ([]models.ChatSession, error) {
	var sessions []models.ChatSession
	if err := c.db.WithContext(ctx).
		Where("user_id = ? AND subject_id = ?", userID, subjectID).
		Order("created_at ASC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}

	return sessions, nil
}

func (c ChatPostgreSQL) CreateMessage(ctx context.Context, message *models.ChatMessage) error {
	return c.db.WithContext(ctx).Create(message).Error
}

func (c ChatPostgreSQL) GetMessages(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	if err := c.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}

	return messages, nil
}

func (c ChatPostgreSQL) GetMessagesAfter(ctx context.Context, sessionID string, after time.Time) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	if err := c.db.WithContext(ctx).
		Where("session_id = ? AND created_at > ?", sessionID, after).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}

	return messages, nil
}

func (c ChatPostgreSQL) CountMessages(ctx context.Context, sessionID string) (int64, error) {
	var count int64
	if err := c.db.WithContext(ctx).
		Model(&models.ChatMessage{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
