package repositories

import (
	"context"
	"time"

	"github.com/yamboly/tutor-dashboard-service/internal/models"
)

// ChatRepository interface for chat session and message operations
type ChatRepository interface {
	CreateSession(ctx context.Context, session *models.ChatSession) error
	GetSessionByID(ctx context.Context, id string) (*models.ChatSession, error)
	GetSessionsByUser(ctx context.Context, userID string) ([]models.ChatSession, error)
	GetSessionsByUserAndSubject(ctx context.Context, userID, subjectID string) ([]models.ChatSession, error)

	CreateMessage(ctx context.Context, message *models.ChatMessage) error
	GetMessages(ctx context.Context, sessionID string) ([]models.ChatMessage, error)
	GetMessagesAfter(ctx context.Context, sessionID string, after time.Time) ([]models.ChatMessage, error)
	CountMessages(ctx context.Context, sessionID string) (int64, error)
}
