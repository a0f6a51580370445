package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yamboly/tutor-dashboard-service/internal/cache"
	"github.com/yamboly/tutor-dashboard-service/internal/events"
	"github.com/yamboly/tutor-dashboard-service/internal/models"
	"github.com/yamboly/tutor-dashboard-service/internal/repositories"
	"github.com/yamboly/tutor-dashboard-service/internal/tutor"
	"github.com/yamboly/tutor-dashboard-service/internal/utils"
)

// The agent answers asynchronously by writing rows; after forwarding a
// message we watch the session until new rows land or the deadline passes.
const (
	replyPollTimeout  = 8 * time.Second
	replyPollInterval = 250 * time.Millisecond
)

// ChatService manages tutoring conversations: sessions, message history and
// the round trip through the external agent.
type ChatService interface {
	ListSessions(ctx context.Context, userID string) ([]models.ChatSession, error)
	CreateSession(ctx context.Context, req *CreateSessionRequest) (*models.ChatSession, error)
	GetMessages(ctx context.Context, userID, sessionID string) ([]models.ChatMessage, error)
	SendMessage(ctx context.Context, req *SendMessageRequest) (*ChatExchange, error)

	// AttachExerciseMessage stores a generated exercise payload in the
	// session history on behalf of the exercise flow.
	AttachExerciseMessage(ctx context.Context, userID, sessionID string, payload json.RawMessage) error
}

type CreateSessionRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	SubjectID string `json:"subject_id" validate:"required"`
	Title     string `json:"title" validate:"max=200"`
}

type SendMessageRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	SessionID string `json:"session_id" validate:"required"`
	Message   string `json:"message" validate:"required"`
}

// ChatExchange is the outcome of forwarding a message. Pending means the
// agent accepted the message but had not replied before the poll deadline.
type ChatExchange struct {
	Messages []models.ChatMessage `json:"messages"`
	Pending  bool                 `json:"pending"`
}

type chatService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	tutor     tutor.Client
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *utils.Validator

	pollTimeout  time.Duration
	pollInterval time.Duration
}

func NewChatService(repo repositories.Repository, cacheService cache.CacheService, tutorClient tutor.Client, publisher events.EventPublisher, logger *slog.Logger, validator *utils.Validator) ChatService {
	return &chatService{
		repo:         repo,
		cache:        cacheService,
		tutor:        tutorClient,
		publisher:    publisher,
		logger:       logger,
		validator:    validator,
		pollTimeout:  replyPollTimeout,
		pollInterval: replyPollInterval,
	}
}

func (s *chatService) ListSessions(ctx context.Context, userID string) ([]models.ChatSession, error) {
	key := cache.SessionsKey(userID)

	var cached []models.ChatSession
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	sessions, err := s.repo.Chat().GetSessionsByUser(ctx, userID)
	if err != nil {
		return nil, WrapInternal("list sessions", err)
	}

	if err := s.cache.Set(ctx, key, sessions, cache.TTLSessions); err != nil {
		s.logger.Warn("failed to cache sessions", "user_id", userID, "error", err)
	}

	return sessions, nil
}

func (s *chatService) CreateSession(ctx context.Context, req *CreateSessionRequest) (*models.ChatSession, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	subject, err := s.repo.Subject().GetByID(ctx, req.SubjectID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSubjectNotFound
		}
		return nil, WrapInternal("load subject", err)
	}
	if !subject.IsActive {
		return nil, ErrSubjectInactive
	}

	title := req.Title
	if title == "" {
		title = fmt.Sprintf("%s - %s", subject.Name, time.Now().Format("02/01/2006 15:04"))
	}

	session := &models.ChatSession{
		ID:           uuid.NewString(),
		UserID:       req.UserID,
		SubjectID:    req.SubjectID,
		SessionTitle: title,
	}

	if err := s.repo.Chat().CreateSession(ctx, session); err != nil {
		return nil, WrapInternal("create session", err)
	}

	if err := s.cache.Delete(ctx, cache.SessionsKey(req.UserID)); err != nil {
		s.logger.Warn("failed to invalidate sessions cache", "user_id", req.UserID, "error", err)
	}

	s.logger.Info("chat session created",
		"session_id", session.ID,
		"user_id", req.UserID,
		"subject_id", req.SubjectID)

	return session, nil
}

func (s *chatService) GetMessages(ctx context.Context, userID, sessionID string) ([]models.ChatMessage, error) {
	if _, err := s.authorizedSession(ctx, userID, sessionID); err != nil {
		return nil, err
	}

	key := cache.MessagesKey(sessionID)

	var cached []models.ChatMessage
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return dedupMessages(cached), nil
	}

	messages, err := s.repo.Chat().GetMessages(ctx, sessionID)
	if err != nil {
		return nil, WrapInternal("list messages", err)
	}

	if err := s.cache.Set(ctx, key, messages, cache.TTLMessages); err != nil {
		s.logger.Warn("failed to cache messages", "session_id", sessionID, "error", err)
	}

	return dedupMessages(messages), nil
}

func (s *chatService) SendMessage(ctx context.Context, req *SendMessageRequest) (*ChatExchange, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	session, err := s.authorizedSession(ctx, req.UserID, req.SessionID)
	if err != nil {
		return nil, err
	}

	subjectName := session.Subject.Name
	if subjectName == "" {
		if subject, err := s.repo.Subject().GetByID(ctx, session.SubjectID); err == nil {
			subjectName = subject.Name
		}
	}

	before, err := s.repo.Chat().CountMessages(ctx, session.ID)
	if err != nil {
		return nil, WrapInternal("count messages", err)
	}

	err = s.tutor.SendChat(ctx, tutor.ChatRequest{
		UserID:          req.UserID,
		SessionID:       session.ID,
		Subject:         subjectName,
		SubjectID:       session.SubjectID,
		Message:         req.Message,
		ClientMessageID: uuid.NewString(),
	})
	if err != nil {
		s.logger.Error("tutor webhook rejected chat message",
			"session_id", session.ID,
			"error", err)
		return nil, fmt.Errorf("%w: %v", ErrTutorUnavailable, err)
	}

	if err := s.cache.Delete(ctx, cache.MessagesKey(session.ID)); err != nil {
		s.logger.Warn("failed to invalidate messages cache", "session_id", session.ID, "error", err)
	}

	event := events.NewChatMessageSentEvent(req.UserID, session.ID, session.SubjectID)
	if err := s.publisher.PublishDashboardEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish chat event", "session_id", session.ID, "error", err)
	}

	messages, pending, err := s.waitForReply(ctx, session.ID, before)
	if err != nil {
		return nil, err
	}

	return &ChatExchange{Messages: dedupMessages(messages), Pending: pending}, nil
}

// waitForReply polls the session until the message count grows past before,
// or until the poll deadline.
func (s *chatService) waitForReply(ctx context.Context, sessionID string, before int64) ([]models.ChatMessage, bool, error) {
	deadline := time.Now().Add(s.pollTimeout)

	for {
		messages, err := s.repo.Chat().GetMessages(ctx, sessionID)
		if err != nil {
			return nil, false, WrapInternal("poll messages", err)
		}
		if int64(len(messages)) > before {
			return messages, false, nil
		}
		if time.Now().After(deadline) {
			return messages, true, nil
		}

		select {
		case <-ctx.Done():
			return messages, true, nil
		case <-time.After(s.pollInterval):
		}
	}
}

func (s *chatService) authorizedSession(ctx context.Context, userID, sessionID string) (*models.ChatSession, error) {
	session, err := s.repo.Chat().GetSessionByID(ctx, sessionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSessionNotFound
		}
		return nil, WrapInternal("load session", err)
	}
	if session.UserID != userID {
		return nil, ErrSessionAccessDenied
	}
	return session, nil
}

// SaveAssistantMessage stores an agent payload (for example a generated
// exercise) in the session history.
func (s *chatService) saveAssistantMessage(ctx context.Context, sessionID string, content json.RawMessage, messageType models.MessageType) error {
	msg := &models.ChatMessage{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		Role:        models.MessageRoleAssistant,
		Content:     datatypes.JSON(content),
		MessageType: messageType,
	}
	return s.repo.Chat().CreateMessage(ctx, msg)
}

// AttachExerciseMessage lets the exercise flow reuse the chat history write
// path without exposing the repository.
func (s *chatService) AttachExerciseMessage(ctx context.Context, userID, sessionID string, payload json.RawMessage) error {
	if sessionID == "" {
		return fmt.Errorf("%w: session_id is required", ErrBadRequest)
	}
	if _, err := s.authorizedSession(ctx, userID, sessionID); err != nil {
		return err
	}
	if err := s.saveAssistantMessage(ctx, sessionID, payload, models.MessageTypeExercise); err != nil {
		return WrapInternal("save exercise message", err)
	}
	if err := s.cache.Delete(ctx, cache.MessagesKey(sessionID)); err != nil {
		s.logger.Warn("failed to invalidate messages cache", "session_id", sessionID, "error", err)
	}
	return nil
}
