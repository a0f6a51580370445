package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/yamboly/tutor-dashboard-service/internal/cache"
	"github.com/yamboly/tutor-dashboard-service/internal/models"
	"github.com/yamboly/tutor-dashboard-service/internal/repositories"
	"github.com/yamboly/tutor-dashboard-service/internal/tutor"
	"github.com/yamboly/tutor-dashboard-service/internal/utils"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// ===== REPOSITORY MOCKS =====

type MockAttemptRepo struct{ mock.Mock }

func (m *MockAttemptRepo) GetByUser(ctx context.Context, userID string) ([]models.AttemptRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AttemptRecord), args.Error(1)
}

func (m *MockAttemptRepo) GetByUserAndSubject(ctx context.Context, userID, subjectID string) ([]models.AttemptRecord, error) {
	args := m.Called(ctx, userID, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AttemptRecord), args.Error(1)
}

type MockExerciseRepo struct{ mock.Mock }

func (m *MockExerciseRepo) GetByID(ctx context.Context, id string) (*models.Exercise, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Exercise), args.Error(1)
}

func (m *MockExerciseRepo) GetByUser(ctx context.Context, userID string) ([]models.Exercise, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Exercise), args.Error(1)
}

func (m *MockExerciseRepo) GetByUserAndSubject(ctx context.Context, userID, subjectID string) ([]models.Exercise, error) {
	args := m.Called(ctx, userID, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Exercise), args.Error(1)
}

func (m *MockExerciseRepo) GetPendingByUser(ctx context.Context, userID string) ([]models.Exercise, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Exercise), args.Error(1)
}

type MockChatRepo struct{ mock.Mock }

func (m *MockChatRepo) CreateSession(ctx context.Context, session *models.ChatSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockChatRepo) GetSessionByID(ctx context.Context, id string) (*models.ChatSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatSession), args.Error(1)
}

func (m *MockChatRepo) GetSessionsByUser(ctx context.Context, userID string) ([]models.ChatSession, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChatSession), args.Error(1)
}

func (m *MockChatRepo) GetSessionsByUserAndSubject(ctx context.Context, userID, subjectID string) ([]models.ChatSession, error) {
	args := m.Called(ctx, userID, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChatSession), args.Error(1)
}

func (m *MockChatRepo) CreateMessage(ctx context.Context, message *models.ChatMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockChatRepo) GetMessages(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChatMessage), args.Error(1)
}

func (m *MockChatRepo) GetMessagesAfter(ctx context.Context, sessionID string, after time.Time) ([]models.ChatMessage, error) {
	args := m.Called(ctx, sessionID, after)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChatMessage), args.Error(1)
}

func (m *MockChatRepo) CountMessages(ctx context.Context, sessionID string) (int64, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(int64), args.Error(1)
}

type MockSubjectRepo struct{ mock.Mock }

func (m *MockSubjectRepo) GetByID(ctx context.Context, id string) (*models.Subject, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subject), args.Error(1)
}

func (m *MockSubjectRepo) List(ctx context.Context) ([]models.Subject, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Subject), args.Error(1)
}

func (m *MockSubjectRepo) GetByIDs(ctx context.Context, ids []string) ([]models.Subject, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Subject), args.Error(1)
}

type MockSubscriptionRepo struct{ mock.Mock }

func (m *MockSubscriptionRepo) GetActiveByUser(ctx context.Context, userID string) ([]models.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepo) Replace(ctx context.Context, userID string, subjectIDs []string) error {
	args := m.Called(ctx, userID, subjectIDs)
	return args.Error(0)
}

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) ListStudents(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

// MockRepository bundles the per-table mocks behind the facade interface.
type MockRepository struct {
	attempt      *MockAttemptRepo
	exercise     *MockExerciseRepo
	chat         *MockChatRepo
	subject      *MockSubjectRepo
	subscription *MockSubscriptionRepo
	user         *MockUserRepo
}

func newMockRepository() *MockRepository {
	return &MockRepository{
		attempt:      &MockAttemptRepo{},
		exercise:     &MockExerciseRepo{},
		chat:         &MockChatRepo{},
		subject:      &MockSubjectRepo{},
		subscription: &MockSubscriptionRepo{},
		user:         &MockUserRepo{},
	}
}

func (m *MockRepository) Attempt() repositories.AttemptRepository           { return m.attempt }
func (m *MockRepository) Exercise() repositories.ExerciseRepository         { return m.exercise }
func (m *MockRepository) Chat() repositories.ChatRepository                 { return m.chat }
func (m *MockRepository) Subject() repositories.SubjectRepository           { return m.subject }
func (m *MockRepository) Subscription() repositories.SubscriptionRepository { return m.subscription }
func (m *MockRepository) User() repositories.UserRepository                 { return m.user }

// ===== CACHE FAKE =====

// fakeCache is an in-memory CacheService without expiry, enough for tests.
type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := c.data[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func (c *fakeCache) DeletePattern(ctx context.Context, pattern string) error {
	c.data = make(map[string][]byte)
	return nil
}

// ===== TUTOR CLIENT MOCK =====

type MockTutorClient struct{ mock.Mock }

func (m *MockTutorClient) SendChat(ctx context.Context, req tutor.ChatRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockTutorClient) GenerateExercise(ctx context.Context, req tutor.ExerciseRequest) (json.RawMessage, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockTutorClient) GenerateCustomExercise(ctx context.Context, req tutor.ExerciseRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockTutorClient) GradeSolution(ctx context.Context, req tutor.SolutionRequest) (*tutor.GradeResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tutor.GradeResult), args.Error(1)
}

func testValidator() *utils.Validator {
	return utils.NewValidator()
}
