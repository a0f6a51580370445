package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yamboly/tutor-dashboard-service/internal/analytics"
	"github.com/yamboly/tutor-dashboard-service/internal/models"
)

func newStatisticsFixture() (*MockRepository, StatisticsService) {
	repo := newMockRepository()
	svc := NewStatisticsService(repo, analytics.NewEngine(), testLogger())
	return repo, svc
}

func TestGetStatisticsAllSubjects(t *testing.T) {
	repo, svc := newStatisticsFixture()

	repo.user.On("GetByID", mock.Anything, "u1").
		Return(&models.User{ID: "u1", Role: models.RoleStudent}, nil)
	repo.attempt.On("GetByUser", mock.Anything, "u1").
		Return([]models.AttemptRecord{
			{Topic: "A", DifficultyLevel: 3, SuccessCount: 6, ErrorCount: 4},
		}, nil)
	repo.exercise.On("GetByUser", mock.Anything, "u1").
		Return([]models.Exercise{}, nil)

	stats, err := svc.GetStatistics(context.Background(), "u1", "")
	require.NoError(t, err)
	assert.True(t, stats.HasData)
	assert.Equal(t, 1, stats.TotalTopics)
}

func TestGetStatisticsSubjectFilter(t *testing.T) {
	repo, svc := newStatisticsFixture()

	repo.user.On("GetByID", mock.Anything, "u1").
		Return(&models.User{ID: "u1", Role: models.RoleStudent}, nil)
	repo.attempt.On("GetByUserAndSubject", mock.Anything, "u1", "math").
		Return([]models.AttemptRecord{}, nil)
	repo.exercise.On("GetByUserAndSubject", mock.Anything, "u1", "math").
		Return([]models.Exercise{}, nil)

	stats, err := svc.GetStatistics(context.Background(), "u1", "math")
	require.NoError(t, err)
	assert.False(t, stats.HasData)

	// The unfiltered accessors are never touched.
	repo.attempt.AssertNotCalled(t, "GetByUser", mock.Anything, "u1")
}

func TestGetStatisticsUnknownUser(t *testing.T) {
	repo, svc := newStatisticsFixture()

	repo.user.On("GetByID", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetStatistics(context.Background(), "ghost", "")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
