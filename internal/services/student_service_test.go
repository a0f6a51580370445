package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yamboly/tutor-dashboard-service/internal/events"
	"github.com/yamboly/tutor-dashboard-service/internal/models"
)

func newStudentFixture() (*MockRepository, *events.MockEventPublisher, StudentService) {
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	svc := NewStudentService(repo, newFakeCache(), publisher, testLogger(), testValidator())
	return repo, publisher, svc
}

func TestListStudentsCaches(t *testing.T) {
	repo, _, svc := newStudentFixture()

	students := []models.User{
		{ID: "u1", Email: "ana@example.com", FullName: "Ana", Role: models.RoleStudent},
	}
	repo.user.On("ListStudents", mock.Anything).Return(students, nil).Once()

	first, err := svc.ListStudents(context.Background())
	require.NoError(t, err)
	second, err := svc.ListStudents(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	repo.user.AssertExpectations(t)
}

func TestReplaceSubscriptionsHappyPath(t *testing.T) {
	repo, publisher, svc := newStudentFixture()

	repo.user.On("GetByID", mock.Anything, "u1").
		Return(&models.User{ID: "u1", Role: models.RoleStudent}, nil)
	repo.subject.On("GetByIDs", mock.Anything, []string{"math", "physics"}).
		Return([]models.Subject{
			{ID: "math", Name: "Matemáticas", IsActive: true},
			{ID: "physics", Name: "Física", IsActive: true},
		}, nil)
	repo.subscription.On("Replace", mock.Anything, "u1", []string{"math", "physics"}).Return(nil)

	err := svc.ReplaceSubscriptions(context.Background(), &ReplaceSubscriptionsRequest{
		StudentID:  "u1",
		SubjectIDs: []string{"math", "physics"},
		ReplacedBy: "t1",
	})
	require.NoError(t, err)

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventSubscriptionsReplaced, published[0].Type)
	data := published[0].Data.(events.SubscriptionsReplacedEvent)
	assert.Equal(t, "t1", data.ReplacedBy)
	assert.Equal(t, []string{"math", "physics"}, data.SubjectIDs)
}

func TestReplaceSubscriptionsUnknownSubject(t *testing.T) {
	repo, _, svc := newStudentFixture()

	repo.user.On("GetByID", mock.Anything, "u1").
		Return(&models.User{ID: "u1", Role: models.RoleStudent}, nil)
	repo.subject.On("GetByIDs", mock.Anything, []string{"ghost"}).
		Return([]models.Subject{}, nil)

	err := svc.ReplaceSubscriptions(context.Background(), &ReplaceSubscriptionsRequest{
		StudentID:  "u1",
		SubjectIDs: []string{"ghost"},
		ReplacedBy: "t1",
	})
	assert.ErrorIs(t, err, ErrSubjectNotFound)
}

func TestReplaceSubscriptionsRejectsNonStudents(t *testing.T) {
	repo, _, svc := newStudentFixture()

	repo.user.On("GetByID", mock.Anything, "t2").
		Return(&models.User{ID: "t2", Role: models.RoleTeacher}, nil)

	err := svc.ReplaceSubscriptions(context.Background(), &ReplaceSubscriptionsRequest{
		StudentID:  "t2",
		SubjectIDs: []string{"math"},
		ReplacedBy: "t1",
	})
	assert.ErrorIs(t, err, ErrNotAStudent)
}

func TestReplaceSubscriptionsEmptySet(t *testing.T) {
	_, _, svc := newStudentFixture()

	err := svc.ReplaceSubscriptions(context.Background(), &ReplaceSubscriptionsRequest{
		StudentID:  "u1",
		SubjectIDs: nil,
		ReplacedBy: "t1",
	})
	assert.True(t, IsValidation(err))
}

func TestReplaceSubscriptionsInvalidatesCache(t *testing.T) {
	repo, _, svc := newStudentFixture()

	subs := []models.Subscription{{ID: "sub1", UserID: "u1", SubjectID: "math", IsActive: true}}
	repo.subscription.On("GetActiveByUser", mock.Anything, "u1").Return(subs, nil).Twice()

	// Prime the cache, then replace, then expect a fresh read.
	_, err := svc.GetSubscriptions(context.Background(), "u1")
	require.NoError(t, err)

	repo.user.On("GetByID", mock.Anything, "u1").
		Return(&models.User{ID: "u1", Role: models.RoleStudent}, nil)
	repo.subject.On("GetByIDs", mock.Anything, []string{"math"}).
		Return([]models.Subject{{ID: "math", IsActive: true}}, nil)
	repo.subscription.On("Replace", mock.Anything, "u1", []string{"math"}).Return(nil)

	require.NoError(t, svc.ReplaceSubscriptions(context.Background(), &ReplaceSubscriptionsRequest{
		StudentID:  "u1",
		SubjectIDs: []string{"math"},
		ReplacedBy: "t1",
	}))

	_, err = svc.GetSubscriptions(context.Background(), "u1")
	require.NoError(t, err)
	repo.subscription.AssertExpectations(t)
}

func TestGetSubscriptionsStudentMissing(t *testing.T) {
	repo, _, svc := newStudentFixture()

	repo.user.On("GetByID", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	err := svc.ReplaceSubscriptions(context.Background(), &ReplaceSubscriptionsRequest{
		StudentID:  "ghost",
		SubjectIDs: []string{"math"},
		ReplacedBy: "t1",
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
