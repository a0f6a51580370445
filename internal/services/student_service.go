package services

import (
	"context"
	"log/slog"

	"github.com/yamboly/tutor-dashboard-service/internal/cache"
	"github.com/yamboly/tutor-dashboard-service/internal/events"
	"github.com/yamboly/tutor-dashboard-service/internal/models"
	"github.com/yamboly/tutor-dashboard-service/internal/repositories"
	"github.com/yamboly/tutor-dashboard-service/internal/utils"
)

// StudentService backs the teacher view: the student roster, the course
// catalog and course assignment management.
type StudentService interface {
	ListStudents(ctx context.Context) ([]models.User, error)
	ListCourses(ctx context.Context) ([]models.Subject, error)
	GetSubscriptions(ctx context.Context, studentID string) ([]models.Subscription, error)
	ReplaceSubscriptions(ctx context.Context, req *ReplaceSubscriptionsRequest) error
}

type ReplaceSubscriptionsRequest struct {
	StudentID  string   `json:"student_id" validate:"required"`
	SubjectIDs []string `json:"subject_ids" validate:"required,min=1,dive,required"`
	// ReplacedBy is the teacher performing the change, for the audit event.
	ReplacedBy string `json:"replaced_by" validate:"required"`
}

type studentService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *utils.Validator
}

func NewStudentService(repo repositories.Repository, cacheService cache.CacheService, publisher events.EventPublisher, logger *slog.Logger, validator *utils.Validator) StudentService {
	return &studentService{
		repo:      repo,
		cache:     cacheService,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (s *studentService) ListStudents(ctx context.Context) ([]models.User, error) {
	key := cache.StudentsKey()

	var cached []models.User
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	students, err := s.repo.User().ListStudents(ctx)
	if err != nil {
		return nil, WrapInternal("list students", err)
	}

	if err := s.cache.Set(ctx, key, students, cache.TTLStudents); err != nil {
		s.logger.Warn("failed to cache students", "error", err)
	}

	return students, nil
}

func (s *studentService) ListCourses(ctx context.Context) ([]models.Subject, error) {
	key := cache.CoursesKey()

	var cached []models.Subject
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	courses, err := s.repo.Subject().List(ctx)
	if err != nil {
		return nil, WrapInternal("list courses", err)
	}

	if err := s.cache.Set(ctx, key, courses, cache.TTLCourses); err != nil {
		s.logger.Warn("failed to cache courses", "error", err)
	}

	return courses, nil
}

func (s *studentService) GetSubscriptions(ctx context.Context, studentID string) ([]models.Subscription, error) {
	key := cache.SubscriptionsKey(studentID)

	var cached []models.Subscription
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	subscriptions, err := s.repo.Subscription().GetActiveByUser(ctx, studentID)
	if err != nil {
		return nil, WrapInternal("list subscriptions", err)
	}

	if err := s.cache.Set(ctx, key, subscriptions, cache.TTLSubscriptions); err != nil {
		s.logger.Warn("failed to cache subscriptions", "student_id", studentID, "error", err)
	}

	return subscriptions, nil
}

func (s *studentService) ReplaceSubscriptions(ctx context.Context, req *ReplaceSubscriptionsRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	student, err := s.repo.User().GetByID(ctx, req.StudentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return WrapInternal("load student", err)
	}
	if student.Role != models.RoleStudent {
		return ErrNotAStudent
	}

	// Every requested subject must exist and be active.
	subjects, err := s.repo.Subject().GetByIDs(ctx, req.SubjectIDs)
	if err != nil {
		return WrapInternal("load subjects", err)
	}
	known := make(map[string]models.Subject, len(subjects))
	for _, subject := range subjects {
		known[subject.ID] = subject
	}
	for _, id := range req.SubjectIDs {
		subject, ok := known[id]
		if !ok {
			return ErrSubjectNotFound
		}
		if !subject.IsActive {
			return ErrSubjectInactive
		}
	}

	if err := s.repo.Subscription().Replace(ctx, req.StudentID, req.SubjectIDs); err != nil {
		return WrapInternal("replace subscriptions", err)
	}

	if err := s.cache.Delete(ctx, cache.SubscriptionsKey(req.StudentID)); err != nil {
		s.logger.Warn("failed to invalidate subscriptions cache", "student_id", req.StudentID, "error", err)
	}

	event := events.NewSubscriptionsReplacedEvent(req.StudentID, req.SubjectIDs, req.ReplacedBy)
	if err := s.publisher.PublishDashboardEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish enrollment event", "student_id", req.StudentID, "error", err)
	}

	s.logger.Info("subscriptions replaced",
		"student_id", req.StudentID,
		"subjects", len(req.SubjectIDs),
		"replaced_by", req.ReplacedBy)

	return nil
}
