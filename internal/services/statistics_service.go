package services

import (
	"context"
	"log/slog"

	"github.com/yamboly/tutor-dashboard-service/internal/analytics"
	"github.com/yamboly/tutor-dashboard-service/internal/repositories"
)

// StatisticsService serves the lightweight progress view: topic highlights,
// daily series and weekly activity, optionally narrowed to one course.
type StatisticsService interface {
	GetStatistics(ctx context.Context, userID, subjectID string) (*analytics.Statistics, error)
}

type statisticsService struct {
	repo   repositories.Repository
	engine *analytics.Engine
	logger *slog.Logger
}

func NewStatisticsService(repo repositories.Repository, engine *analytics.Engine, logger *slog.Logger) StatisticsService {
	return &statisticsService{
		repo:   repo,
		engine: engine,
		logger: logger,
	}
}

func (s *statisticsService) GetStatistics(ctx context.Context, userID, subjectID string) (*analytics.Statistics, error) {
	if _, err := s.repo.User().GetByID(ctx, userID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, WrapInternal("load user", err)
	}

	var (
		attempts  = s.repo.Attempt()
		exercises = s.repo.Exercise()
	)

	if subjectID != "" {
		records, err := attempts.GetByUserAndSubject(ctx, userID, subjectID)
		if err != nil {
			return nil, WrapInternal("load attempts", err)
		}
		generated, err := exercises.GetByUserAndSubject(ctx, userID, subjectID)
		if err != nil {
			return nil, WrapInternal("load exercises", err)
		}
		return s.engine.BuildStatistics(records, generated), nil
	}

	records, err := attempts.GetByUser(ctx, userID)
	if err != nil {
		return nil, WrapInternal("load attempts", err)
	}
	generated, err := exercises.GetByUser(ctx, userID)
	if err != nil {
		return nil, WrapInternal("load exercises", err)
	}

	return s.engine.BuildStatistics(records, generated), nil
}
