package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yamboly/tutor-dashboard-service/internal/events"
	"github.com/yamboly/tutor-dashboard-service/internal/models"
	"github.com/yamboly/tutor-dashboard-service/internal/repositories"
	"github.com/yamboly/tutor-dashboard-service/internal/tutor"
	"github.com/yamboly/tutor-dashboard-service/internal/utils"
)

// Exercises requested without an explicit topic use the agent's defaults.
const (
	defaultExerciseTopic      = "general"
	defaultExerciseDifficulty = 3
)

// ExerciseService lists generated exercises, requests new ones from the
// tutoring agent and submits answers for grading. The agent owns the exercise
// rows: generation and completion flags are written on its side.
type ExerciseService interface {
	ListExercises(ctx context.Context, userID string) ([]models.Exercise, error)
	ListPending(ctx context.Context, userID string) ([]models.Exercise, error)
	RequestExercise(ctx context.Context, req *GenerateExerciseRequest) error
	RequestCustomExercise(ctx context.Context, req *CustomExerciseRequest) error
	SubmitSolution(ctx context.Context, req *SubmitSolutionRequest) (*SolutionFeedback, error)
}

type GenerateExerciseRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	SubjectID string `json:"subject_id" validate:"required"`
	// SessionID, when set, attaches the generated exercise to that chat
	// session the way the conversational flow shows it inline.
	SessionID string `json:"session_id"`
}

type CustomExerciseRequest struct {
	UserID     string `json:"user_id" validate:"required"`
	SubjectID  string `json:"subject_id" validate:"required"`
	Topic      string `json:"topic" validate:"required"`
	Difficulty int    `json:"difficulty" validate:"required,difficulty_level"`
}

type SubmitSolutionRequest struct {
	UserID     string `json:"user_id" validate:"required"`
	ExerciseID string `json:"exercise_id" validate:"required"`
	Answer     string `json:"answer" validate:"required"`
}

// SolutionFeedback carries the agent's verdict back to the student. Feedback
// falls back to the raw agent payload when the verdict is unrecognized.
type SolutionFeedback struct {
	Correct    bool   `json:"correct"`
	Recognized bool   `json:"recognized"`
	Feedback   string `json:"feedback"`
}

type exerciseService struct {
	repo      repositories.Repository
	tutor     tutor.Client
	chat      ChatService
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *utils.Validator
}

func NewExerciseService(repo repositories.Repository, tutorClient tutor.Client, chat ChatService, publisher events.EventPublisher, logger *slog.Logger, validator *utils.Validator) ExerciseService {
	return &exerciseService{
		repo:      repo,
		tutor:     tutorClient,
		chat:      chat,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (s *exerciseService) ListExercises(ctx context.Context, userID string) ([]models.Exercise, error) {
	exercises, err := s.repo.Exercise().GetByUser(ctx, userID)
	if err != nil {
		return nil, WrapInternal("list exercises", err)
	}
	return exercises, nil
}

func (s *exerciseService) ListPending(ctx context.Context, userID string) ([]models.Exercise, error) {
	exercises, err := s.repo.Exercise().GetPendingByUser(ctx, userID)
	if err != nil {
		return nil, WrapInternal("list pending exercises", err)
	}
	return exercises, nil
}

func (s *exerciseService) RequestExercise(ctx context.Context, req *GenerateExerciseRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	subject, err := s.activeSubject(ctx, req.SubjectID)
	if err != nil {
		return err
	}

	payload, err := s.tutor.GenerateExercise(ctx, tutor.ExerciseRequest{
		UserID:     req.UserID,
		Subject:    subject.Name,
		SubjectID:  subject.ID,
		Topic:      defaultExerciseTopic,
		Difficulty: defaultExerciseDifficulty,
	})
	if err != nil {
		s.logger.Error("exercise generation failed",
			"user_id", req.UserID,
			"subject_id", req.SubjectID,
			"error", err)
		return fmt.Errorf("%w: %v", ErrTutorUnavailable, err)
	}

	if req.SessionID != "" {
		if err := s.chat.AttachExerciseMessage(ctx, req.UserID, req.SessionID, payload); err != nil {
			return err
		}
	}

	event := events.NewExerciseRequestedEvent(req.UserID, subject.ID, defaultExerciseTopic, defaultExerciseDifficulty, false)
	if err := s.publisher.PublishDashboardEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish exercise event", "user_id", req.UserID, "error", err)
	}

	return nil
}

func (s *exerciseService) RequestCustomExercise(ctx context.Context, req *CustomExerciseRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	subject, err := s.activeSubject(ctx, req.SubjectID)
	if err != nil {
		return err
	}

	err = s.tutor.GenerateCustomExercise(ctx, tutor.ExerciseRequest{
		UserID:     req.UserID,
		Subject:    subject.Name,
		SubjectID:  subject.ID,
		Topic:      req.Topic,
		Difficulty: req.Difficulty,
	})
	if err != nil {
		s.logger.Error("custom exercise generation failed",
			"user_id", req.UserID,
			"topic", req.Topic,
			"error", err)
		return fmt.Errorf("%w: %v", ErrTutorUnavailable, err)
	}

	event := events.NewExerciseRequestedEvent(req.UserID, subject.ID, req.Topic, req.Difficulty, true)
	if err := s.publisher.PublishDashboardEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish exercise event", "user_id", req.UserID, "error", err)
	}

	return nil
}

func (s *exerciseService) SubmitSolution(ctx context.Context, req *SubmitSolutionRequest) (*SolutionFeedback, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	exercise, err := s.repo.Exercise().GetByID(ctx, req.ExerciseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExerciseNotFound
		}
		return nil, WrapInternal("load exercise", err)
	}
	if exercise.UserID != req.UserID {
		return nil, ErrExerciseAccessDenied
	}
	if exercise.Completed {
		return nil, ErrExerciseCompleted
	}

	var subjectName string
	if exercise.SubjectID != "" {
		if subject, err := s.repo.Subject().GetByID(ctx, exercise.SubjectID); err == nil {
			subjectName = subject.Name
		}
	}

	result, err := s.tutor.GradeSolution(ctx, tutor.SolutionRequest{
		UserID:     exercise.UserID,
		SubjectID:  exercise.SubjectID,
		Subject:    subjectName,
		Difficulty: exercise.DifficultyLevel,
		Topic:      exercise.Topic,
		Statement:  exercise.ExerciseText,
		UserAnswer: req.Answer,
		ExerciseID: exercise.ID,
	})
	if err != nil {
		s.logger.Error("grading failed",
			"exercise_id", exercise.ID,
			"error", err)
		return nil, fmt.Errorf("%w: %v", ErrTutorUnavailable, err)
	}

	feedback := &SolutionFeedback{
		Correct:    result.Correct(),
		Recognized: result.Recognized(),
		Feedback:   result.Guidance,
	}
	if !result.Recognized() {
		feedback.Feedback = string(result.Raw)
	}

	event := events.NewExerciseGradedEvent(exercise.UserID, exercise.ID, exercise.SubjectID, exercise.Topic, feedback.Correct)
	if err := s.publisher.PublishDashboardEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish grading event", "exercise_id", exercise.ID, "error", err)
	}

	s.logger.Info("exercise graded",
		"exercise_id", exercise.ID,
		"user_id", exercise.UserID,
		"correct", feedback.Correct)

	return feedback, nil
}

func (s *exerciseService) activeSubject(ctx context.Context, subjectID string) (*models.Subject, error) {
	subject, err := s.repo.Subject().GetByID(ctx, subjectID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSubjectNotFound
		}
		return nil, WrapInternal("load subject", err)
	}
	if !subject.IsActive {
		return nil, ErrSubjectInactive
	}
	return subject, nil
}
