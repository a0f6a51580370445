package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yamboly/tutor-dashboard-service/internal/analytics"
	"github.com/yamboly/tutor-dashboard-service/internal/events"
	"github.com/yamboly/tutor-dashboard-service/internal/export"
	"github.com/yamboly/tutor-dashboard-service/internal/repositories"
)

// ReportService builds the practice analysis report for a student and exports
// it as a spreadsheet.
type ReportService interface {
	GetReport(ctx context.Context, userID string) (*analytics.Report, error)
	ExportReport(ctx context.Context, userID string) (*ReportExport, error)
}

// ReportExport is a rendered spreadsheet ready to stream to the client.
type ReportExport struct {
	FileName    string
	ContentType string
	Data        []byte
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type reportService struct {
	repo      repositories.Repository
	engine    *analytics.Engine
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewReportService(repo repositories.Repository, engine *analytics.Engine, publisher events.EventPublisher, logger *slog.Logger) ReportService {
	return &reportService{
		repo:      repo,
		engine:    engine,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *reportService) GetReport(ctx context.Context, userID string) (*analytics.Report, error) {
	snap, err := s.loadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	report := s.engine.BuildReport(snap)

	highRisk := len(report.TopicsByRisk[analytics.RiskHigh])
	event := events.NewReportGeneratedEvent(userID, report.GeneratedAt, report.HasSufficientData, len(report.Topics), highRisk)
	if err := s.publisher.PublishDashboardEvent(ctx, event); err != nil {
		// Reporting still succeeds when the broker is down.
		s.logger.Warn("failed to publish report event", "user_id", userID, "error", err)
	}

	s.logger.Info("report generated",
		"user_id", userID,
		"topics", len(report.Topics),
		"high_risk", highRisk,
		"sufficient_data", report.HasSufficientData)

	return report, nil
}

func (s *reportService) ExportReport(ctx context.Context, userID string) (*ReportExport, error) {
	report, err := s.GetReport(ctx, userID)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, WrapInternal("export report", err)
	}

	data, err := export.ReportWorkbook(report, user.DisplayName())
	if err != nil {
		return nil, WrapInternal("render report workbook", err)
	}

	event := events.NewReportExportedEvent(userID, "xlsx", len(data))
	if err := s.publisher.PublishDashboardEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish export event", "user_id", userID, "error", err)
	}

	return &ReportExport{
		FileName:    fmt.Sprintf("reporte_%s.xlsx", report.GeneratedAt.Format("2006-01-02")),
		ContentType: xlsxContentType,
		Data:        data,
	}, nil
}

func (s *reportService) loadSnapshot(ctx context.Context, userID string) (analytics.Snapshot, error) {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return analytics.Snapshot{}, ErrUserNotFound
		}
		return analytics.Snapshot{}, WrapInternal("load user", err)
	}

	attempts, err := s.repo.Attempt().GetByUser(ctx, user.ID)
	if err != nil {
		return analytics.Snapshot{}, WrapInternal("load attempts", err)
	}

	exercises, err := s.repo.Exercise().GetByUser(ctx, user.ID)
	if err != nil {
		return analytics.Snapshot{}, WrapInternal("load exercises", err)
	}

	sessions, err := s.repo.Chat().GetSessionsByUser(ctx, user.ID)
	if err != nil {
		return analytics.Snapshot{}, WrapInternal("load chat sessions", err)
	}

	subscriptions, err := s.repo.Subscription().GetActiveByUser(ctx, user.ID)
	if err != nil {
		return analytics.Snapshot{}, WrapInternal("load subscriptions", err)
	}

	subjects, err := s.repo.Subject().List(ctx)
	if err != nil {
		return analytics.Snapshot{}, WrapInternal("load subjects", err)
	}

	return analytics.Snapshot{
		UserID:        user.ID,
		Attempts:      attempts,
		Exercises:     exercises,
		ChatSessions:  sessions,
		Subscriptions: subscriptions,
		Subjects:      subjects,
	}, nil
}
