package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vladimiradmaev/vaidya-health/internal/domain"
	apperrors "github.com/vladimiradmaev/vaidya-health/internal/errors"
	"github.com/vladimiradmaev/vaidya-health/internal/logger"
	"github.com/vladimiradmaev/vaidya-health/internal/session"
	"github.com/vladimiradmaev/vaidya-health/internal/storage"
)

// Analyzer produces a structured analysis from report text
type Analyzer interface {
	AnalyzeReport(ctx context.Context, reportText string) (*domain.HealthReportAnalysis, error)
}

// Upload is a file attached to a report submission
type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
}

type submitReportInput struct {
	Title   string `validate:"required,max=200"`
	Content string `validate:"required,max=20000"`
}

var errStorageDisabled = errors.New("object storage is not configured")

// ReportService runs the ingestion pipeline: upload, analysis, persistence.
type ReportService struct {
	reports  domain.ReportRepository
	analyzer Analyzer
	storage  storage.ObjectStorage // nil when uploads are disabled
	now      func() time.Time
}

func NewReportService(reports domain.ReportRepository, analyzer Analyzer, store storage.ObjectStorage) *ReportService {
	return &ReportService{
		reports:  reports,
		analyzer: analyzer,
		storage:  store,
		now:      time.Now,
	}
}

// SubmitReport stores a new report for the signed-in user. A failed analysis
// does not fail the submission; the report is saved without one.
func (s *ReportService) SubmitReport(ctx context.Context, title, content string, file *Upload) (*domain.HealthReport, error) {
	userID, err := session.UserID(ctx)
	if err != nil {
		return nil, err
	}

	input := submitReportInput{
		Title:   strings.TrimSpace(title),
		Content: strings.TrimSpace(content),
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	report := &domain.HealthReport{
		UserID:  userID,
		Title:   input.Title,
		Content: input.Content,
	}

	if file != nil {
		if len(file.Data) == 0 {
			return nil, apperrors.NewValidationError("attached file is empty")
		}
		url, err := s.upload(ctx, userID, file)
		if err != nil {
			return nil, err
		}
		report.FileURL = url
	}

	analysis, err := s.analyzer.AnalyzeReport(ctx, input.Content)
	if err != nil {
		logger.Warn("Saving report without analysis", "user_id", userID, "error", err)
	} else {
		report.Analysis = analysis
	}

	if err := s.reports.Create(ctx, report); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	logger.Info("Report submitted",
		"user_id", userID,
		"report_id", report.ID,
		"has_file", report.FileURL != "",
		"has_analysis", report.HasAnalysis())
	return report, nil
}

func (s *ReportService) upload(ctx context.Context, userID uint, file *Upload) (string, error) {
	if s.storage == nil {
		return "", apperrors.NewStorageWriteError(errStorageDisabled)
	}

	key := storage.ObjectKey(userID, file.FileName, s.now())
	url, err := s.storage.Upload(ctx, key, file.ContentType, file.Data)
	if err != nil {
		logger.Error("Report file upload failed", "user_id", userID, "key", key, "error", err)
		return "", apperrors.NewStorageWriteError(err)
	}
	return url, nil
}

// UploadsEnabled reports whether submissions may carry a file
func (s *ReportService) UploadsEnabled() bool {
	return s.storage != nil
}

// ListReports returns the signed-in user's reports, newest first
func (s *ReportService) ListReports(ctx context.Context) ([]domain.HealthReport, error) {
	userID, err := session.UserID(ctx)
	if err != nil {
		return nil, err
	}

	reports, err := s.reports.List(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return reports, nil
}

// GetReport returns one of the signed-in user's reports
func (s *ReportService) GetReport(ctx context.Context, reportID string) (*domain.HealthReport, error) {
	userID, err := session.UserID(ctx)
	if err != nil {
		return nil, err
	}

	report, err := s.reports.Get(ctx, userID, reportID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	if report == nil {
		return nil, apperrors.NewNotFoundError("report")
	}
	return report, nil
}

// DeleteReport removes a report. Ids that do not belong to the user are a
// silent no-op.
func (s *ReportService) DeleteReport(ctx context.Context, reportID string) error {
	userID, err := session.UserID(ctx)
	if err != nil {
		return err
	}

	affected, err := s.reports.Delete(ctx, userID, reportID)
	if err != nil {
		return apperrors.NewDatabaseError(err)
	}

	logger.Info("Report delete", "user_id", userID, "report_id", reportID, "deleted", affected)
	return nil
}

// Analyze runs a standalone analysis without storing anything. Failures are
// returned to the caller instead of being swallowed.
func (s *ReportService) Analyze(ctx context.Context, text string) (*domain.HealthReportAnalysis, error) {
	if _, err := session.UserID(ctx); err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("report text is required")
	}
	return s.analyzer.AnalyzeReport(ctx, text)
}
