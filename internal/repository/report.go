package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/vladimiradmaev/vaidya-health/internal/database"
	"github.com/vladimiradmaev/vaidya-health/internal/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ReportRepository stores health reports. Every query filters on user_id, so
// one user can never read or delete another user's reports.
type ReportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create inserts the report and copies the store-assigned id and timestamps back
func (r *ReportRepository) Create(ctx context.Context, report *domain.HealthReport) error {
	row := &database.HealthReport{
		ID:        report.ID,
		UserID:    report.UserID,
		Title:     report.Title,
		Content:   report.Content,
		FileURL:   report.FileURL,
		Analysis:  datatypes.NewJSONType(report.Analysis),
		CreatedAt: report.CreatedAt,
	}

	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	report.ID = row.ID
	report.CreatedAt = row.CreatedAt
	report.UpdatedAt = row.UpdatedAt
	return nil
}

// List returns the user's reports, newest first
func (r *ReportRepository) List(ctx context.Context, userID uint) ([]domain.HealthReport, error) {
	var rows []database.HealthReport
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get user reports: %w", err)
	}

	reports := make([]domain.HealthReport, 0, len(rows))
	for i := range rows {
		reports = append(reports, toDomainReport(&rows[i]))
	}
	return reports, nil
}

// Get returns a single report, or nil when the user has no report with that id
func (r *ReportRepository) Get(ctx context.Context, userID uint, reportID string) (*domain.HealthReport, error) {
	var row database.HealthReport
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", reportID, userID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	report := toDomainReport(&row)
	return &report, nil
}

// Delete removes the report matching both ids and returns the affected row
// count. A mismatch deletes nothing and is not an error.
func (r *ReportRepository) Delete(ctx context.Context, userID uint, reportID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", reportID, userID).
		Delete(&database.HealthReport{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete report: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func toDomainReport(row *database.HealthReport) domain.HealthReport {
	return domain.HealthReport{
		ID:        row.ID,
		UserID:    row.UserID,
		Title:     row.Title,
		Content:   row.Content,
		FileURL:   row.FileURL,
		Analysis:  row.Analysis.Data(),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
