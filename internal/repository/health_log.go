package repository

import (
	"context"
	"fmt"

	"github.com/vladimiradmaev/vaidya-health/internal/database"
	"github.com/vladimiradmaev/vaidya-health/internal/domain"
	"gorm.io/gorm"
)

// HealthLogRepository stores metric readings
type HealthLogRepository struct {
	db *gorm.DB
}

// NewHealthLogRepository creates a new health log repository
func NewHealthLogRepository(db *gorm.DB) *HealthLogRepository {
	return &HealthLogRepository{db: db}
}

// Create stores a reading
func (r *HealthLogRepository) Create(ctx context.Context, log *domain.HealthLog) error {
	row := &database.HealthLog{
		UserID:     log.UserID,
		Type:       log.Type,
		Value:      log.Value,
		Notes:      log.Notes,
		RecordedAt: log.RecordedAt,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to create health log: %w", err)
	}
	log.ID = row.ID
	return nil
}

// RecentByType returns the newest readings of one metric, newest first
func (r *HealthLogRepository) RecentByType(ctx context.Context, userID uint, metricType string, limit int) ([]domain.HealthLog, error) {
	var rows []database.HealthLog
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND type = ?", userID, metricType).
		Order("recorded_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get health logs: %w", err)
	}

	logs := make([]domain.HealthLog, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, domain.HealthLog{
			ID:         row.ID,
			UserID:     row.UserID,
			Type:       row.Type,
			Value:      row.Value,
			Notes:      row.Notes,
			RecordedAt: row.RecordedAt,
		})
	}
	return logs, nil
}
