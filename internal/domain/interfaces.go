package domain

import (
	"context"
)

// UserRepository stores telegram users
type UserRepository interface {
	GetOrCreateUser(ctx context.Context, telegramID int64, username, firstName, lastName string) (*User, error)
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*User, error)
}

// ReportRepository stores health reports. Every method is scoped by userID.
type ReportRepository interface {
	Create(ctx context.Context, report *HealthReport) error
	List(ctx context.Context, userID uint) ([]HealthReport, error)
	Get(ctx context.Context, userID uint, reportID string) (*HealthReport, error)
	Delete(ctx context.Context, userID uint, reportID string) (int64, error)
}

// ChatRepository stores assistant conversation turns
type ChatRepository interface {
	Append(ctx context.Context, turns ...*ChatTurn) error
	Recent(ctx context.Context, userID uint, limit int) ([]ChatTurn, error)
	Clear(ctx context.Context, userID uint) error
}

// TaskRepository stores daily checklist items
type TaskRepository interface {
	ListByDay(ctx context.Context, userID uint, day string) ([]DailyTask, error)
	CreateBatch(ctx context.Context, tasks []*DailyTask) error
	Create(ctx context.Context, task *DailyTask) error
	SetCompleted(ctx context.Context, userID, taskID uint, completed bool) error
	Get(ctx context.Context, userID, taskID uint) (*DailyTask, error)
}

// HealthLogRepository stores metric readings
type HealthLogRepository interface {
	Create(ctx context.Context, log *HealthLog) error
	RecentByType(ctx context.Context, userID uint, metricType string, limit int) ([]HealthLog, error)
}
