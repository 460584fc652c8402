package interfaces

import (
	"context"
	"time"

	"github.com/vladimiradmaev/vaidya-health/internal/domain"
	"github.com/vladimiradmaev/vaidya-health/internal/services"
)

// UserServiceInterface defines the contract for user operations
type UserServiceInterface interface {
	RegisterUser(ctx context.Context, telegramID int64, username, firstName, lastName string) (*domain.User, error)
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
}

// ReportServiceInterface defines the contract for report ingestion and retrieval.
// Every method reads the signed-in user from ctx.
type ReportServiceInterface interface {
	SubmitReport(ctx context.Context, title, content string, file *services.Upload) (*domain.HealthReport, error)
	ListReports(ctx context.Context) ([]domain.HealthReport, error)
	GetReport(ctx context.Context, reportID string) (*domain.HealthReport, error)
	DeleteReport(ctx context.Context, reportID string) error
	Analyze(ctx context.Context, text string) (*domain.HealthReportAnalysis, error)
	UploadsEnabled() bool
}

// StatsServiceInterface defines the contract for the health dashboard
type StatsServiceInterface interface {
	ComputeStats(ctx context.Context) (*domain.HealthStats, error)
}

// ChatServiceInterface defines the contract for the assistant conversation
type ChatServiceInterface interface {
	Send(ctx context.Context, message string) (string, error)
	History(ctx context.Context, limit int) ([]domain.ChatTurn, error)
	Clear(ctx context.Context) error
}

// TaskServiceInterface defines the contract for the daily checklist
type TaskServiceInterface interface {
	ListForDay(ctx context.Context, day time.Time) ([]domain.DailyTask, error)
	Add(ctx context.Context, day time.Time, in services.NewTask) (*domain.DailyTask, error)
	Toggle(ctx context.Context, taskID uint) (*domain.DailyTask, error)
}

// HealthLogServiceInterface defines the contract for metric readings
type HealthLogServiceInterface interface {
	AddLog(ctx context.Context, in services.NewHealthLog) (*domain.HealthLog, error)
	LatestReadings(ctx context.Context) ([]domain.MetricReading, error)
}

var (
	_ UserServiceInterface      = (*services.UserService)(nil)
	_ ReportServiceInterface    = (*services.ReportService)(nil)
	_ StatsServiceInterface     = (*services.StatsService)(nil)
	_ ChatServiceInterface      = (*services.ChatService)(nil)
	_ TaskServiceInterface      = (*services.TaskService)(nil)
	_ HealthLogServiceInterface = (*services.HealthLogService)(nil)
)
