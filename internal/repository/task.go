package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/vladimiradmaev/vaidya-health/internal/database"
	"github.com/vladimiradmaev/vaidya-health/internal/domain"
	"gorm.io/gorm"
)

// TaskRepository stores daily checklist items
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// ListByDay returns the user's tasks for day ordered by time of day
func (r *TaskRepository) ListByDay(ctx context.Context, userID uint, day string) ([]domain.DailyTask, error) {
	var rows []database.DailyTask
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND day = ?", userID, day).
		Order("time_of_day ASC").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get daily tasks: %w", err)
	}

	tasks := make([]domain.DailyTask, 0, len(rows))
	for i := range rows {
		tasks = append(tasks, toDomainTask(&rows[i]))
	}
	return tasks, nil
}

// CreateBatch inserts several tasks at once
func (r *TaskRepository) CreateBatch(ctx context.Context, tasks []*domain.DailyTask) error {
	if len(tasks) == 0 {
		return nil
	}

	rows := make([]*database.DailyTask, len(tasks))
	for i, task := range tasks {
		rows[i] = toTaskRow(task)
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to create daily tasks: %w", err)
	}
	for i, row := range rows {
		tasks[i].ID = row.ID
		tasks[i].CreatedAt = row.CreatedAt
	}
	return nil
}

// Create inserts a single task
func (r *TaskRepository) Create(ctx context.Context, task *domain.DailyTask) error {
	row := toTaskRow(task)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to create daily task: %w", err)
	}
	task.ID = row.ID
	task.CreatedAt = row.CreatedAt
	return nil
}

// Get returns the task, or nil when the user has no such task
func (r *TaskRepository) Get(ctx context.Context, userID, taskID uint) (*domain.DailyTask, error) {
	var row database.DailyTask
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", taskID, userID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get daily task: %w", err)
	}
	task := toDomainTask(&row)
	return &task, nil
}

// SetCompleted updates the completion flag of one of the user's tasks
func (r *TaskRepository) SetCompleted(ctx context.Context, userID, taskID uint, completed bool) error {
	result := r.db.WithContext(ctx).
		Model(&database.DailyTask{}).
		Where("id = ? AND user_id = ?", taskID, userID).
		Update("completed", completed)
	if result.Error != nil {
		return fmt.Errorf("failed to update daily task: %w", result.Error)
	}
	return nil
}

func toTaskRow(task *domain.DailyTask) *database.DailyTask {
	return &database.DailyTask{
		UserID:      task.UserID,
		Day:         task.Day,
		Title:       task.Title,
		Description: task.Description,
		Type:        task.Type,
		Time:        task.Time,
		Priority:    task.Priority,
		Completed:   task.Completed,
	}
}

func toDomainTask(row *database.DailyTask) domain.DailyTask {
	return domain.DailyTask{
		ID:          row.ID,
		UserID:      row.UserID,
		Day:         row.Day,
		Title:       row.Title,
		Description: row.Description,
		Type:        row.Type,
		Time:        row.Time,
		Priority:    row.Priority,
		Completed:   row.Completed,
		CreatedAt:   row.CreatedAt,
	}
}
