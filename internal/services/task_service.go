package services

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/vladimiradmaev/vaidya-health/internal/domain"
	apperrors "github.com/vladimiradmaev/vaidya-health/internal/errors"
	"github.com/vladimiradmaev/vaidya-health/internal/logger"
	"github.com/vladimiradmaev/vaidya-health/internal/session"
	"github.com/vladimiradmaev/vaidya-health/internal/utils"
)

// NewTask is a user-defined checklist item
type NewTask struct {
	Title       string `validate:"required,max=200"`
	Description string `validate:"max=500"`
	Type        string `validate:"omitempty,oneof=medication meal activity hydration monitoring other"`
	Time        string `validate:"required"`
	Priority    string `validate:"omitempty,oneof=high medium low"`
}

// defaultTasks seed an empty day
var defaultTasks = []NewTask{
	{Time: "07:00", Title: "Take Morning Insulin", Description: "10 units before breakfast", Type: "medication", Priority: "high"},
	{Time: "07:30", Title: "Healthy Breakfast", Description: "Low-carb breakfast as planned", Type: "meal", Priority: "medium"},
	{Time: "08:00", Title: "Morning Walk", Description: "30 minutes light exercise", Type: "activity", Priority: "medium"},
	{Time: "09:00", Title: "Water Intake Check", Description: "First 2 glasses of the day", Type: "hydration", Priority: "low"},
	{Time: "12:00", Title: "Blood Sugar Check", Description: "Pre-lunch glucose monitoring", Type: "monitoring", Priority: "high"},
	{Time: "12:30", Title: "Lunch", Description: "Grilled chicken salad", Type: "meal", Priority: "medium"},
	{Time: "13:00", Title: "Afternoon Medication", Description: "Metformin 500mg", Type: "medication", Priority: "high"},
	{Time: "19:00", Title: "Evening Walk", Description: "Light activity after dinner", Type: "activity", Priority: "low"},
}

// TaskService manages the per-day health checklist
type TaskService struct {
	tasks domain.TaskRepository
}

func NewTaskService(tasks domain.TaskRepository) *TaskService {
	return &TaskService{tasks: tasks}
}

// ListForDay returns the checklist of day ordered by time. A day without
// any tasks is seeded with the default routine first.
func (s *TaskService) ListForDay(ctx context.Context, day time.Time) ([]domain.DailyTask, error) {
	userID, err := session.UserID(ctx)
	if err != nil {
		return nil, err
	}

	key := utils.DayKey(day)
	tasks, err := s.tasks.ListByDay(ctx, userID, key)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	if len(tasks) > 0 {
		return tasks, nil
	}

	seed := make([]*domain.DailyTask, 0, len(defaultTasks))
	for _, t := range defaultTasks {
		seed = append(seed, newDailyTask(userID, key, t))
	}
	if err := s.tasks.CreateBatch(ctx, seed); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	logger.Info("Seeded default tasks", "user_id", userID, "day", key, "count", len(seed))

	tasks, err = s.tasks.ListByDay(ctx, userID, key)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return tasks, nil
}

// Add creates a custom task on day
func (s *TaskService) Add(ctx context.Context, day time.Time, in NewTask) (*domain.DailyTask, error) {
	userID, err := session.UserID(ctx)
	if err != nil {
		return nil, err
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Time = strings.TrimSpace(in.Time)
	if in.Type == "" {
		in.Type = "other"
	}
	if in.Priority == "" {
		in.Priority = "medium"
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	clock, err := utils.NormalizeClock(in.Time)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	in.Time = clock

	task := newDailyTask(userID, utils.DayKey(day), in)
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return task, nil
}

// Toggle flips the completion flag of one of the user's tasks
func (s *TaskService) Toggle(ctx context.Context, taskID uint) (*domain.DailyTask, error) {
	userID, err := session.UserID(ctx)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.Get(ctx, userID, taskID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	if task == nil {
		return nil, apperrors.NewNotFoundError("task")
	}

	task.Completed = !task.Completed
	if err := s.tasks.SetCompleted(ctx, userID, taskID, task.Completed); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return task, nil
}

// Progress counts completed tasks. Percent is rounded to one decimal.
func Progress(tasks []domain.DailyTask) domain.TaskProgress {
	p := domain.TaskProgress{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			p.Completed++
		}
	}
	if p.Total > 0 {
		p.Percent = math.Round(float64(p.Completed)/float64(p.Total)*1000) / 10
	}
	return p
}

// NextPending returns the earliest uncompleted task at or after now, or nil
func NextPending(tasks []domain.DailyTask, now time.Time) *domain.DailyTask {
	current := now.Hour()*60 + now.Minute()
	var next *domain.DailyTask
	for i := range tasks {
		t := &tasks[i]
		if t.Completed || utils.TimeToMinutes(t.Time) < current {
			continue
		}
		if next == nil || utils.TimeToMinutes(t.Time) < utils.TimeToMinutes(next.Time) {
			next = t
		}
	}
	return next
}

func newDailyTask(userID uint, day string, in NewTask) *domain.DailyTask {
	return &domain.DailyTask{
		UserID:      userID,
		Day:         day,
		Title:       in.Title,
		Description: in.Description,
		Type:        in.Type,
		Time:        in.Time,
		Priority:    in.Priority,
	}
}
