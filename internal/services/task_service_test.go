package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladimiradmaev/vaidya-health/internal/domain"
	apperrors "github.com/vladimiradmaev/vaidya-health/internal/errors"
	"github.com/vladimiradmaev/vaidya-health/internal/repository"
	"github.com/vladimiradmaev/vaidya-health/internal/testutil"
)

var taskDay = time.Date(2026, 10, 18, 8, 15, 0, 0, time.UTC)

func newTaskService(t *testing.T) *TaskService {
	t.Helper()
	return NewTaskService(repository.NewTaskRepository(testutil.OpenTestDB(t)))
}

func TestTaskServiceSeedsDefaultsOnce(t *testing.T) {
	svc := newTaskService(t)
	ctx := signedIn(2)

	tasks, err := svc.ListForDay(ctx, taskDay)
	require.NoError(t, err)
	require.Len(t, tasks, len(defaultTasks))
	assert.Equal(t, "Take Morning Insulin", tasks[0].Title)
	assert.Equal(t, "2026-10-18", tasks[0].Day)

	again, err := svc.ListForDay(ctx, taskDay)
	require.NoError(t, err)
	assert.Len(t, again, len(defaultTasks))

	other, err := svc.ListForDay(signedIn(3), taskDay)
	require.NoError(t, err)
	assert.Len(t, other, len(defaultTasks))
	assert.NotEqual(t, tasks[0].ID, other[0].ID)
}

func TestTaskServiceAdd(t *testing.T) {
	svc := newTaskService(t)
	ctx := signedIn(2)

	_, err := svc.ListForDay(ctx, taskDay)
	require.NoError(t, err)

	task, err := svc.Add(ctx, taskDay, NewTask{Title: " Vitamin D ", Time: "6:30"})
	require.NoError(t, err)
	assert.Equal(t, "Vitamin D", task.Title)
	assert.Equal(t, "06:30", task.Time)
	assert.Equal(t, "other", task.Type)
	assert.Equal(t, "medium", task.Priority)

	tasks, err := svc.ListForDay(ctx, taskDay)
	require.NoError(t, err)
	assert.Equal(t, "Vitamin D", tasks[0].Title)

	_, err = svc.Add(ctx, taskDay, NewTask{Title: "Nap", Time: "26:00"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.Add(ctx, taskDay, NewTask{Title: "Nap", Time: "14:00", Priority: "urgent"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.Add(ctx, taskDay, NewTask{Time: "14:00"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestTaskServiceToggle(t *testing.T) {
	svc := newTaskService(t)
	ctx := signedIn(2)

	tasks, err := svc.ListForDay(ctx, taskDay)
	require.NoError(t, err)

	toggled, err := svc.Toggle(ctx, tasks[0].ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	_, err = svc.Toggle(signedIn(9), tasks[0].ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	tasks, err = svc.ListForDay(ctx, taskDay)
	require.NoError(t, err)
	p := Progress(tasks)
	assert.Equal(t, 1, p.Completed)
	assert.Equal(t, len(defaultTasks), p.Total)
	assert.Equal(t, 12.5, p.Percent)

	toggled, err = svc.Toggle(ctx, tasks[0].ID)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)

	_, err = svc.ListForDay(context.Background(), taskDay)
	assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
}

func TestProgress(t *testing.T) {
	assert.Equal(t, domain.TaskProgress{}, Progress(nil))

	p := Progress([]domain.DailyTask{{Completed: true}, {}, {}})
	assert.Equal(t, 1, p.Completed)
	assert.Equal(t, 3, p.Total)
	assert.Equal(t, 33.3, p.Percent)
}

func TestNextPending(t *testing.T) {
	tasks := []domain.DailyTask{
		{ID: 1, Time: "07:00"},
		{ID: 2, Time: "12:00", Completed: true},
		{ID: 3, Time: "19:00"},
		{ID: 4, Time: "13:00"},
	}

	next := NextPending(tasks, time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC))
	require.NotNil(t, next)
	assert.Equal(t, uint(4), next.ID)

	assert.Nil(t, NextPending(tasks, time.Date(2026, 10, 18, 20, 0, 0, 0, time.UTC)))
}
