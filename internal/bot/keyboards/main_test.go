package keyboards

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladimiradmaev/vaidya-health/internal/domain"
)

func TestReportListCallbackData(t *testing.T) {
	reports := []domain.HealthReport{
		{ID: "6f1c2b6e-0000-4000-8000-000000000001", Title: "Lipid panel", Analysis: &domain.HealthReportAnalysis{HealthScore: 45}},
		{ID: "6f1c2b6e-0000-4000-8000-000000000002", Title: "Notes"},
	}

	kb := ReportList(reports)
	require.Len(t, kb.InlineKeyboard, 3)

	first := kb.InlineKeyboard[0][0]
	assert.Equal(t, "Lipid panel · 45", first.Text)
	require.NotNil(t, first.CallbackData)
	assert.Equal(t, PrefixReport+reports[0].ID, *first.CallbackData)
	assert.LessOrEqual(t, len(*first.CallbackData), 64)

	assert.Equal(t, "Notes", kb.InlineKeyboard[1][0].Text)
}

func TestReportListCapsButtons(t *testing.T) {
	reports := make([]domain.HealthReport, 15)
	for i := range reports {
		reports[i] = domain.HealthReport{ID: "id", Title: "r"}
	}
	assert.Len(t, ReportList(reports).InlineKeyboard, maxListButtons+1)
}

func TestTaskList(t *testing.T) {
	kb := TaskList([]domain.DailyTask{
		{ID: 3, Time: "07:00", Title: "Take Morning Insulin", Completed: true},
		{ID: 4, Time: "08:00", Title: "Morning Walk"},
	})
	require.Len(t, kb.InlineKeyboard, 3)
	assert.True(t, strings.HasPrefix(kb.InlineKeyboard[0][0].Text, "✅ 07:00"))
	assert.True(t, strings.HasPrefix(kb.InlineKeyboard[1][0].Text, "⬜ 08:00"))
	assert.Equal(t, "task:4", *kb.InlineKeyboard[1][0].CallbackData)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate(" short ", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "пров…", truncate("проверка", 5))
}
