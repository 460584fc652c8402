package keyboards

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/vaidya-health/internal/domain"
)

// Callback data prefixes carrying an id after the colon
const (
	PrefixReport = "report:"
	PrefixDelete = "delete:"
	PrefixTask   = "task:"
	PrefixMetric = "metric:"
)

// Callback data of the menu buttons
const (
	ActionNewReport   = "new_report"
	ActionListReports = "list_reports"
	ActionAnalyze     = "analyze"
	ActionStats       = "stats"
	ActionTasks       = "tasks"
	ActionAddTask     = "add_task"
	ActionChat        = "chat"
	ActionMetrics     = "metrics"
	ActionLogMetric   = "log_metric"
	ActionMainMenu    = "main_menu"
	ActionHelp        = "help"
)

// maxListButtons keeps report lists within a readable keyboard
const maxListButtons = 10

// MainMenu creates the main menu keyboard
func MainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 New report", ActionNewReport),
			tgbotapi.NewInlineKeyboardButtonData("📂 My reports", ActionListReports),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Health stats", ActionStats),
			tgbotapi.NewInlineKeyboardButtonData("🔬 Quick analysis", ActionAnalyze),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Daily tasks", ActionTasks),
			tgbotapi.NewInlineKeyboardButtonData("❤️ Metrics", ActionMetrics),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💬 Ask VAIDYA", ActionChat),
			tgbotapi.NewInlineKeyboardButtonData("❓ Help", ActionHelp),
		),
	)
}

// BackToMenu is a single-button keyboard returning to the main menu
func BackToMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", ActionMainMenu),
		),
	)
}

// ReportList has one button per report, newest first
func ReportList(reports []domain.HealthReport) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, r := range reports {
		if i == maxListButtons {
			break
		}
		label := truncate(r.Title, 40)
		if r.Analysis != nil {
			label = fmt.Sprintf("%s · %d", label, r.Analysis.HealthScore)
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, PrefixReport+r.ID),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📝 New report", ActionNewReport),
		tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", ActionMainMenu),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// ReportCard offers deletion and navigation for a single report
func ReportCard(reportID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑️ Delete", PrefixDelete+reportID),
			tgbotapi.NewInlineKeyboardButtonData("📂 All reports", ActionListReports),
		),
	)
}

// TaskList has a toggle button per task
func TaskList(tasks []domain.DailyTask) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(tasks)+1)
	for _, t := range tasks {
		mark := "⬜"
		if t.Completed {
			mark = "✅"
		}
		label := fmt.Sprintf("%s %s %s", mark, t.Time, truncate(t.Title, 40))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("%s%d", PrefixTask, t.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("➕ Add task", ActionAddTask),
		tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", ActionMainMenu),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// MetricTypes lets the user pick which metric to log
func MetricTypes() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, t := range domain.MetricTypes {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(MetricLabel(t), PrefixMetric+t),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", ActionMainMenu),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// Metrics is shown under the latest readings
func Metrics() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Log reading", ActionLogMetric),
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", ActionMainMenu),
		),
	)
}

// MetricLabel is the human name of a metric type
func MetricLabel(metricType string) string {
	switch metricType {
	case domain.MetricBloodPressure:
		return "🩺 Blood pressure"
	case domain.MetricBloodSugar:
		return "🩸 Blood sugar"
	case domain.MetricHeartRate:
		return "💓 Heart rate"
	case domain.MetricTemperature:
		return "🌡️ Temperature"
	case domain.MetricWeight:
		return "⚖️ Weight"
	default:
		return metricType
	}
}

func truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
