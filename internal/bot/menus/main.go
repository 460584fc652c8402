package menus

import (
	"fmt"
	"html"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/vaidya-health/internal/bot/keyboards"
	"github.com/vladimiradmaev/vaidya-health/internal/domain"
	"github.com/vladimiradmaev/vaidya-health/internal/services"
)

// Sender is the part of the Telegram API the menus need
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

const mainMenuText = `🩺 <b>VAIDYA.ai</b>, your personal health report assistant

📝 Submit a lab report or doctor's note and I will:
• Summarize the key findings
• Suggest practical recommendations
• Track your health score over time

⚠️ <b>Important:</b> this is not medical advice. Always consult a doctor!

Choose an action:`

const HelpText = `🤖 <b>How to use VAIDYA.ai</b>

<b>Reports</b>
/report - submit a new report (or /report Title | text)
/reports - list your reports
/stats - health score dashboard
/analyze - one-off analysis that is not saved

<b>Daily care</b>
/tasks - today's checklist
/log - record a reading, e.g. /log bp 120/80
/metrics - latest readings with trends

<b>Assistant</b>
/chat - talk to the assistant (or /chat your question)
/clearchat - forget the conversation

/signout - end your session
/start - sign in and show the menu

You can also send a PDF, image or text file as a document. The caption becomes the report text.`

// SendMainMenu sends the main menu to a chat
func SendMainMenu(api Sender, chatID int64) error {
	return SendHTML(api, chatID, mainMenuText, keyboards.MainMenu())
}

// SendHTML sends an HTML-formatted message with an optional keyboard
func SendHTML(api Sender, chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	_, err := api.Send(msg)
	return err
}

// FormatReportCard renders a stored report with its analysis
func FormatReportCard(r *domain.HealthReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📄 <b>%s</b>\n", esc(r.Title))
	fmt.Fprintf(&sb, "🗓 %s\n", r.CreatedAt.Format("02 Jan 2006 15:04"))
	if r.FileURL != "" {
		fmt.Fprintf(&sb, "📎 <a href=\"%s\">Attached file</a>\n", esc(r.FileURL))
	}
	sb.WriteString("\n")

	if r.Analysis == nil {
		sb.WriteString("⏳ No analysis is available for this report.\n")
		return sb.String()
	}
	sb.WriteString(FormatAnalysis(r.Analysis))
	return sb.String()
}

// FormatAnalysis renders the structured analysis
func FormatAnalysis(a *domain.HealthReportAnalysis) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s <b>Health score: %d/100</b> (%s)\n", scoreEmoji(a.HealthScore), a.HealthScore, esc(a.OverallHealth))
	if a.Summary != "" {
		fmt.Fprintf(&sb, "\n%s\n", esc(a.Summary))
	}
	writeList(&sb, "🔍 Key findings", a.KeyFindings)
	writeList(&sb, "💡 Recommendations", a.Recommendations)
	writeList(&sb, "⚠️ Risk factors", a.RiskFactors)
	return sb.String()
}

// FormatReportList renders the report overview
func FormatReportList(reports []domain.HealthReport) string {
	if len(reports) == 0 {
		return "You have no reports yet. Use /report to submit your first one."
	}
	return fmt.Sprintf("📂 <b>Your reports</b> (%d)\n\nSelect a report to view its analysis:", len(reports))
}

// FormatStats renders the health dashboard
func FormatStats(s *domain.HealthStats) string {
	if s.TotalReports == 0 {
		return "📊 No reports yet. Submit one with /report to see your statistics."
	}

	var sb strings.Builder
	sb.WriteString("📊 <b>Health statistics</b>\n\n")
	fmt.Fprintf(&sb, "Reports: %d\n", s.TotalReports)
	if len(s.ScoreHistory) == 0 {
		sb.WriteString("No analyzed reports yet.\n")
		return sb.String()
	}
	fmt.Fprintf(&sb, "Average score: %d\n", s.AverageHealthScore)
	fmt.Fprintf(&sb, "Latest score: %s %d\n", scoreEmoji(s.LatestScore), s.LatestScore)

	sb.WriteString("\n<b>Score history</b>\n")
	for _, p := range s.ScoreHistory {
		fmt.Fprintf(&sb, "%s  %s %d\n", p.Date.Format("02 Jan"), scoreBar(p.Score), p.Score)
	}

	writeList(&sb, "💡 Top recommendations", s.TopRecommendations)
	writeList(&sb, "⚠️ Risk factors", s.RiskFactors)
	return sb.String()
}

// FormatTasks renders the checklist header with progress
func FormatTasks(day time.Time, tasks []domain.DailyTask, now time.Time) string {
	p := services.Progress(tasks)

	var sb strings.Builder
	fmt.Fprintf(&sb, "✅ <b>Daily tasks</b> for %s\n", day.Format("Mon, 02 Jan"))
	fmt.Fprintf(&sb, "Progress: %d/%d (%.0f%%)\n", p.Completed, p.Total, p.Percent)
	if next := services.NextPending(tasks, now); next != nil {
		fmt.Fprintf(&sb, "⏰ Next: %s %s\n", next.Time, esc(next.Title))
	}
	sb.WriteString("\nTap a task to mark it done or undone.")
	return sb.String()
}

// FormatReadings renders the latest metric readings
func FormatReadings(readings []domain.MetricReading) string {
	if len(readings) == 0 {
		return "❤️ No readings yet. Log one with /log bp 120/80 or tap the button below."
	}

	var sb strings.Builder
	sb.WriteString("❤️ <b>Latest readings</b>\n\n")
	for _, r := range readings {
		fmt.Fprintf(&sb, "%s: <b>%s</b> %s\n", keyboards.MetricLabel(r.Type), esc(r.Value), trendArrow(r.Trend))
		if r.Notes != "" {
			fmt.Fprintf(&sb, "   <i>%s</i>\n", esc(r.Notes))
		}
	}
	return sb.String()
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n<b>%s</b>\n", title)
	for _, item := range items {
		fmt.Fprintf(sb, "• %s\n", esc(item))
	}
}

func scoreEmoji(score int) string {
	switch {
	case score >= 80:
		return "🟢"
	case score >= 60:
		return "🟡"
	default:
		return "🔴"
	}
}

// scoreBar draws a ten-cell bar, clamping scores outside 0-100
func scoreBar(score int) string {
	filled := score / 10
	if filled < 0 {
		filled = 0
	}
	if filled > 10 {
		filled = 10
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

func trendArrow(trend string) string {
	switch trend {
	case domain.TrendUp:
		return "↑"
	case domain.TrendDown:
		return "↓"
	default:
		return "→"
	}
}

func esc(s string) string {
	return html.EscapeString(strings.ToValidUTF8(s, ""))
}
