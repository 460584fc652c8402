package handlers

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/vaidya-health/internal/bot/keyboards"
	"github.com/vladimiradmaev/vaidya-health/internal/bot/menus"
	"github.com/vladimiradmaev/vaidya-health/internal/logger"
	"github.com/vladimiradmaev/vaidya-health/internal/services"
)

// The actions below are shared by commands, callbacks and text input.

func submitReport(ctx context.Context, api BotAPI, deps Dependencies, chatID int64, title, content string) error {
	return submitReportWithFile(ctx, api, deps, chatID, title, content, nil)
}

func submitReportWithFile(ctx context.Context, api BotAPI, deps Dependencies, chatID int64, title, content string, file *services.Upload) error {
	processing, err := api.Send(tgbotapi.NewMessage(chatID, "⏳ Analyzing your report..."))
	if err != nil {
		return fmt.Errorf("failed to send processing message: %w", err)
	}
	defer deleteMessage(api, chatID, processing.MessageID)

	report, err := deps.ReportSvc.SubmitReport(ctx, title, content, file)
	if err != nil {
		return replyError(ctx, api, chatID, err)
	}

	text := menus.FormatReportCard(report)
	if report.Analysis == nil {
		text += "\nThe report was saved, but the analysis failed. You can still view it later."
	}
	return menus.SendHTML(api, chatID, text, keyboards.ReportCard(report.ID))
}

func showReports(ctx context.Context, api BotAPI, deps Dependencies, chatID int64) error {
	reports, err := deps.ReportSvc.ListReports(ctx)
	if err != nil {
		return replyError(ctx, api, chatID, err)
	}
	return menus.SendHTML(api, chatID, menus.FormatReportList(reports), keyboards.ReportList(reports))
}

func showReport(ctx context.Context, api BotAPI, deps Dependencies, chatID int64, reportID string) error {
	report, err := deps.ReportSvc.GetReport(ctx, reportID)
	if err != nil {
		return replyError(ctx, api, chatID, err)
	}
	return menus.SendHTML(api, chatID, menus.FormatReportCard(report), keyboards.ReportCard(report.ID))
}

func showStats(ctx context.Context, api BotAPI, deps Dependencies, chatID int64) error {
	stats, err := deps.StatsSvc.ComputeStats(ctx)
	if err != nil {
		return replyError(ctx, api, chatID, err)
	}
	return menus.SendHTML(api, chatID, menus.FormatStats(stats), keyboards.BackToMenu())
}

func runAnalysis(ctx context.Context, api BotAPI, deps Dependencies, chatID int64, text string) error {
	processing, err := api.Send(tgbotapi.NewMessage(chatID, "⏳ Analyzing..."))
	if err != nil {
		return fmt.Errorf("failed to send processing message: %w", err)
	}
	defer deleteMessage(api, chatID, processing.MessageID)

	analysis, err := deps.ReportSvc.Analyze(ctx, text)
	if err != nil {
		return replyError(ctx, api, chatID, err)
	}
	return menus.SendHTML(api, chatID, menus.FormatAnalysis(analysis), keyboards.BackToMenu())
}

func showTasks(ctx context.Context, api BotAPI, deps Dependencies, chatID int64, now time.Time) error {
	tasks, err := deps.TaskSvc.ListForDay(ctx, now)
	if err != nil {
		return replyError(ctx, api, chatID, err)
	}
	return menus.SendHTML(api, chatID, menus.FormatTasks(now, tasks, now), keyboards.TaskList(tasks))
}

func sendChat(ctx context.Context, api BotAPI, deps Dependencies, chatID int64, message string) error {
	if _, err := api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		logger.Debug("Failed to send typing action", "error", err)
	}

	reply, err := deps.ChatSvc.Send(ctx, message)
	if err != nil {
		return replyError(ctx, api, chatID, err)
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		reply = "🤖 I have no answer to that. Could you rephrase?"
	}
	return sendText(api, chatID, reply)
}

func logMetric(ctx context.Context, api BotAPI, deps Dependencies, chatID int64, entry services.NewHealthLog) error {
	saved, err := deps.HealthLogSvc.AddLog(ctx, entry)
	if err != nil {
		return replyError(ctx, api, chatID, err)
	}
	text := fmt.Sprintf("✅ %s %s saved.", keyboards.MetricLabel(saved.Type), html.EscapeString(saved.Value))
	return menus.SendHTML(api, chatID, text, keyboards.Metrics())
}

func showMetrics(ctx context.Context, api BotAPI, deps Dependencies, chatID int64) error {
	readings, err := deps.HealthLogSvc.LatestReadings(ctx)
	if err != nil {
		return replyError(ctx, api, chatID, err)
	}
	return menus.SendHTML(api, chatID, menus.FormatReadings(readings), keyboards.Metrics())
}

func deleteMessage(api BotAPI, chatID int64, messageID int) {
	if _, err := api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		logger.Debug("Failed to delete message", "chat_id", chatID, "error", err)
	}
}
