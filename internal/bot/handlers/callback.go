package handlers

import (
	"context"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/vaidya-health/internal/bot/keyboards"
	"github.com/vladimiradmaev/vaidya-health/internal/bot/menus"
	"github.com/vladimiradmaev/vaidya-health/internal/bot/state"
	"github.com/vladimiradmaev/vaidya-health/internal/logger"
)

// CallbackHandler handles callback query messages
type CallbackHandler struct {
	api          BotAPI
	deps         Dependencies
	stateManager state.StateManager
	now          func() time.Time
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(api BotAPI, deps Dependencies, stateManager state.StateManager) *CallbackHandler {
	return &CallbackHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
		now:          time.Now,
	}
}

// Handle processes a callback query
func (h *CallbackHandler) Handle(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	// Answer the callback query first
	if _, err := h.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		logger.Warn("Failed to answer callback query", "error", err)
	}

	chatID := query.Message.Chat.ID
	telegramID := query.From.ID
	data := query.Data

	switch {
	case strings.HasPrefix(data, keyboards.PrefixReport):
		return showReport(ctx, h.api, h.deps, chatID, strings.TrimPrefix(data, keyboards.PrefixReport))
	case strings.HasPrefix(data, keyboards.PrefixDelete):
		return h.handleDelete(ctx, chatID, strings.TrimPrefix(data, keyboards.PrefixDelete))
	case strings.HasPrefix(data, keyboards.PrefixTask):
		return h.handleToggleTask(ctx, query, strings.TrimPrefix(data, keyboards.PrefixTask))
	case strings.HasPrefix(data, keyboards.PrefixMetric):
		return h.handleMetricChoice(chatID, telegramID, strings.TrimPrefix(data, keyboards.PrefixMetric))
	}

	switch data {
	case keyboards.ActionMainMenu:
		h.stateManager.SetUserState(telegramID, state.None)
		h.stateManager.ClearTempData(telegramID)
		return menus.SendMainMenu(h.api, chatID)
	case keyboards.ActionNewReport:
		h.stateManager.ClearTempData(telegramID)
		h.stateManager.SetUserState(telegramID, state.WaitingForReportTitle)
		return sendText(h.api, chatID, "📝 What is the title of the report? (for example: Lipid panel, March 2026)")
	case keyboards.ActionListReports:
		return showReports(ctx, h.api, h.deps, chatID)
	case keyboards.ActionAnalyze:
		h.stateManager.SetUserState(telegramID, state.WaitingForAnalysisText)
		return sendText(h.api, chatID, "🔬 Paste the report text to analyze. Nothing will be saved.")
	case keyboards.ActionStats:
		return showStats(ctx, h.api, h.deps, chatID)
	case keyboards.ActionTasks:
		return showTasks(ctx, h.api, h.deps, chatID, h.now())
	case keyboards.ActionAddTask:
		h.stateManager.SetUserState(telegramID, state.WaitingForTask)
		return sendText(h.api, chatID, "➕ Send the task as HH:MM Title, for example: 21:00 Take vitamins - with dinner")
	case keyboards.ActionChat:
		h.stateManager.SetUserState(telegramID, state.ChatMode)
		return sendText(h.api, chatID, "💬 Ask me anything about your health. Send /start to leave the chat.")
	case keyboards.ActionMetrics:
		return showMetrics(ctx, h.api, h.deps, chatID)
	case keyboards.ActionLogMetric:
		return menus.SendHTML(h.api, chatID, "Which reading do you want to log?", keyboards.MetricTypes())
	case keyboards.ActionHelp:
		return menus.SendHTML(h.api, chatID, menus.HelpText, keyboards.BackToMenu())
	default:
		return h.handleUnknownCallback(chatID)
	}
}

func (h *CallbackHandler) handleDelete(ctx context.Context, chatID int64, reportID string) error {
	if err := h.deps.ReportSvc.DeleteReport(ctx, reportID); err != nil {
		return replyError(ctx, h.api, chatID, err)
	}
	if err := sendText(h.api, chatID, "🗑️ Report deleted."); err != nil {
		return err
	}
	return showReports(ctx, h.api, h.deps, chatID)
}

// handleToggleTask flips a task and redraws the checklist in place
func (h *CallbackHandler) handleToggleTask(ctx context.Context, query *tgbotapi.CallbackQuery, rawID string) error {
	chatID := query.Message.Chat.ID
	taskID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		return h.handleUnknownCallback(chatID)
	}

	if _, err := h.deps.TaskSvc.Toggle(ctx, uint(taskID)); err != nil {
		return replyError(ctx, h.api, chatID, err)
	}

	now := h.now()
	tasks, err := h.deps.TaskSvc.ListForDay(ctx, now)
	if err != nil {
		return replyError(ctx, h.api, chatID, err)
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, query.Message.MessageID,
		menus.FormatTasks(now, tasks, now), keyboards.TaskList(tasks))
	edit.ParseMode = tgbotapi.ModeHTML
	_, err = h.api.Send(edit)
	return err
}

func (h *CallbackHandler) handleMetricChoice(chatID, telegramID int64, metricType string) error {
	h.stateManager.SetTempData(telegramID, state.KeyMetricType, metricType)
	h.stateManager.SetUserState(telegramID, state.WaitingForMetric)
	return sendText(h.api, chatID, "Send the value, optionally followed by a note. Example: 120/80 after walk")
}

// handleUnknownCallback handles unknown callbacks
func (h *CallbackHandler) handleUnknownCallback(chatID int64) error {
	return sendText(h.api, chatID, "Unknown action. Use /start to open the menu.")
}
