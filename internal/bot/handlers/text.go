package handlers

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/vaidya-health/internal/bot/state"
)

// TextHandler handles text messages according to the conversation state
type TextHandler struct {
	api          BotAPI
	deps         Dependencies
	stateManager state.StateManager
	now          func() time.Time
}

// NewTextHandler creates a new text handler
func NewTextHandler(api BotAPI, deps Dependencies, stateManager state.StateManager) *TextHandler {
	return &TextHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
		now:          time.Now,
	}
}

// Handle processes a text message
func (h *TextHandler) Handle(ctx context.Context, message *tgbotapi.Message) error {
	telegramID := message.From.ID

	switch h.stateManager.GetUserState(telegramID) {
	case state.WaitingForReportTitle:
		return h.handleReportTitle(message)
	case state.WaitingForReportContent:
		return h.handleReportContent(ctx, message)
	case state.WaitingForAnalysisText:
		h.stateManager.SetUserState(telegramID, state.None)
		return runAnalysis(ctx, h.api, h.deps, message.Chat.ID, message.Text)
	case state.ChatMode:
		return sendChat(ctx, h.api, h.deps, message.Chat.ID, message.Text)
	case state.WaitingForTask:
		return h.handleTask(ctx, message)
	case state.WaitingForMetric:
		return h.handleMetric(ctx, message)
	default:
		return h.handleDefaultText(message.Chat.ID)
	}
}

func (h *TextHandler) handleReportTitle(message *tgbotapi.Message) error {
	telegramID := message.From.ID
	h.stateManager.SetTempData(telegramID, state.KeyReportTitle, message.Text)
	h.stateManager.SetUserState(telegramID, state.WaitingForReportContent)
	return sendText(h.api, message.Chat.ID, "📋 Now paste the report text: lab values, doctor's notes or symptoms.")
}

func (h *TextHandler) handleReportContent(ctx context.Context, message *tgbotapi.Message) error {
	telegramID := message.From.ID
	title, ok := h.stateManager.GetTempData(telegramID, state.KeyReportTitle)
	h.stateManager.SetUserState(telegramID, state.None)
	h.stateManager.ClearTempData(telegramID)
	if !ok {
		return sendText(h.api, message.Chat.ID, "⚠️ The report title was lost. Please start again with /report.")
	}
	return submitReport(ctx, h.api, h.deps, message.Chat.ID, title, message.Text)
}

func (h *TextHandler) handleTask(ctx context.Context, message *tgbotapi.Message) error {
	input, err := parseTaskInput(message.Text)
	if err != nil {
		return sendText(h.api, message.Chat.ID, "⚠️ "+err.Error())
	}

	now := h.now()
	if _, err := h.deps.TaskSvc.Add(ctx, now, input); err != nil {
		return replyError(ctx, h.api, message.Chat.ID, err)
	}
	h.stateManager.SetUserState(message.From.ID, state.None)
	return showTasks(ctx, h.api, h.deps, message.Chat.ID, now)
}

func (h *TextHandler) handleMetric(ctx context.Context, message *tgbotapi.Message) error {
	telegramID := message.From.ID
	metricType, ok := h.stateManager.GetTempData(telegramID, state.KeyMetricType)
	h.stateManager.SetUserState(telegramID, state.None)
	h.stateManager.ClearTempData(telegramID)
	if !ok {
		return sendText(h.api, message.Chat.ID, "⚠️ Please choose the metric again with /log.")
	}
	return logMetric(ctx, h.api, h.deps, message.Chat.ID, parseMetricValue(metricType, message.Text))
}

// handleDefaultText handles text outside of any flow
func (h *TextHandler) handleDefaultText(chatID int64) error {
	return sendText(h.api, chatID, "Use /report to submit a report, /chat to talk to the assistant or /help for all commands.")
}
