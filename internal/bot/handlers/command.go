package handlers

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/vaidya-health/internal/bot/keyboards"
	"github.com/vladimiradmaev/vaidya-health/internal/bot/menus"
	"github.com/vladimiradmaev/vaidya-health/internal/bot/state"
	"github.com/vladimiradmaev/vaidya-health/internal/logger"
)

// CommandHandler handles bot commands
type CommandHandler struct {
	api          BotAPI
	deps         Dependencies
	stateManager state.StateManager
	now          func() time.Time
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(api BotAPI, deps Dependencies, stateManager state.StateManager) *CommandHandler {
	return &CommandHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
		now:          time.Now,
	}
}

// Handle processes a command message
func (h *CommandHandler) Handle(ctx context.Context, message *tgbotapi.Message) error {
	telegramID := message.From.ID
	chatID := message.Chat.ID
	args := strings.TrimSpace(message.CommandArguments())
	logger.Info("Handling command", "command", message.Command(), "telegram_id", telegramID)

	switch message.Command() {
	case "start":
		h.resetState(telegramID)
		return menus.SendMainMenu(h.api, chatID)
	case "signout":
		h.stateManager.SignOut(telegramID)
		return sendText(h.api, chatID, "👋 You are signed out. Send /start to sign in again.")
	case "help":
		return menus.SendHTML(h.api, chatID, menus.HelpText, keyboards.BackToMenu())
	case "report":
		return h.handleReport(ctx, chatID, telegramID, args)
	case "reports":
		return showReports(ctx, h.api, h.deps, chatID)
	case "stats":
		return showStats(ctx, h.api, h.deps, chatID)
	case "analyze":
		if args == "" {
			h.stateManager.SetUserState(telegramID, state.WaitingForAnalysisText)
			return sendText(h.api, chatID, "🔬 Paste the report text to analyze. Nothing will be saved.")
		}
		return runAnalysis(ctx, h.api, h.deps, chatID, args)
	case "tasks":
		return showTasks(ctx, h.api, h.deps, chatID, h.now())
	case "chat":
		h.stateManager.SetUserState(telegramID, state.ChatMode)
		if args == "" {
			return sendText(h.api, chatID, "💬 Ask me anything about your health. Send /start to leave the chat.")
		}
		return sendChat(ctx, h.api, h.deps, chatID, args)
	case "clearchat":
		if err := h.deps.ChatSvc.Clear(ctx); err != nil {
			return replyError(ctx, h.api, chatID, err)
		}
		return sendText(h.api, chatID, "🧹 Conversation cleared.")
	case "log":
		if args == "" {
			return menus.SendHTML(h.api, chatID, "Which reading do you want to log?", keyboards.MetricTypes())
		}
		entry, err := parseLogArgs(args)
		if err != nil {
			return sendText(h.api, chatID, "⚠️ "+err.Error())
		}
		return logMetric(ctx, h.api, h.deps, chatID, entry)
	case "metrics":
		return showMetrics(ctx, h.api, h.deps, chatID)
	default:
		return h.handleUnknownCommand(chatID)
	}
}

func (h *CommandHandler) handleReport(ctx context.Context, chatID, telegramID int64, args string) error {
	if args != "" {
		title, content, ok := parseReportArgs(args)
		if !ok {
			return sendText(h.api, chatID, "⚠️ Use /report Title | report text, or just /report to be guided.")
		}
		return submitReport(ctx, h.api, h.deps, chatID, title, content)
	}

	h.stateManager.ClearTempData(telegramID)
	h.stateManager.SetUserState(telegramID, state.WaitingForReportTitle)
	return sendText(h.api, chatID, "📝 What is the title of the report? (for example: Lipid panel, March 2026)")
}

func (h *CommandHandler) resetState(telegramID int64) {
	h.stateManager.SetUserState(telegramID, state.None)
	h.stateManager.ClearTempData(telegramID)
}

// handleUnknownCommand handles unknown commands
func (h *CommandHandler) handleUnknownCommand(chatID int64) error {
	return sendText(h.api, chatID, "Unknown command. Use /help to see the available commands.")
}
