package handlers

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/vaidya-health/internal/bot/state"
	"github.com/vladimiradmaev/vaidya-health/internal/logger"
	"github.com/vladimiradmaev/vaidya-health/internal/session"
)

// UpdateHandler handles telegram updates and coordinates other handlers
type UpdateHandler struct {
	api             BotAPI
	deps            Dependencies
	stateManager    state.StateManager
	callbackHandler *CallbackHandler
	commandHandler  *CommandHandler
	textHandler     *TextHandler
	documentHandler *DocumentHandler
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(api BotAPI, deps Dependencies, stateManager state.StateManager) *UpdateHandler {
	return &UpdateHandler{
		api:             api,
		deps:            deps,
		stateManager:    stateManager,
		callbackHandler: NewCallbackHandler(api, deps, stateManager),
		commandHandler:  NewCommandHandler(api, deps, stateManager),
		textHandler:     NewTextHandler(api, deps, stateManager),
		documentHandler: NewDocumentHandler(api, deps, stateManager),
	}
}

// Handle processes a telegram update. Everything except /start requires a
// signed-in session, which is placed in ctx for the services.
func (h *UpdateHandler) Handle(ctx context.Context, update tgbotapi.Update) error {
	var from *tgbotapi.User
	var chatID int64

	switch {
	case update.Message != nil:
		from = update.Message.From
		chatID = update.Message.Chat.ID
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		from = update.CallbackQuery.From
		chatID = update.CallbackQuery.Message.Chat.ID
	default:
		return nil
	}
	if from == nil {
		return nil
	}

	if update.Message != nil && update.Message.IsCommand() && update.Message.Command() == "start" {
		user, err := h.deps.UserService.RegisterUser(ctx, from.ID, from.UserName, from.FirstName, from.LastName)
		if err != nil {
			return fmt.Errorf("failed to get/create user: %w", err)
		}
		h.stateManager.SignIn(from.ID, user.ID)
		logger.Info("User signed in", "user_id", user.ID, "telegram_id", from.ID)
	}

	userID, ok := h.stateManager.SignedInUser(from.ID)
	if !ok {
		if update.CallbackQuery != nil {
			if _, err := h.api.Request(tgbotapi.NewCallback(update.CallbackQuery.ID, "Please sign in with /start")); err != nil {
				logger.Warn("Failed to answer callback", "error", err)
			}
		}
		return sendText(h.api, chatID, "🔒 You are signed out. Send /start to sign in.")
	}
	ctx = session.WithSession(ctx, session.Session{UserID: userID, TelegramID: from.ID})

	if update.CallbackQuery != nil {
		return h.callbackHandler.Handle(ctx, update.CallbackQuery)
	}

	message := update.Message
	switch {
	case message.IsCommand():
		return h.commandHandler.Handle(ctx, message)
	case message.Document != nil:
		return h.documentHandler.Handle(ctx, message)
	case message.Text != "":
		return h.textHandler.Handle(ctx, message)
	case len(message.Photo) > 0:
		return sendText(h.api, chatID, "📎 Please send reports as a file (document) so the original quality is kept.")
	}

	return nil
}
