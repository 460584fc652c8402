package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/vaidya-health/internal/bot/handlers"
	"github.com/vladimiradmaev/vaidya-health/internal/bot/state"
	"github.com/vladimiradmaev/vaidya-health/internal/logger"
)

// Bot owns the Telegram connection and dispatches updates to the handlers
type Bot struct {
	api     *tgbotapi.BotAPI
	handler *handlers.UpdateHandler
}

func NewBot(token string, deps handlers.Dependencies, stateManager state.StateManager) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	logger.Info("Bot authorized", "account", api.Self.UserName)
	return &Bot{
		api:     api,
		handler: handlers.NewUpdateHandler(api, deps, stateManager),
	}, nil
}

// Start polls for updates until ctx is cancelled
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	logger.Info("Bot is now listening for updates")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Bot is shutting down")
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update := <-updates:
			if update.Message != nil && update.Message.From != nil {
				logger.Debug("Received message", "telegram_id", update.Message.From.ID, "is_command", update.Message.IsCommand())
			}
			if err := b.handler.Handle(ctx, update); err != nil {
				logger.Error("Error handling update", "update_id", update.UpdateID, "error", err)
			}
		}
	}
}
