package handlers

import (
	"context"
	"errors"
	"html"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/vaidya-health/internal/bot/keyboards"
	"github.com/vladimiradmaev/vaidya-health/internal/bot/menus"
	apperrors "github.com/vladimiradmaev/vaidya-health/internal/errors"
	"github.com/vladimiradmaev/vaidya-health/internal/logger"
)

// BotAPI is the subset of *tgbotapi.BotAPI used by the handlers
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

// userFacingError maps an error to the text shown in the chat
func userFacingError(err error) string {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return "❌ Something went wrong. Please try again later."
	}

	switch {
	case appErr.Type == apperrors.ErrorTypeValidation:
		// validation messages can quote user input
		return "⚠️ " + html.EscapeString(appErr.Message)
	case appErr.Type == apperrors.ErrorTypeNotFound:
		return "🔍 Not found. It may have been deleted."
	case appErr.Code == apperrors.CodeNotAuthenticated:
		return "🔒 Please sign in with /start first."
	case appErr.Code == apperrors.CodeStorageWrite:
		return "📎 The file could not be uploaded, so the report was not saved. Please try again."
	case apperrors.IsAnalysisFailure(err):
		return "🤖 The analysis service is unavailable right now. Please try again in a few minutes."
	case appErr.Type == apperrors.ErrorTypeExternal:
		return "🤖 The assistant is unavailable right now. Please try again in a few minutes."
	default:
		return "❌ Something went wrong. Please try again later."
	}
}

// replyError logs err by severity and tells the user what happened
func replyError(ctx context.Context, api BotAPI, chatID int64, err error) error {
	apperrors.NewHandler(logger.GetLogger()).Handle(ctx, err)
	return menus.SendHTML(api, chatID, userFacingError(err), keyboards.BackToMenu())
}

func sendText(api BotAPI, chatID int64, text string) error {
	_, err := api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}
