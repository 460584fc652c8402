package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/vladimiradmaev/vaidya-health/internal/domain"
	apperrors "github.com/vladimiradmaev/vaidya-health/internal/errors"
	"github.com/vladimiradmaev/vaidya-health/internal/logger"
	"github.com/vladimiradmaev/vaidya-health/internal/session"
)

// chatContextTurns is how many stored turns are sent back to the model
const chatContextTurns = 5

// ChatResponder answers a message given rendered conversation history
type ChatResponder interface {
	Chat(ctx context.Context, message, history string) (string, error)
}

type chatInput struct {
	Message string `validate:"required,max=4000"`
}

// ChatService keeps the assistant conversation for each user
type ChatService struct {
	turns     domain.ChatRepository
	assistant ChatResponder
}

func NewChatService(turns domain.ChatRepository, assistant ChatResponder) *ChatService {
	return &ChatService{turns: turns, assistant: assistant}
}

// Send forwards message to the assistant together with the most recent
// turns and records both sides of the exchange.
func (s *ChatService) Send(ctx context.Context, message string) (string, error) {
	userID, err := session.UserID(ctx)
	if err != nil {
		return "", err
	}

	input := chatInput{Message: strings.TrimSpace(message)}
	if err := validateInput(input); err != nil {
		return "", err
	}

	history, err := s.turns.Recent(ctx, userID, chatContextTurns)
	if err != nil {
		return "", apperrors.NewDatabaseError(err)
	}

	reply, err := s.assistant.Chat(ctx, input.Message, BuildChatContext(history))
	if err != nil {
		return "", err
	}

	err = s.turns.Append(ctx,
		&domain.ChatTurn{UserID: userID, Role: domain.ChatRoleUser, Text: input.Message},
		&domain.ChatTurn{UserID: userID, Role: domain.ChatRoleAssistant, Text: reply},
	)
	if err != nil {
		// the user still gets the answer
		logger.Error("Failed to store chat turns", "user_id", userID, "error", err)
	}

	return reply, nil
}

// History returns up to limit turns in chronological order
func (s *ChatService) History(ctx context.Context, limit int) ([]domain.ChatTurn, error) {
	userID, err := session.UserID(ctx)
	if err != nil {
		return nil, err
	}

	turns, err := s.turns.Recent(ctx, userID, limit)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return turns, nil
}

// Clear forgets the whole conversation of the signed-in user
func (s *ChatService) Clear(ctx context.Context) error {
	userID, err := session.UserID(ctx)
	if err != nil {
		return err
	}

	if err := s.turns.Clear(ctx, userID); err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

// BuildChatContext renders turns as "User: ..." and "Assistant: ..." lines
func BuildChatContext(turns []domain.ChatTurn) string {
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		lines = append(lines, fmt.Sprintf("%s: %s", t.Role.Label(), t.Text))
	}
	return strings.Join(lines, "\n")
}
