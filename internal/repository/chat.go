package repository

import (
	"context"
	"fmt"

	"github.com/vladimiradmaev/vaidya-health/internal/database"
	"github.com/vladimiradmaev/vaidya-health/internal/domain"
	"gorm.io/gorm"
)

// ChatRepository stores assistant conversation turns
type ChatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// Append stores the turns in one transaction, in the given order
func (r *ChatRepository) Append(ctx context.Context, turns ...*domain.ChatTurn) error {
	if len(turns) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, turn := range turns {
			row := &database.ChatTurn{
				UserID: turn.UserID,
				Role:   string(turn.Role),
				Text:   turn.Text,
			}
			if err := tx.Create(row).Error; err != nil {
				return fmt.Errorf("failed to save chat turn: %w", err)
			}
			turn.ID = row.ID
			turn.CreatedAt = row.CreatedAt
		}
		return nil
	})
}

// Recent returns up to limit latest turns in chronological order
func (r *ChatRepository) Recent(ctx context.Context, userID uint, limit int) ([]domain.ChatTurn, error) {
	var rows []database.ChatTurn
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get chat history: %w", err)
	}

	turns := make([]domain.ChatTurn, len(rows))
	for i, row := range rows {
		turns[len(rows)-1-i] = domain.ChatTurn{
			ID:        row.ID,
			UserID:    row.UserID,
			Role:      domain.ChatRole(row.Role),
			Text:      row.Text,
			CreatedAt: row.CreatedAt,
		}
	}
	return turns, nil
}

// Clear removes the user's whole conversation
func (r *ChatRepository) Clear(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&database.ChatTurn{}).Error; err != nil {
		return fmt.Errorf("failed to clear chat history: %w", err)
	}
	return nil
}
