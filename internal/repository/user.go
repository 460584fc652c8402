package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/vladimiradmaev/vaidya-health/internal/database"
	"github.com/vladimiradmaev/vaidya-health/internal/domain"
	"gorm.io/gorm"
)

// UserRepository handles user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetOrCreateUser gets an existing user or creates a new one. Profile fields
// are refreshed when Telegram reports new values.
func (r *UserRepository) GetOrCreateUser(ctx context.Context, telegramID int64, username, firstName, lastName string) (*domain.User, error) {
	var user database.User
	result := r.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&user)
	if result.Error == nil {
		if username != "" && (user.Username != username || user.FirstName != firstName || user.LastName != lastName) {
			user.Username, user.FirstName, user.LastName = username, firstName, lastName
			if err := r.db.WithContext(ctx).Save(&user).Error; err != nil {
				return nil, fmt.Errorf("failed to update user: %w", err)
			}
		}
		return toDomainUser(&user), nil
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get user: %w", result.Error)
	}

	user = database.User{
		TelegramID: telegramID,
		Username:   username,
		FirstName:  firstName,
		LastName:   lastName,
	}

	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return toDomainUser(&user), nil
}

// GetUserByTelegramID gets a user by their Telegram ID; nil when unknown
func (r *UserRepository) GetUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	var user database.User
	err := r.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return toDomainUser(&user), nil
}

func toDomainUser(u *database.User) *domain.User {
	return &domain.User{
		ID:         u.ID,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
		TelegramID: u.TelegramID,
		Username:   u.Username,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
	}
}
