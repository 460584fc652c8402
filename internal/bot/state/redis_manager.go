package state

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vladimiradmaev/vaidya-health/internal/logger"
)

const (
	stateTTL   = 24 * time.Hour
	sessionTTL = 30 * 24 * time.Hour
	opTimeout  = 3 * time.Second
)

// RedisManager manages user states using Redis, so sessions survive restarts
// and can be shared between bot replicas.
type RedisManager struct {
	client *redis.Client
}

// NewRedisManager creates a new Redis-based state manager
func NewRedisManager(redisHost, redisPort string) (*RedisManager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", redisHost, redisPort),
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisManager{client: client}, nil
}

func stateKey(telegramID int64) string   { return fmt.Sprintf("user:%d:state", telegramID) }
func tempKey(telegramID int64) string    { return fmt.Sprintf("user:%d:temp", telegramID) }
func sessionKey(telegramID int64) string { return fmt.Sprintf("user:%d:session", telegramID) }

// SetUserState sets the state for a user with TTL
func (m *RedisManager) SetUserState(telegramID int64, state string) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := m.client.Set(ctx, stateKey(telegramID), state, stateTTL).Err(); err != nil {
		logger.Warn("Failed to store user state", "telegram_id", telegramID, "error", err)
	}
}

// GetUserState gets the state for a user, None when absent or on error
func (m *RedisManager) GetUserState(telegramID int64) string {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	state, err := m.client.Get(ctx, stateKey(telegramID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("Failed to read user state", "telegram_id", telegramID, "error", err)
		}
		return None
	}
	return state
}

// SetTempData sets temporary data for a user
func (m *RedisManager) SetTempData(telegramID int64, key, value string) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	pipe := m.client.TxPipeline()
	pipe.HSet(ctx, tempKey(telegramID), key, value)
	pipe.Expire(ctx, tempKey(telegramID), stateTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Warn("Failed to store temp data", "telegram_id", telegramID, "key", key, "error", err)
	}
}

// GetTempData gets temporary data for a user
func (m *RedisManager) GetTempData(telegramID int64, key string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	value, err := m.client.HGet(ctx, tempKey(telegramID), key).Result()
	if err != nil {
		return "", false
	}
	return value, true
}

// ClearTempData clears all temporary data for a user
func (m *RedisManager) ClearTempData(telegramID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	m.client.Del(ctx, tempKey(telegramID))
}

// SignIn binds the Telegram account to a user id
func (m *RedisManager) SignIn(telegramID int64, userID uint) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := m.client.Set(ctx, sessionKey(telegramID), userID, sessionTTL).Err(); err != nil {
		logger.Error("Failed to store session", "telegram_id", telegramID, "error", err)
	}
}

// SignOut drops the session together with any pending conversation state
func (m *RedisManager) SignOut(telegramID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	m.client.Del(ctx, sessionKey(telegramID), stateKey(telegramID), tempKey(telegramID))
}

// SignedInUser returns the user id bound to the Telegram account
func (m *RedisManager) SignedInUser(telegramID int64) (uint, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	raw, err := m.client.Get(ctx, sessionKey(telegramID)).Result()
	if err != nil {
		return 0, false
	}
	userID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || userID == 0 {
		return 0, false
	}
	return uint(userID), true
}

// Close closes the Redis connection
func (m *RedisManager) Close() error {
	return m.client.Close()
}
