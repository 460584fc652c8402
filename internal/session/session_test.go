package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/vladimiradmaev/vaidya-health/internal/errors"
)

func TestUserID(t *testing.T) {
	_, err := UserID(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)

	_, err = UserID(WithSession(context.Background(), Session{TelegramID: 5}))
	assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)

	ctx := WithSession(context.Background(), Session{UserID: 3, TelegramID: 5})
	id, err := UserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint(3), id)

	s, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(5), s.TelegramID)
}
