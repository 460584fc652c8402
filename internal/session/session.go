// Package session carries the authenticated user through a request context.
package session

import (
	"context"

	apperrors "github.com/vladimiradmaev/vaidya-health/internal/errors"
)

type ctxKey struct{}

// Session identifies the signed-in user of the current request
type Session struct {
	UserID     uint
	TelegramID int64
}

// WithSession returns a child context carrying s
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session stored in ctx, if any
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	if !ok || s.UserID == 0 {
		return Session{}, false
	}
	return s, true
}

// UserID returns the signed-in user id or a NOT_AUTHENTICATED error
func UserID(ctx context.Context) (uint, error) {
	s, ok := FromContext(ctx)
	if !ok {
		return 0, apperrors.NewNotAuthenticatedError()
	}
	return s.UserID, nil
}
