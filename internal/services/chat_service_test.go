package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladimiradmaev/vaidya-health/internal/domain"
	apperrors "github.com/vladimiradmaev/vaidya-health/internal/errors"
	"github.com/vladimiradmaev/vaidya-health/internal/repository"
	"github.com/vladimiradmaev/vaidya-health/internal/testutil"
)

func newChatFixture(t *testing.T) (*ChatService, *fakeGenerator) {
	t.Helper()
	gen := &fakeGenerator{reply: "Stay hydrated."}
	repo := repository.NewChatRepository(testutil.OpenTestDB(t))
	return NewChatService(repo, NewAIService(gen)), gen
}

func TestChatServiceSendStoresTurns(t *testing.T) {
	svc, gen := newChatFixture(t)
	ctx := signedIn(4)

	reply, err := svc.Send(ctx, "I have a headache")
	require.NoError(t, err)
	assert.Equal(t, "Stay hydrated.", reply)
	assert.NotContains(t, gen.lastPrompt(), "Context:")

	_, err = svc.Send(ctx, "Still there")
	require.NoError(t, err)
	assert.Contains(t, gen.lastPrompt(), "Context: User: I have a headache\nAssistant: Stay hydrated.")

	history, err := svc.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.Equal(t, domain.ChatRoleUser, history[0].Role)
	assert.Equal(t, "Still there", history[2].Text)
	assert.Equal(t, domain.ChatRoleAssistant, history[3].Role)
}

func TestChatServiceContextUsesLastFiveTurns(t *testing.T) {
	svc, gen := newChatFixture(t)
	ctx := signedIn(4)

	for i := 1; i <= 4; i++ {
		_, err := svc.Send(ctx, fmt.Sprintf("question %d", i))
		require.NoError(t, err)
	}

	_, err := svc.Send(ctx, "last question")
	require.NoError(t, err)

	prompt := gen.lastPrompt()
	assert.NotContains(t, prompt, "question 2")
	assert.Contains(t, prompt, "Context: Assistant: Stay hydrated.\nUser: question 3")
	assert.Contains(t, prompt, "User: question 4")
	assert.Equal(t, 1, strings.Count(prompt, "User: question 4"))
}

func TestChatServiceFailureStoresNothing(t *testing.T) {
	svc, gen := newChatFixture(t)
	ctx := signedIn(4)
	gen.err = fmt.Errorf("rate limited")

	_, err := svc.Send(ctx, "hello")
	require.Error(t, err)

	history, err := svc.History(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestChatServiceValidationAndClear(t *testing.T) {
	svc, _ := newChatFixture(t)
	ctx := signedIn(4)

	_, err := svc.Send(context.Background(), "hello")
	assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)

	_, err = svc.Send(ctx, "   ")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.Send(ctx, "hello")
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx))

	history, err := svc.History(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestBuildChatContext(t *testing.T) {
	assert.Equal(t, "", BuildChatContext(nil))
	assert.Equal(t, "User: hi\nAssistant: hello", BuildChatContext([]domain.ChatTurn{
		{Role: domain.ChatRoleUser, Text: "hi"},
		{Role: domain.ChatRoleAssistant, Text: "hello"},
	}))
}
