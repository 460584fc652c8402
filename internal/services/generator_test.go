package services

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladimiradmaev/vaidya-health/internal/config"
)

func TestGeminiCandidateText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"a":`), genai.Text(`1}`)}},
		}},
	}
	text, err := geminiCandidateText(resp)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, text)

	_, err = geminiCandidateText(&genai.GenerateContentResponse{})
	assert.ErrorIs(t, err, ErrNoCandidate)

	_, err = geminiCandidateText(nil)
	assert.ErrorIs(t, err, ErrNoCandidate)
}

func TestGeminiSafetySettings(t *testing.T) {
	settings := geminiSafetySettings()
	require.Len(t, settings, 4)
	for _, s := range settings {
		assert.Equal(t, genai.HarmBlockMediumAndAbove, s.Threshold)
	}
}

func TestNewGenerator(t *testing.T) {
	gen, err := NewGenerator(context.Background(), config.AIConfig{
		Provider:     config.ProviderOpenAI,
		OpenAIAPIKey: "sk-test",
		OpenAIModel:  "gpt-4o-mini",
	})
	require.NoError(t, err)
	assert.Equal(t, config.ProviderOpenAI, gen.Provider())

	_, err = NewGenerator(context.Background(), config.AIConfig{Provider: "claude"})
	assert.Error(t, err)
}
