package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/vladimiradmaev/vaidya-health/internal/errors"
)

func TestAIServiceAnalyzeReport(t *testing.T) {
	gen := &fakeGenerator{reply: lipidAnalysisReply}
	svc := NewAIService(gen)

	analysis, err := svc.AnalyzeReport(context.Background(), "Cholesterol 220, BP 140/90")
	require.NoError(t, err)
	assert.Equal(t, 45, analysis.HealthScore)
	assert.Equal(t, []string{"High cholesterol"}, analysis.RiskFactors)
	assert.Contains(t, gen.lastPrompt(), "Cholesterol 220, BP 140/90")
}

func TestAnalysisPromptAsksForIntegerScore(t *testing.T) {
	gen := &fakeGenerator{reply: lipidAnalysisReply}
	_, err := NewAIService(gen).AnalyzeReport(context.Background(), "Hemoglobin 13.5")
	require.NoError(t, err)

	prompt := gen.lastPrompt()
	assert.Regexp(t, `"healthScore": \d+,`, prompt)
	assert.Contains(t, prompt, "integer between 0 and 100")
	for _, field := range []string{"overallHealth", "keyFindings", "recommendations", "riskFactors", "summary"} {
		assert.Contains(t, prompt, `"`+field+`"`)
	}

	// a reply shaped exactly like the template example parses
	example := prompt[strings.Index(prompt, "{"):strings.LastIndex(prompt, "}")+1]
	analysis, err := ParseAnalysis(example)
	require.NoError(t, err)
	assert.Equal(t, 85, analysis.HealthScore)
}

func TestAIServiceAnalyzeReportProviderFailure(t *testing.T) {
	svc := NewAIService(&fakeGenerator{err: errors.New("quota exceeded")})

	_, err := svc.AnalyzeReport(context.Background(), "Hemoglobin 13.5")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAnalysis)
	assert.True(t, apperrors.IsAnalysisFailure(err))
}

func TestAIServiceAnalyzeReportUnparseableReply(t *testing.T) {
	svc := NewAIService(&fakeGenerator{reply: "The report looks fine overall."})

	_, err := svc.AnalyzeReport(context.Background(), "Hemoglobin 13.5")
	assert.ErrorIs(t, err, apperrors.ErrAnalysisParse)
}

func TestAIServiceChat(t *testing.T) {
	gen := &fakeGenerator{reply: "  Drink more water.  "}
	svc := NewAIService(gen)

	reply, err := svc.Chat(context.Background(), "I feel tired", "User: hi\nAssistant: hello")
	require.NoError(t, err)
	assert.Equal(t, "  Drink more water.  ", reply)
	assert.Contains(t, gen.lastPrompt(), "Context: User: hi\nAssistant: hello")
	assert.Contains(t, gen.lastPrompt(), "User message: I feel tired")

	_, err = svc.Chat(context.Background(), "hello", "")
	require.NoError(t, err)
	assert.NotContains(t, gen.lastPrompt(), "Context:")
}

func TestAIServiceChatFailure(t *testing.T) {
	svc := NewAIService(&fakeGenerator{err: errors.New("timeout")})

	_, err := svc.Chat(context.Background(), "hello", "")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeExternal, appErr.Type)
}
