package services

import (
	"context"
	"fmt"

	"github.com/vladimiradmaev/vaidya-health/internal/domain"
	apperrors "github.com/vladimiradmaev/vaidya-health/internal/errors"
	"github.com/vladimiradmaev/vaidya-health/internal/logger"
)

const analysisPromptTemplate = `Analyze the following health report and provide a structured analysis in JSON format.

Health Report:
%s

Please respond with a JSON object containing:
{
  "overallHealth": "Brief overall health assessment (Excellent/Good/Fair/Poor)",
  "keyFindings": ["List of 3-5 key findings from the report"],
  "recommendations": ["List of 3-5 actionable health recommendations"],
  "riskFactors": ["List of potential health risks or concerns"],
  "healthScore": 85,
  "summary": "2-3 sentence summary of the health status"
}

Field types: overallHealth and summary are strings; keyFindings, recommendations and riskFactors are arrays of strings.
healthScore must be an integer between 0 and 100 (not a string) representing overall health.

Return only the JSON object, no additional text.`

const chatPromptTemplate = `You are VAIDYA.ai, a compassionate health assistant. Answer the user's health questions clearly and kindly.
Keep answers short and practical. You are not a doctor: for anything serious, urgent or diagnostic, recommend consulting a qualified healthcare professional.

%sUser message: %s`

// AIService turns report text into a structured analysis and answers
// assistant chat messages. It is stateless between calls.
type AIService struct {
	generator Generator
}

func NewAIService(generator Generator) *AIService {
	return &AIService{generator: generator}
}

// AnalyzeReport asks the model for an analysis of reportText. Provider
// failures come back as ANALYSIS_FAILED, malformed replies as ANALYSIS_PARSE.
func (s *AIService) AnalyzeReport(ctx context.Context, reportText string) (*domain.HealthReportAnalysis, error) {
	logger.Info("Starting report analysis", "provider", s.generator.Provider(), "content_length", len(reportText))

	text, err := s.generator.Generate(ctx, fmt.Sprintf(analysisPromptTemplate, reportText))
	if err != nil {
		logger.Error("Report analysis request failed", "provider", s.generator.Provider(), "error", err)
		return nil, apperrors.NewAnalysisError(err, s.generator.Provider())
	}

	analysis, err := ParseAnalysis(text)
	if err != nil {
		logger.Warn("Could not parse analysis reply", "error", err, "reply_length", len(text))
		return nil, err
	}

	if analysis.HealthScore < 0 || analysis.HealthScore > 100 {
		logger.Warn("Health score outside 0-100", "health_score", analysis.HealthScore)
	}

	logger.Info("Report analysis completed", "health_score", analysis.HealthScore)
	return analysis, nil
}

// Chat answers message using history, the rendered previous turns
func (s *AIService) Chat(ctx context.Context, message, history string) (string, error) {
	var contextBlock string
	if history != "" {
		contextBlock = "Context: " + history + "\n\n"
	}

	reply, err := s.generator.Generate(ctx, fmt.Sprintf(chatPromptTemplate, contextBlock, message))
	if err != nil {
		return "", apperrors.NewExternalAPIError(err, s.generator.Provider())
	}
	return reply, nil
}
