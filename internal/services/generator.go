package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai"
	"github.com/vladimiradmaev/vaidya-health/internal/config"
	"google.golang.org/api/option"
)

// ErrNoCandidate is returned when the model answers without any text
var ErrNoCandidate = errors.New("no response candidate from model")

// Generator sends a single prompt to a hosted model and returns the text of
// its first candidate. Implementations hold no conversation state.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Provider() string
}

// NewGenerator builds the generator selected by cfg.Provider
func NewGenerator(ctx context.Context, cfg config.AIConfig) (Generator, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.Generation)
	case config.ProviderOpenAI:
		return NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.Generation), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider %q", cfg.Provider)
	}
}

// GeminiGenerator talks to the Gemini generative-language API
type GeminiGenerator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiGenerator(ctx context.Context, apiKey, modelName string, params config.GenerationConfig) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(params.Temperature)
	model.SetTopK(params.TopK)
	model.SetTopP(params.TopP)
	model.SetMaxOutputTokens(params.MaxOutputTokens)
	model.SafetySettings = geminiSafetySettings()

	return &GeminiGenerator{client: client, model: model}, nil
}

func geminiSafetySettings() []*genai.SafetySetting {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}

	settings := make([]*genai.SafetySetting, 0, len(categories))
	for _, category := range categories {
		settings = append(settings, &genai.SafetySetting{
			Category:  category,
			Threshold: genai.HarmBlockMediumAndAbove,
		})
	}
	return settings
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return geminiCandidateText(resp)
}

func (g *GeminiGenerator) Provider() string {
	return config.ProviderGemini
}

// Close releases the underlying gRPC connection
func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

func geminiCandidateText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrNoCandidate
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", ErrNoCandidate
	}
	return sb.String(), nil
}

// OpenAIGenerator is the alternative provider. OpenAI has no top-k knob, so
// only temperature, top-p and the token limit are forwarded.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
	params config.GenerationConfig
}

func NewOpenAIGenerator(apiKey, model string, params config.GenerationConfig) *OpenAIGenerator {
	return &OpenAIGenerator{
		client: openai.NewClient(apiKey),
		model:  model,
		params: params,
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: g.params.Temperature,
		TopP:        g.params.TopP,
		MaxTokens:   int(g.params.MaxOutputTokens),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrNoCandidate
	}
	return resp.Choices[0].Message.Content, nil
}

func (g *OpenAIGenerator) Provider() string {
	return config.ProviderOpenAI
}
