package services

import (
	"context"
	"sync"

	"github.com/vladimiradmaev/vaidya-health/internal/session"
)

type fakeGenerator struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func (f *fakeGenerator) Provider() string {
	return "fake"
}

func (f *fakeGenerator) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

type fakeStorage struct {
	keys []string
	err  error
}

func (f *fakeStorage) Upload(_ context.Context, key, _ string, _ []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.keys = append(f.keys, key)
	return "https://files.test/" + key, nil
}

func signedIn(userID uint) context.Context {
	return session.WithSession(context.Background(), session.Session{UserID: userID, TelegramID: int64(userID) * 100})
}

const lipidAnalysisReply = `Sure, here is the analysis:
{
  "overallHealth": "Fair",
  "keyFindings": ["Total cholesterol 220 mg/dL", "Blood pressure 140/90"],
  "recommendations": ["Reduce saturated fat", "Monitor blood pressure weekly"],
  "riskFactors": ["High cholesterol"],
  "healthScore": 45,
  "summary": "Cholesterol and blood pressure are both elevated."
}`
