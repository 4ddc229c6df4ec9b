package llm

import (
	"context"
	"fmt"

	"github.com/Na1awut/NDLP/internal/domain"
)

// MockLLM is the offline stand-in used in tests and local development. It has
// no emotion model: ExtractEmotion fails on purpose so the extractor's
// keyword fallback carries the analysis.
type MockLLM struct{}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

func (m *MockLLM) GenerateReply(ctx context.Context, userMessage string, chatCtx domain.ChatContext) (string, error) {
	return fmt.Sprintf("I hear you. You said %q. Tell me a bit more about how that feels.", userMessage), nil
}

func (m *MockLLM) ExtractEmotion(ctx context.Context, text string) (string, error) {
	return "", fmt.Errorf("mock llm has no emotion model")
}
