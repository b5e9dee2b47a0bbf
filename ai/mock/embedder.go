package mock

import (
	"context"
	"hash/fnv"

	"github.com/AmazeeLabs/chat-ai/ai"
)

// MockEmbedder is a test double for ai.Embedder.
// It allows custom behavior injection via function fields.
type MockEmbedder struct {
	// EmbedTextFunc is called by EmbedText if set.
	// If nil, uses default deterministic behavior.
	EmbedTextFunc func(ctx context.Context, text string) (ai.Embedding, error)

	callCount int
}

// NewMockEmbedder creates a mock embedder with default deterministic behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{}
}

// EmbedText generates a deterministic embedding based on text hash.
// Token counts approximate four characters per token.
func (m *MockEmbedder) EmbedText(ctx context.Context, text string) (ai.Embedding, error) {
	m.callCount++

	if m.EmbedTextFunc != nil {
		return m.EmbedTextFunc(ctx, text)
	}

	tokens := len(text)/4 + 1
	return ai.Embedding{
		Vector:       generateDeterministicVector(text, 384),
		PromptTokens: tokens,
		TotalTokens:  tokens,
	}, nil
}

// CallCount returns the number of times EmbedText was called.
func (m *MockEmbedder) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockEmbedder) Reset() {
	m.callCount = 0
	m.EmbedTextFunc = nil
}

// generateDeterministicVector creates a deterministic embedding vector from text.
// It uses FNV hash to ensure the same text always produces the same vector.
func generateDeterministicVector(text string, dim int) []float32 {
	h := fnv.New64a()
	h.Write([]byte(text))
	seed := h.Sum64()

	vector := make([]float32, dim)
	for i := range vector {
		// Simple xorshift keeps the values spread without pulling in math/rand
		seed ^= seed << 13
		seed ^= seed >> 7
		seed ^= seed << 17
		vector[i] = float32(int64(seed%2000)-1000) / 1000.0
	}
	return vector
}
