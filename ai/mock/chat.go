package mock

import (
	"context"

	"github.com/AmazeeLabs/chat-ai/ai"
)

// MockChatModel is a test double for ai.ChatModel.
// It allows custom behavior injection via function fields.
type MockChatModel struct {
	// GenerateChatFunc is called by GenerateChat if set.
	// If nil, uses default canned behavior.
	GenerateChatFunc func(ctx context.Context, messages []ai.Message) ([]string, error)

	callCount int
	// LastMessages holds the messages from the most recent call, for
	// prompt assertions in tests.
	LastMessages []ai.Message
}

// NewMockChatModel creates a mock chat model with default canned behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockChatModel() *MockChatModel {
	return &MockChatModel{}
}

// GenerateChat echoes the last user message as a single candidate.
func (m *MockChatModel) GenerateChat(ctx context.Context, messages []ai.Message) ([]string, error) {
	m.callCount++
	m.LastMessages = messages

	if m.GenerateChatFunc != nil {
		return m.GenerateChatFunc(ctx, messages)
	}

	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == ai.RoleUser {
			return []string{"echo: " + messages[i].Content}, nil
		}
	}
	return []string{"echo"}, nil
}

// CallCount returns the number of times GenerateChat was called.
func (m *MockChatModel) CallCount() int {
	return m.callCount
}

// Reset clears the call count, captured messages, and injected behavior.
func (m *MockChatModel) Reset() {
	m.callCount = 0
	m.LastMessages = nil
	m.GenerateChatFunc = nil
}
