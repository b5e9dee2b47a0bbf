package openai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/AmazeeLabs/chat-ai/ai"
	"github.com/AmazeeLabs/chat-ai/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ChatModel implements ai.ChatModel using OpenAI-compatible chat APIs.
type ChatModel struct {
	client llms.Model
	logger *slog.Logger
}

// newChatModel is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newChatModel(config *ai.Config) (*ChatModel, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &ChatModel{
		client: client,
		logger: slog.Default().With("component", "openai-chat"),
	}, nil
}

// NewChatModel creates a new chat model using the provided configuration.
//
// Returns ai.ChatModel interface to enforce abstraction.
func NewChatModel(config *ai.Config) (ai.ChatModel, error) {
	return newChatModel(config)
}

// GenerateChat sends the messages to the model and returns every candidate
// completion verbatim.
func (m *ChatModel) GenerateChat(ctx context.Context, messages []ai.Message) ([]string, error) {
	content := make([]llms.MessageContent, 0, len(messages))
	for _, message := range messages {
		content = append(content, llms.MessageContent{
			Role:  chatMessageType(message.Role),
			Parts: []llms.ContentPart{llms.TextPart(message.Content)},
		})
	}

	response, err := m.client.GenerateContent(ctx, content)
	if err != nil {
		m.logger.Error("failed to generate chat completion", "err", err)
		return nil, fmt.Errorf("%w: chat completion: %v", core.ErrUpstream, err)
	}

	choices := make([]string, 0, len(response.Choices))
	for _, choice := range response.Choices {
		choices = append(choices, choice.Content)
	}
	return choices, nil
}

// chatMessageType maps the ai roles onto langchaingo message types.
func chatMessageType(role ai.Role) llms.ChatMessageType {
	switch role {
	case ai.RoleSystem:
		return llms.ChatMessageTypeSystem
	case ai.RoleAssistant:
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}
