package ai

import "context"

// Embedding is the result of embedding one piece of text: the vector and
// the token usage reported for the call. For embedding APIs the prompt
// tokens equal the total tokens.
type Embedding struct {
	Vector       []float32
	PromptTokens int
	TotalTokens  int
}

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a chat conversation sent to the model.
type Message struct {
	Role    Role
	Content string
}

// Embedder generates vector embeddings from text for semantic similarity
// search. Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates an embedding for a single text string and
	// surfaces the token usage for accounting.
	// Failures wrap core.ErrUpstream.
	EmbedText(ctx context.Context, text string) (Embedding, error)
}

// ChatModel generates chat completions.
// Implementations must be thread-safe for concurrent use.
type ChatModel interface {
	// GenerateChat sends the messages to the model and returns all
	// candidate completions verbatim, in model order. No ranking or
	// selection happens at this layer; callers typically take the first.
	// Failures wrap core.ErrUpstream.
	GenerateChat(ctx context.Context, messages []Message) ([]string, error)
}

// Provider aggregates the model services for convenient initialization and
// lifecycle management.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// ChatModel returns the chat completion service.
	// The returned ChatModel is safe for concurrent use.
	ChatModel() ChatModel

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
