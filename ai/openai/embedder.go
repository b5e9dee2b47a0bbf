package openai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/AmazeeLabs/chat-ai/ai"
	"github.com/AmazeeLabs/chat-ai/core"
	"github.com/pkoukk/tiktoken-go"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// Embedder implements ai.Embedder using OpenAI-compatible embedding APIs.
// Token usage is counted locally with the model's tokenizer, since the
// langchaingo embedding path does not surface the usage block.
type Embedder struct {
	embedder embeddings.Embedder
	encoder  *tiktoken.Tiktoken
	logger   *slog.Logger
}

// newEmbedder is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newEmbedder(config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.APIKey),
		openai.WithEmbeddingModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, err
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}

	encoder, err := tiktoken.EncodingForModel(config.EmbeddingModel)
	if err != nil {
		// Unknown model names fall back to the encoding the OpenAI
		// embedding models share.
		encoder, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil, err
		}
	}

	return &Embedder{
		embedder: embedder,
		encoder:  encoder,
		logger:   slog.Default().With("component", "openai-embedder"),
	}, nil
}

// NewEmbedder creates a new embedder using the provided configuration.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	return newEmbedder(config)
}

// EmbedText generates a vector embedding for a single text string and
// reports the token usage for accounting.
func (e *Embedder) EmbedText(ctx context.Context, text string) (ai.Embedding, error) {
	e.logger.Debug("generating embedding for text", "length", len(text))

	vectors, err := e.embedder.EmbedDocuments(ctx, []string{text})
	if err != nil {
		e.logger.Error("failed to generate embedding", "err", err)
		return ai.Embedding{}, fmt.Errorf("%w: embedding: %v", core.ErrUpstream, err)
	}

	if len(vectors) == 0 {
		e.logger.Warn("embedder returned empty result")
		return ai.Embedding{Vector: []float32{}}, nil
	}

	// For embedding requests the prompt is the whole input.
	tokens := len(e.encoder.Encode(text, nil, nil))

	return ai.Embedding{
		Vector:       vectors[0],
		PromptTokens: tokens,
		TotalTokens:  tokens,
	}, nil
}
