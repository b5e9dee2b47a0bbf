package chatai

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmazeeLabs/chat-ai/ai"
	"github.com/AmazeeLabs/chat-ai/ai/mock"
	"github.com/AmazeeLabs/chat-ai/core"
	"github.com/AmazeeLabs/chat-ai/vectorstore/memory"
)

func newTestAssistant(t *testing.T) (*Assistant, *mock.MockEmbedder, *mock.MockChatModel, *memory.Store) {
	t.Helper()

	embedder := mock.NewMockEmbedder()
	model := mock.NewMockChatModel()
	store := memory.NewStore()

	assistant, err := NewMemoryAssistant(store, WithProvider(mock.NewMockProviderWithServices(embedder, model)))
	require.NoError(t, err)
	t.Cleanup(func() { assistant.Close() })

	return assistant, embedder, model, store
}

func TestIndexThenAnswer(t *testing.T) {
	assistant, _, model, store := newTestAssistant(t)
	ctx := context.Background()

	// Index one article
	item := &core.QueueItem{
		Key:    core.IndexKey{OwnerID: "1", OwnerType: "node", Category: "article", Language: "en"},
		Source: "https://example.com/article/1",
		Policy: core.DefaultChunkPolicy(),
	}
	queued, err := assistant.Tracker().Enqueue(ctx, item)
	require.NoError(t, err)
	assert.True(t, queued)

	// The worker fetches over HTTP; bypass it by writing vectors directly
	// and completing the item, which is what a drain does.
	embedder := mock.NewMockEmbedder()
	embedding, err := embedder.EmbedText(ctx, "The office opens at nine in the morning.")
	require.NoError(t, err)
	require.NoError(t, store.Upsert(ctx, []core.VectorRecord{
		{Content: "The office opens at nine in the morning.", Embedding: embedding.Vector, Key: item.Key},
	}))
	require.NoError(t, assistant.Tracker().Complete(ctx, item.Key))

	status, err := assistant.Tracker().Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, status.Indexed)

	// Answer a question and check the exchange lands in history
	model.GenerateChatFunc = func(ctx context.Context, messages []ai.Message) ([]string, error) {
		if strings.Contains(messages[len(messages)-1].Content, "alternative") ||
			strings.Contains(messages[0].Content, "vector database") {
			return []string{"variant one\nvariant two\nvariant three"}, nil
		}
		return []string{"The office opens at nine."}, nil
	}

	answer, err := assistant.Answer(ctx, "visitor-7", "when does the office open?", "en", nil)
	require.NoError(t, err)
	assert.Equal(t, "<p class='chat-gpt'>The office opens at nine.</p>", answer)

	entries, err := assistant.Chat().RecentHistory(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "visitor-7", entries[0].UserID)
	assert.Equal(t, "when does the office open?", entries[0].Query)
	assert.Equal(t, answer, entries[0].Response)
}

func TestAnswerFallsBackToApology(t *testing.T) {
	assistant, embedder, _, _ := newTestAssistant(t)
	ctx := context.Background()

	embedder.EmbedTextFunc = func(ctx context.Context, text string) (ai.Embedding, error) {
		return ai.Embedding{}, core.ErrUpstream
	}

	answer, err := assistant.Answer(ctx, "visitor-7", "anybody there?", "de", nil)
	require.NoError(t, err)
	assert.Contains(t, answer, "Es tut mir leid")
	assert.True(t, strings.HasPrefix(answer, "<p class='chat-gpt'>"))

	// The failed exchange is still logged
	entries, err := assistant.Chat().RecentHistory(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "anybody there?", entries[0].Query)
}

func TestSetup(t *testing.T) {
	assistant, _, _, _ := newTestAssistant(t)
	assert.NoError(t, assistant.Setup(context.Background()))
}

func TestClearAllResetsEverything(t *testing.T) {
	assistant, _, _, store := newTestAssistant(t)
	ctx := context.Background()

	key := core.IndexKey{OwnerID: "1", OwnerType: "node", Category: "article", Language: "en"}
	_, err := assistant.Tracker().Enqueue(ctx, &core.QueueItem{
		Key:    key,
		Source: "https://example.com/article/1",
		Policy: core.DefaultChunkPolicy(),
	})
	require.NoError(t, err)
	require.NoError(t, store.Upsert(ctx, []core.VectorRecord{
		{Content: "chunk", Embedding: []float32{1, 0}, Key: key},
	}))

	require.NoError(t, assistant.Tracker().ClearAll(ctx, ""))

	assert.Equal(t, 0, store.Len())
	status, err := assistant.Tracker().Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, status.Total)
}
