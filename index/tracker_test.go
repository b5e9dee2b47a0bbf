package index

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmazeeLabs/chat-ai/core"
	"github.com/AmazeeLabs/chat-ai/storage/badger"
	"github.com/AmazeeLabs/chat-ai/vectorstore/memory"
)

func newTestTracker(t *testing.T) (*Tracker, *memory.Store) {
	t.Helper()

	states, queue, history, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		history.Close()
		queue.Close()
		states.Close()
		backend.Close()
	})

	store := memory.NewStore()
	tracker, err := NewTracker(states, queue, store)
	require.NoError(t, err)
	return tracker, store
}

func articleKey(id string) core.IndexKey {
	return core.IndexKey{OwnerID: id, OwnerType: "node", Category: "article", Language: "en"}
}

func queueItem(id string) *core.QueueItem {
	return &core.QueueItem{
		Key:    articleKey(id),
		Source: "https://example.com/article/" + id,
		Policy: core.DefaultChunkPolicy(),
	}
}

func TestNewTrackerValidation(t *testing.T) {
	states, queue, history, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		history.Close()
		queue.Close()
		states.Close()
		backend.Close()
	}()

	store := memory.NewStore()

	_, err = NewTracker(nil, queue, store)
	assert.ErrorIs(t, err, ErrStateRepositoryRequired)

	_, err = NewTracker(states, nil, store)
	assert.ErrorIs(t, err, ErrQueueRepositoryRequired)

	_, err = NewTracker(states, queue, nil)
	assert.ErrorIs(t, err, ErrVectorStoreRequired)
}

func TestEnqueueIsIdempotent(t *testing.T) {
	tracker, _ := newTestTracker(t)
	ctx := context.Background()

	queued, err := tracker.Enqueue(ctx, queueItem("1"))
	require.NoError(t, err)
	assert.True(t, queued)

	queued, err = tracker.Enqueue(ctx, queueItem("1"))
	require.NoError(t, err)
	assert.False(t, queued, "second enqueue while pending must be a no-op")

	pending, err := tracker.Pending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	isQueued, err := tracker.IsQueued(ctx, articleKey("1"))
	require.NoError(t, err)
	assert.True(t, isQueued)
}

func TestCompleteReleasesQueueSlot(t *testing.T) {
	tracker, _ := newTestTracker(t)
	ctx := context.Background()

	_, err := tracker.Enqueue(ctx, queueItem("1"))
	require.NoError(t, err)

	require.NoError(t, tracker.Complete(ctx, articleKey("1")))

	indexed, err := tracker.IsIndexed(ctx, articleKey("1"))
	require.NoError(t, err)
	assert.True(t, indexed)

	isQueued, err := tracker.IsQueued(ctx, articleKey("1"))
	require.NoError(t, err)
	assert.False(t, isQueued)

	pending, err := tracker.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	// The item may be queued again after completion.
	queued, err := tracker.Enqueue(ctx, queueItem("1"))
	require.NoError(t, err)
	assert.True(t, queued)
}

func TestReEnqueueClearsIndexedFlag(t *testing.T) {
	tracker, _ := newTestTracker(t)
	ctx := context.Background()

	_, err := tracker.Enqueue(ctx, queueItem("1"))
	require.NoError(t, err)
	require.NoError(t, tracker.Complete(ctx, articleKey("1")))

	queued, err := tracker.Enqueue(ctx, queueItem("1"))
	require.NoError(t, err)
	require.True(t, queued)

	indexed, err := tracker.IsIndexed(ctx, articleKey("1"))
	require.NoError(t, err)
	assert.False(t, indexed, "a pending item must not report as indexed")

	isQueued, err := tracker.IsQueued(ctx, articleKey("1"))
	require.NoError(t, err)
	assert.True(t, isQueued)

	status, err := tracker.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, Status{Total: 1, Indexed: 0, Queued: 1}, status)
}

func TestUnknownKeysReportFalse(t *testing.T) {
	tracker, _ := newTestTracker(t)
	ctx := context.Background()

	indexed, err := tracker.IsIndexed(ctx, articleKey("404"))
	require.NoError(t, err)
	assert.False(t, indexed)

	isQueued, err := tracker.IsQueued(ctx, articleKey("404"))
	require.NoError(t, err)
	assert.False(t, isQueued)
}

func TestTotals(t *testing.T) {
	tracker, _ := newTestTracker(t)
	ctx := context.Background()

	for _, id := range []string{"1", "2", "3"} {
		_, err := tracker.Enqueue(ctx, queueItem(id))
		require.NoError(t, err)
	}
	require.NoError(t, tracker.Complete(ctx, articleKey("1")))

	status, err := tracker.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, Status{Total: 3, Indexed: 1, Queued: 2}, status)

	unindexed, err := tracker.Unindexed(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, unindexed, 2)
}

func TestClearByKeyCascades(t *testing.T) {
	tracker, store := newTestTracker(t)
	ctx := context.Background()

	_, err := tracker.Enqueue(ctx, queueItem("1"))
	require.NoError(t, err)
	require.NoError(t, store.Upsert(ctx, []core.VectorRecord{
		{Content: "chunk", Embedding: []float32{1, 0}, Key: articleKey("1")},
	}))

	require.NoError(t, tracker.ClearByKey(ctx, articleKey("1")))

	assert.Equal(t, 0, store.Len())
	pending, err := tracker.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	status, err := tracker.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, status.Total)

	// Clearing an unknown key is not an error
	require.NoError(t, tracker.ClearByKey(ctx, articleKey("404")))
}

func TestClearByCategory(t *testing.T) {
	tracker, store := newTestTracker(t)
	ctx := context.Background()

	pageItem := &core.QueueItem{
		Key:    core.IndexKey{OwnerID: "9", OwnerType: "node", Category: "page", Language: "en"},
		Source: "https://example.com/page/9",
		Policy: core.DefaultChunkPolicy(),
	}
	_, err := tracker.Enqueue(ctx, queueItem("1"))
	require.NoError(t, err)
	_, err = tracker.Enqueue(ctx, pageItem)
	require.NoError(t, err)

	require.NoError(t, store.Upsert(ctx, []core.VectorRecord{
		{Content: "article chunk", Embedding: []float32{1, 0}, Key: articleKey("1")},
		{Content: "page chunk", Embedding: []float32{1, 0}, Key: pageItem.Key},
	}))

	require.NoError(t, tracker.ClearByCategory(ctx, "node", "article"))

	assert.Equal(t, 1, store.Len())
	pending, err := tracker.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "page", pending[0].Key.Category)

	status, err := tracker.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, status.Total)
}

func TestClearAll(t *testing.T) {
	tracker, store := newTestTracker(t)
	ctx := context.Background()

	_, err := tracker.Enqueue(ctx, queueItem("1"))
	require.NoError(t, err)
	require.NoError(t, store.Upsert(ctx, []core.VectorRecord{
		{Content: "chunk", Embedding: []float32{1, 0}, Key: articleKey("1")},
	}))

	require.NoError(t, tracker.ClearAll(ctx, ""))

	assert.Equal(t, 0, store.Len())
	status, err := tracker.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, Status{}, status)
}

func TestShouldIndex(t *testing.T) {
	included := map[string]bool{"node__article": true}

	tests := []struct {
		name     string
		key      core.IndexKey
		item     Publishable
		included map[string]bool
		want     bool
	}{
		{
			name:     "included and published",
			key:      articleKey("1"),
			item:     published(true),
			included: included,
			want:     true,
		},
		{
			name:     "included but unpublished",
			key:      articleKey("1"),
			item:     published(false),
			included: included,
			want:     false,
		},
		{
			name:     "published but excluded category",
			key:      core.IndexKey{OwnerID: "1", OwnerType: "node", Category: "page", Language: "en"},
			item:     published(true),
			included: included,
			want:     false,
		},
		{
			name: "nil inclusion set indexes nothing",
			key:  articleKey("1"),
			item: published(true),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldIndex(tt.key, tt.item, tt.included))
		})
	}
}

type published bool

func (p published) IsPublished() bool { return bool(p) }
