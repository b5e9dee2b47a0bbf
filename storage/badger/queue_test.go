package badger

import (
	"context"
	"testing"
	"time"

	"github.com/AmazeeLabs/chat-ai/core"
)

func TestQueuePushIsIdempotent(t *testing.T) {
	states, queue, history, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() {
		history.Close()
		queue.Close()
		states.Close()
		backend.Close()
	}()

	ctx := context.Background()
	item := &core.QueueItem{
		Key:    testKey("1"),
		Source: "https://example.com/article/1",
		Policy: core.DefaultChunkPolicy(),
	}

	stored, err := queue.Push(ctx, item)
	if err != nil {
		t.Fatalf("Failed to push item: %v", err)
	}
	if !stored {
		t.Fatal("Expected first push to store the item")
	}
	if item.EnqueuedAt.IsZero() {
		t.Fatal("Expected EnqueuedAt to be set")
	}

	stored, err = queue.Push(ctx, &core.QueueItem{
		Key:    testKey("1"),
		Source: "https://example.com/article/1",
		Policy: core.DefaultChunkPolicy(),
	})
	if err != nil {
		t.Fatalf("Failed to push duplicate: %v", err)
	}
	if stored {
		t.Fatal("Expected duplicate push to be a no-op")
	}

	n, err := queue.Len(ctx)
	if err != nil {
		t.Fatalf("Failed to get queue length: %v", err)
	}
	if n != 1 {
		t.Fatalf("Expected 1 pending item, got %d", n)
	}
}

func TestQueueItemsOldestFirst(t *testing.T) {
	states, queue, history, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() {
		history.Close()
		queue.Close()
		states.Close()
		backend.Close()
	}()

	ctx := context.Background()
	base := time.Now().UTC()

	// Push out of order; snapshot must come back oldest first.
	for i, offset := range []time.Duration{2 * time.Second, 0, time.Second} {
		item := &core.QueueItem{
			Key:        testKey(string(rune('a' + i))),
			Source:     "https://example.com",
			Policy:     core.DefaultChunkPolicy(),
			EnqueuedAt: base.Add(offset),
		}
		if _, err := queue.Push(ctx, item); err != nil {
			t.Fatalf("Failed to push item %d: %v", i, err)
		}
	}

	items, err := queue.Items(ctx)
	if err != nil {
		t.Fatalf("Failed to snapshot queue: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i].EnqueuedAt.Before(items[i-1].EnqueuedAt) {
			t.Fatal("Expected items ordered oldest first")
		}
	}
}

func TestQueueRemoveAndClear(t *testing.T) {
	states, queue, history, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() {
		history.Close()
		queue.Close()
		states.Close()
		backend.Close()
	}()

	ctx := context.Background()

	for _, id := range []string{"1", "2", "3"} {
		item := &core.QueueItem{Key: testKey(id), Source: "https://example.com", Policy: core.DefaultChunkPolicy()}
		if _, err := queue.Push(ctx, item); err != nil {
			t.Fatalf("Failed to push item %s: %v", id, err)
		}
	}

	if err := queue.Remove(ctx, testKey("2")); err != nil {
		t.Fatalf("Failed to remove item: %v", err)
	}
	// Removing a missing item is not an error
	if err := queue.Remove(ctx, testKey("404")); err != nil {
		t.Fatalf("Expected removing a missing item to succeed, got %v", err)
	}

	n, err := queue.Len(ctx)
	if err != nil {
		t.Fatalf("Failed to get queue length: %v", err)
	}
	if n != 2 {
		t.Fatalf("Expected 2 pending items, got %d", n)
	}

	if err := queue.Clear(ctx); err != nil {
		t.Fatalf("Failed to clear queue: %v", err)
	}
	n, err = queue.Len(ctx)
	if err != nil {
		t.Fatalf("Failed to get queue length: %v", err)
	}
	if n != 0 {
		t.Fatalf("Expected empty queue, got %d items", n)
	}
}
