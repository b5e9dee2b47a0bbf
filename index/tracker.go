// Copyright 2025 Amazee Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package index

import (
	"context"
	"errors"
	"log/slog"

	"github.com/AmazeeLabs/chat-ai/core"
	"github.com/AmazeeLabs/chat-ai/storage"
	"github.com/AmazeeLabs/chat-ai/vectorstore"
)

// Tracker maintains the per-item indexing state and the queue of pending
// work, and keeps both consistent with the remote vector store.
type Tracker struct {
	states  storage.IndexStateRepository
	queue   storage.QueueRepository
	vectors vectorstore.Store
	logger  *slog.Logger
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithTrackerLogger sets a custom logger.
// Default is slog.Default().
func WithTrackerLogger(logger *slog.Logger) TrackerOption {
	return func(t *Tracker) {
		if logger == nil {
			logger = slog.Default()
		}
		t.logger = logger.With("component", "tracker")
	}
}

// NewTracker creates a new Tracker.
func NewTracker(
	states storage.IndexStateRepository,
	queue storage.QueueRepository,
	vectors vectorstore.Store,
	opts ...TrackerOption,
) (*Tracker, error) {
	if states == nil {
		return nil, ErrStateRepositoryRequired
	}
	if queue == nil {
		return nil, ErrQueueRepositoryRequired
	}
	if vectors == nil {
		return nil, ErrVectorStoreRequired
	}

	t := &Tracker{
		states:  states,
		queue:   queue,
		vectors: vectors,
		logger:  slog.Default().With("component", "tracker"),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Track registers a content item for indexing without queueing it.
// Tracking an already known item returns its existing state unchanged.
func (t *Tracker) Track(ctx context.Context, key core.IndexKey) (*core.IndexState, error) {
	state, created, err := t.states.InsertIfAbsent(ctx, key)
	if err != nil {
		return nil, err
	}
	if created {
		t.logger.Debug("tracking new item", "key", key.String())
	}
	return state, nil
}

// Enqueue registers an item and schedules it for indexing. A second
// enqueue of the same key while the first is still pending is a no-op,
// so an item occupies at most one queue slot. Enqueueing an already
// indexed item clears its indexed flag until the pass completes.
// Returns true if the item was newly queued.
func (t *Tracker) Enqueue(ctx context.Context, item *core.QueueItem) (bool, error) {
	if _, err := t.Track(ctx, item.Key); err != nil {
		return false, err
	}

	queued, err := t.queue.Push(ctx, item)
	if err != nil {
		return false, err
	}
	if !queued {
		return false, nil
	}

	if err := t.states.SetIndexed(ctx, item.Key, false); err != nil {
		return false, err
	}
	if err := t.states.SetQueued(ctx, item.Key, true); err != nil {
		return false, err
	}
	t.logger.Info("item queued for indexing", "key", item.Key.String(), "source", item.Source)
	return true, nil
}

// Pending returns a snapshot of the queued items, oldest first.
func (t *Tracker) Pending(ctx context.Context) ([]*core.QueueItem, error) {
	return t.queue.Items(ctx)
}

// Complete marks an item as indexed and releases its queue slot. The
// queue entry is removed last so a crash before that point leaves the
// item pending and it is re-indexed on the next pass.
func (t *Tracker) Complete(ctx context.Context, key core.IndexKey) error {
	if err := t.states.SetIndexed(ctx, key, true); err != nil {
		return err
	}
	if err := t.states.SetQueued(ctx, key, false); err != nil {
		return err
	}
	return t.queue.Remove(ctx, key)
}

// Cancel removes an item's pending queue entry without touching its
// indexed flag.
func (t *Tracker) Cancel(ctx context.Context, key core.IndexKey) error {
	if err := t.queue.Remove(ctx, key); err != nil {
		return err
	}
	err := t.states.SetQueued(ctx, key, false)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	return err
}

// IsIndexed reports whether an item has been indexed. Unknown items
// report false.
func (t *Tracker) IsIndexed(ctx context.Context, key core.IndexKey) (bool, error) {
	state, err := t.states.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return state.Indexed, nil
}

// IsQueued reports whether an item is waiting in the queue. Unknown
// items report false.
func (t *Tracker) IsQueued(ctx context.Context, key core.IndexKey) (bool, error) {
	state, err := t.states.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return state.InQueue, nil
}

// AddTokens accumulates embedding token usage onto an item.
func (t *Tracker) AddTokens(ctx context.Context, key core.IndexKey, prompt, total int64) error {
	return t.states.AddTokens(ctx, key, prompt, total)
}

// SetMetadata replaces the metadata attached to an item.
func (t *Tracker) SetMetadata(ctx context.Context, key core.IndexKey, metadata map[string]string) error {
	return t.states.SetMetadata(ctx, key, metadata)
}

// Unindexed lists keys of tracked items that have not been indexed yet.
func (t *Tracker) Unindexed(ctx context.Context, limit int) ([]core.IndexKey, error) {
	return t.states.ListUnindexed(ctx, limit)
}

// Status summarizes the indexing state.
type Status struct {
	Total   int
	Indexed int
	Queued  int
}

// Totals counts tracked, indexed, and queued items.
func (t *Tracker) Totals(ctx context.Context) (Status, error) {
	total, err := t.states.CountTotal(ctx)
	if err != nil {
		return Status{}, err
	}
	indexed, err := t.states.CountIndexed(ctx)
	if err != nil {
		return Status{}, err
	}
	queued, err := t.states.CountQueued(ctx)
	if err != nil {
		return Status{}, err
	}
	return Status{Total: total, Indexed: indexed, Queued: queued}, nil
}

// ClearByKey removes one item everywhere: its vectors, its queue entry,
// and its local state. Remote deletion goes first so a failure leaves
// the local state intact and the operation retryable.
func (t *Tracker) ClearByKey(ctx context.Context, key core.IndexKey) error {
	if err := t.vectors.DeleteByOwner(ctx, key.OwnerID, key.OwnerType, key.Category); err != nil {
		return err
	}
	if err := t.queue.Remove(ctx, key); err != nil {
		return err
	}
	err := t.states.Delete(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	return err
}

// ClearByCategory removes all items of an owner type and category from
// the vector store, the queue, and local state, in that order.
func (t *Tracker) ClearByCategory(ctx context.Context, ownerType, category string) error {
	if err := t.vectors.DeleteByCategory(ctx, ownerType, category); err != nil {
		return err
	}

	items, err := t.queue.Items(ctx)
	if err != nil {
		return err
	}
	for _, item := range items {
		if item.Key.OwnerType == ownerType && item.Key.Category == category {
			if err := t.queue.Remove(ctx, item.Key); err != nil {
				return err
			}
		}
	}

	return t.states.DeleteByCategory(ctx, ownerType, category)
}

// ClearAll removes every item from the vector store, the queue, and
// local state. An excluded owner type survives in the vector store but
// local bookkeeping is reset regardless.
func (t *Tracker) ClearAll(ctx context.Context, excludedOwnerType string) error {
	if err := t.vectors.DeleteAllExcept(ctx, excludedOwnerType); err != nil {
		return err
	}
	if err := t.queue.Clear(ctx); err != nil {
		return err
	}
	t.logger.Info("cleared index", "excludedOwnerType", excludedOwnerType)
	return t.states.DeleteAll(ctx)
}
