package storage

import (
	"context"

	"github.com/AmazeeLabs/chat-ai/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// IndexStateRepository tracks which content items have been indexed into
// the vector store and which are waiting in the queue.
type IndexStateRepository interface {
	Repository
	// InsertIfAbsent creates a state record for the key unless one already
	// exists. The lookup and insert happen in a single transaction.
	// Returns the stored record and whether it was newly created.
	InsertIfAbsent(ctx context.Context, key core.IndexKey) (*core.IndexState, bool, error)

	// Get retrieves the state record for a key.
	// Returns ErrNotFound if no record exists.
	Get(ctx context.Context, key core.IndexKey) (*core.IndexState, error)

	// SetIndexed updates the indexed flag for a key.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if no record exists.
	SetIndexed(ctx context.Context, key core.IndexKey, indexed bool) error

	// SetQueued updates the queued flag for a key.
	// Returns ErrNotFound if no record exists.
	SetQueued(ctx context.Context, key core.IndexKey, queued bool) error

	// AddTokens accumulates token usage onto a key's counters.
	// Returns ErrNotFound if no record exists.
	AddTokens(ctx context.Context, key core.IndexKey, prompt, total int64) error

	// SetMetadata replaces the metadata map for a key.
	// Returns ErrNotFound if no record exists.
	SetMetadata(ctx context.Context, key core.IndexKey, metadata map[string]string) error

	// Delete removes the state record for a key.
	// Returns ErrNotFound if no record exists.
	Delete(ctx context.Context, key core.IndexKey) error

	// DeleteByCategory removes all state records for an owner type and
	// category. Missing matches are not an error.
	DeleteByCategory(ctx context.Context, ownerType, category string) error

	// DeleteAll removes every state record.
	DeleteAll(ctx context.Context) error

	// ListUnindexed returns the keys of records that are not yet indexed,
	// up to limit. A limit <= 0 means no limit.
	ListUnindexed(ctx context.Context, limit int) ([]core.IndexKey, error)

	// CountTotal returns the number of tracked records.
	CountTotal(ctx context.Context) (int, error)

	// CountIndexed returns the number of records marked indexed.
	CountIndexed(ctx context.Context) (int, error)

	// CountQueued returns the number of records marked queued.
	CountQueued(ctx context.Context) (int, error)
}

// QueueRepository holds pending indexing work. The queue is keyed by
// core.IndexKey, so each content item has at most one pending entry.
type QueueRepository interface {
	Repository
	// Push enqueues an item unless one with the same key is already
	// pending. Returns true if the item was stored.
	Push(ctx context.Context, item *core.QueueItem) (bool, error)

	// Items returns a snapshot of all pending items, oldest first.
	Items(ctx context.Context) ([]*core.QueueItem, error)

	// Remove deletes the pending item for a key.
	// Missing items are not an error.
	Remove(ctx context.Context, key core.IndexKey) error

	// Len returns the number of pending items.
	Len(ctx context.Context) (int, error)

	// Clear removes all pending items.
	Clear(ctx context.Context) error
}

// HistoryRepository stores the log of answered questions.
type HistoryRepository interface {
	Repository
	// Append adds an entry to the history log.
	// For entries with Id=0, generates a new ID from sequence.
	// Sets Created if not already set.
	// Returns the entry with ID and timestamp populated.
	Append(ctx context.Context, entry *core.HistoryEntry) (*core.HistoryEntry, error)

	// FindByQuery returns entries whose query contains the given substring,
	// case-insensitive, ordered by creation time descending.
	FindByQuery(ctx context.Context, query string) ([]*core.HistoryEntry, error)

	// Recent returns up to limit entries, most recent first.
	Recent(ctx context.Context, limit int) ([]*core.HistoryEntry, error)

	// Clear removes all history entries.
	Clear(ctx context.Context) error
}
