package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/AmazeeLabs/chat-ai/core"
	"github.com/AmazeeLabs/chat-ai/storage"
)

// QueueRepository implements storage.QueueRepository for BadgerDB. Items
// are keyed by their index key, so pushing an already pending item is a
// no-op and removal does not require scanning.
type QueueRepository struct {
	backend *Backend
}

var _ storage.QueueRepository = (*QueueRepository)(nil)

// NewQueueRepository creates a new QueueRepository.
func NewQueueRepository(backend *Backend) (storage.QueueRepository, error) {
	return &QueueRepository{backend: backend}, nil
}

// Close is a no-op; the backend owns the database handle.
func (r *QueueRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *QueueRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// Push enqueues an item unless one with the same key is already pending.
func (r *QueueRepository) Push(ctx context.Context, item *core.QueueItem) (bool, error) {
	if err := core.ValidateQueueItem(item); err != nil {
		return false, err
	}

	stored := false
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeQueueKey(item.Key)
		_, err := tx.Get(key)
		if err == nil {
			return nil
		}
		if err != badger.ErrKeyNotFound {
			return err
		}

		if item.EnqueuedAt.IsZero() {
			item.EnqueuedAt = time.Now().UTC()
		}
		if err := tx.Set(key, storage.MarshalQueueItem(item)); err != nil {
			return err
		}
		stored = true
		return tx.Commit()
	}, true)

	return stored, err
}

// Items returns a snapshot of all pending items, oldest first.
func (r *QueueRepository) Items(ctx context.Context) ([]*core.QueueItem, error) {
	var items []*core.QueueItem
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(queueItemPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var item *core.QueueItem
			err := iter.Item().Value(func(val []byte) error {
				var err error
				item, err = storage.UnmarshalQueueItem(val)
				return err
			})
			if err != nil {
				return err
			}
			if item != nil {
				items = append(items, item)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(items, func(a, b *core.QueueItem) int {
		return a.EnqueuedAt.Compare(b.EnqueuedAt)
	})
	return items, nil
}

// Remove deletes the pending item for a key.
func (r *QueueRepository) Remove(ctx context.Context, key core.IndexKey) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete(makeQueueKey(key)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Len returns the number of pending items.
func (r *QueueRepository) Len(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(queueItemPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// Clear removes all pending items.
func (r *QueueRepository) Clear(ctx context.Context) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(queueItemPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)

		var keys [][]byte
		for iter.Rewind(); iter.Valid(); iter.Next() {
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		iter.Close()

		for _, key := range keys {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}
