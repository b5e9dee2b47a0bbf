package badger

import (
	"context"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/AmazeeLabs/chat-ai/core"
	"github.com/AmazeeLabs/chat-ai/storage"
)

// HistoryRepository implements storage.HistoryRepository for BadgerDB.
// Entries are stored under timestamp-ordered keys so reverse iteration
// yields most recent entries first.
type HistoryRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.HistoryRepository = (*HistoryRepository)(nil)

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(backend *Backend) (storage.HistoryRepository, error) {
	idSeq, err := backend.GetSequence(historyIDSeq)
	if err != nil {
		return nil, err
	}

	return &HistoryRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *HistoryRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *HistoryRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// Append adds an entry to the history log.
func (r *HistoryRepository) Append(ctx context.Context, entry *core.HistoryEntry) (*core.HistoryEntry, error) {
	if err := core.ValidateHistoryEntry(entry); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		if entry.Id == 0 {
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			entry.Id = core.ID(nextID)
		}
		if entry.Created.IsZero() {
			entry.Created = time.Now().UTC()
		}

		key := makeHistoryKey(entry.Created, entry.Id)
		if err := tx.Set(key, storage.MarshalHistoryEntry(entry)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	return entry, err
}

// FindByQuery returns entries whose query contains the given substring,
// case-insensitive, most recent first.
func (r *HistoryRepository) FindByQuery(ctx context.Context, query string) ([]*core.HistoryEntry, error) {
	needle := strings.ToLower(query)
	var results []*core.HistoryEntry
	err := r.iterateReverse(func(entry *core.HistoryEntry) bool {
		if strings.Contains(strings.ToLower(entry.Query), needle) {
			results = append(results, entry)
		}
		return true
	})
	return results, err
}

// Recent returns up to limit entries, most recent first.
func (r *HistoryRepository) Recent(ctx context.Context, limit int) ([]*core.HistoryEntry, error) {
	var results []*core.HistoryEntry
	err := r.iterateReverse(func(entry *core.HistoryEntry) bool {
		results = append(results, entry)
		return limit <= 0 || len(results) < limit
	})
	return results, err
}

// Clear removes all history entries.
func (r *HistoryRepository) Clear(ctx context.Context) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(historyPrefix + ":")
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

// iterateReverse walks history entries newest first until visit returns false.
func (r *HistoryRepository) iterateReverse(visit func(*core.HistoryEntry) bool) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek past the last possible key with the history prefix.
		startKey := makeHistoryKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC), core.ID(^uint64(0)))
		prefix := []byte(historyPrefix + ":")

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if len(key) < len(prefix) || string(key[:len(prefix)]) != string(prefix) {
				break
			}

			var entry *core.HistoryEntry
			err := iter.Item().Value(func(val []byte) error {
				var err error
				entry, err = storage.UnmarshalHistoryEntry(val)
				return err
			})
			if err != nil {
				return err
			}
			if entry == nil {
				continue
			}
			if !visit(entry) {
				return nil
			}
		}
		return nil
	}, false)
}
