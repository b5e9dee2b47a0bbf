package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/AmazeeLabs/chat-ai/core"
	"github.com/AmazeeLabs/chat-ai/storage"
)

// IndexStateRepository implements storage.IndexStateRepository for BadgerDB.
type IndexStateRepository struct {
	backend *Backend
}

var _ storage.IndexStateRepository = (*IndexStateRepository)(nil)

// NewIndexStateRepository creates a new IndexStateRepository.
func NewIndexStateRepository(backend *Backend) (storage.IndexStateRepository, error) {
	return &IndexStateRepository{backend: backend}, nil
}

// Close is a no-op; the backend owns the database handle.
func (r *IndexStateRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *IndexStateRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// InsertIfAbsent creates a state record unless one already exists.
// The existence check and the insert share one read-write transaction,
// so concurrent callers cannot both create the record.
func (r *IndexStateRepository) InsertIfAbsent(ctx context.Context, key core.IndexKey) (*core.IndexState, bool, error) {
	if err := core.ValidateIndexKey(key); err != nil {
		return nil, false, err
	}

	var state *core.IndexState
	created := false
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		storageKey := makeIndexStateKey(key)
		existing, err := readIndexState(tx, storageKey)
		if err != nil {
			return err
		}
		if existing != nil {
			state = existing
			return nil
		}

		now := time.Now().UTC()
		state = &core.IndexState{
			Key:       key,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Set(storageKey, storage.MarshalIndexState(state)); err != nil {
			return err
		}
		created = true
		return tx.Commit()
	}, true)

	return state, created, err
}

// Get retrieves the state record for a key.
func (r *IndexStateRepository) Get(ctx context.Context, key core.IndexKey) (*core.IndexState, error) {
	var state *core.IndexState
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		state, err = readIndexState(tx, makeIndexStateKey(key))
		if err != nil {
			return err
		}
		if state == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return state, err
}

// SetIndexed updates the indexed flag for a key.
func (r *IndexStateRepository) SetIndexed(ctx context.Context, key core.IndexKey, indexed bool) error {
	return r.update(key, func(state *core.IndexState) {
		state.Indexed = indexed
	})
}

// SetQueued updates the queued flag for a key.
func (r *IndexStateRepository) SetQueued(ctx context.Context, key core.IndexKey, queued bool) error {
	return r.update(key, func(state *core.IndexState) {
		state.InQueue = queued
	})
}

// AddTokens accumulates token usage onto a key's counters.
func (r *IndexStateRepository) AddTokens(ctx context.Context, key core.IndexKey, prompt, total int64) error {
	return r.update(key, func(state *core.IndexState) {
		state.PromptTokens += prompt
		state.TotalTokens += total
	})
}

// SetMetadata replaces the metadata map for a key.
func (r *IndexStateRepository) SetMetadata(ctx context.Context, key core.IndexKey, metadata map[string]string) error {
	return r.update(key, func(state *core.IndexState) {
		state.Metadata = metadata
	})
}

// Delete removes the state record for a key.
func (r *IndexStateRepository) Delete(ctx context.Context, key core.IndexKey) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		storageKey := makeIndexStateKey(key)
		state, err := readIndexState(tx, storageKey)
		if err != nil {
			return err
		}
		if state == nil {
			return storage.ErrNotFound
		}
		if err := tx.Delete(storageKey); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// DeleteByCategory removes all state records for an owner type and category.
func (r *IndexStateRepository) DeleteByCategory(ctx context.Context, ownerType, category string) error {
	return r.deleteByPrefix(makeIndexStateCategoryPrefix(ownerType, category))
}

// DeleteAll removes every state record.
func (r *IndexStateRepository) DeleteAll(ctx context.Context) error {
	return r.deleteByPrefix([]byte(indexStatePrefix + ":"))
}

// ListUnindexed returns the keys of records that are not yet indexed.
func (r *IndexStateRepository) ListUnindexed(ctx context.Context, limit int) ([]core.IndexKey, error) {
	var keys []core.IndexKey
	err := r.scan(func(state *core.IndexState) bool {
		if !state.Indexed {
			keys = append(keys, state.Key)
		}
		return limit <= 0 || len(keys) < limit
	})
	return keys, err
}

// CountTotal returns the number of tracked records.
func (r *IndexStateRepository) CountTotal(ctx context.Context) (int, error) {
	return r.count(func(*core.IndexState) bool { return true })
}

// CountIndexed returns the number of records marked indexed.
func (r *IndexStateRepository) CountIndexed(ctx context.Context) (int, error) {
	return r.count(func(state *core.IndexState) bool { return state.Indexed })
}

// CountQueued returns the number of records marked queued.
func (r *IndexStateRepository) CountQueued(ctx context.Context) (int, error) {
	return r.count(func(state *core.IndexState) bool { return state.InQueue })
}

// Helper methods

// update applies a mutation to an existing record and bumps UpdatedAt.
func (r *IndexStateRepository) update(key core.IndexKey, mutate func(*core.IndexState)) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		storageKey := makeIndexStateKey(key)
		state, err := readIndexState(tx, storageKey)
		if err != nil {
			return err
		}
		if state == nil {
			return storage.ErrNotFound
		}

		mutate(state)
		state.UpdatedAt = time.Now().UTC()

		if err := tx.Set(storageKey, storage.MarshalIndexState(state)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// scan iterates all state records until visit returns false.
func (r *IndexStateRepository) scan(visit func(*core.IndexState) bool) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(indexStatePrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var state *core.IndexState
			err := iter.Item().Value(func(val []byte) error {
				var err error
				state, err = storage.UnmarshalIndexState(val)
				return err
			})
			if err != nil {
				return err
			}
			if state == nil {
				continue
			}
			if !visit(state) {
				return nil
			}
		}
		return nil
	}, false)
}

func (r *IndexStateRepository) count(match func(*core.IndexState) bool) (int, error) {
	count := 0
	err := r.scan(func(state *core.IndexState) bool {
		if match(state) {
			count++
		}
		return true
	})
	return count, err
}

func (r *IndexStateRepository) deleteByPrefix(prefix []byte) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
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

// readIndexState reads a state record from the transaction.
func readIndexState(tx *badger.Txn, key []byte) (*core.IndexState, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var state *core.IndexState
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		state, unmarshalErr = storage.UnmarshalIndexState(val)
		return unmarshalErr
	})
	return state, err
}
