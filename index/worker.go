package index

import (
	"context"
	"log/slog"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/AmazeeLabs/chat-ai/ai"
	"github.com/AmazeeLabs/chat-ai/chunk"
	"github.com/AmazeeLabs/chat-ai/core"
	"github.com/AmazeeLabs/chat-ai/extract"
	"github.com/AmazeeLabs/chat-ai/vectorstore"
)

const (
	embedMaxAttempts = 3
	embedBaseDelay   = 500 * time.Millisecond
)

// Worker drains the indexing queue: it fetches each pending item's
// content, chunks it, embeds the chunks, and replaces the item's rows
// in the vector store.
type Worker struct {
	tracker   *Tracker
	extractor extract.Extractor
	embedder  ai.Embedder
	vectors   vectorstore.Store
	pool      *ants.Pool
	progress  *ProgressTracker
	logger    *slog.Logger
}

// WorkerOption configures a Worker.
type WorkerOption func(*Worker) error

// WithWorkerPoolSize sets the worker pool size for asynchronous drains.
// Default is 1: a single active drain keeps delete-then-write passes on
// the vector store from interleaving.
func WithWorkerPoolSize(size int) WorkerOption {
	return func(w *Worker) error {
		if size < 1 {
			size = 1
		}
		if w.pool != nil {
			w.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		w.pool = pool
		return nil
	}
}

// WithWorkerLogger sets a custom logger.
// Default is slog.Default().
func WithWorkerLogger(logger *slog.Logger) WorkerOption {
	return func(w *Worker) error {
		if logger == nil {
			logger = slog.Default()
		}
		w.logger = logger.With("component", "worker")
		return nil
	}
}

// WithProgress attaches a progress tracker reporting drain progress.
func WithProgress(progress *ProgressTracker) WorkerOption {
	return func(w *Worker) error {
		w.progress = progress
		return nil
	}
}

// NewWorker creates a new queue worker.
func NewWorker(
	tracker *Tracker,
	extractor extract.Extractor,
	embedder ai.Embedder,
	vectors vectorstore.Store,
	opts ...WorkerOption,
) (*Worker, error) {
	if tracker == nil {
		return nil, ErrTrackerRequired
	}
	if extractor == nil {
		return nil, ErrExtractorRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if vectors == nil {
		return nil, ErrVectorStoreRequired
	}

	pool, err := ants.NewPool(1)
	if err != nil {
		return nil, err
	}

	w := &Worker{
		tracker:   tracker,
		extractor: extractor,
		embedder:  embedder,
		vectors:   vectors,
		pool:      pool,
		logger:    slog.Default().With("component", "worker"),
	}
	for _, opt := range opts {
		if optErr := opt(w); optErr != nil {
			w.Release()
			return nil, optErr
		}
	}
	return w, nil
}

// Drain processes a snapshot of the queue and returns how many items
// were indexed. Items that fail stay queued and are retried on the next
// drain; their errors are logged, not returned.
func (w *Worker) Drain(ctx context.Context) (int, error) {
	items, err := w.tracker.Pending(ctx)
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, nil
	}

	if w.progress != nil {
		w.progress.Start()
	}

	indexed := 0
	for _, item := range items {
		select {
		case <-ctx.Done():
			return indexed, ctx.Err()
		default:
		}

		done, err := w.processItem(ctx, item)
		if err != nil {
			w.logger.Error("indexing failed, item stays queued",
				"key", item.Key.String(),
				"source", item.Source,
				"err", err)
			continue
		}
		if !done {
			continue
		}
		indexed++
		if w.progress != nil {
			w.progress.Increment(1)
		}
	}

	if w.progress != nil {
		w.progress.Finish()
	}
	w.logger.Info("queue drained", "processed", indexed, "pending", len(items)-indexed)
	return indexed, nil
}

// DrainAsync schedules a drain on the worker pool.
func (w *Worker) DrainAsync(ctx context.Context) error {
	return w.pool.Submit(func() {
		if _, err := w.Drain(ctx); err != nil {
			w.logger.Error("async drain failed", "err", err)
		}
	})
}

// RunEvery drains the queue on a fixed interval until the context is
// canceled.
func (w *Worker) RunEvery(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := w.Drain(ctx); err != nil {
				w.logger.Error("scheduled drain failed", "err", err)
			}
		}
	}
}

// Release releases the worker pool. The worker should not be used after
// calling Release.
func (w *Worker) Release() {
	if w.pool != nil {
		w.pool.Release()
	}
}

// processItem indexes one queue item and reports whether the item was
// indexed. Items yielding no usable chunks are canceled, not indexed.
// Stored vectors for the item are deleted before the new chunks are
// written, so stale chunks from a previous revision never linger.
func (w *Worker) processItem(ctx context.Context, item *core.QueueItem) (bool, error) {
	text, err := w.extractor.Extract(ctx, item.Source)
	if err != nil {
		return false, err
	}

	chunks, err := chunk.SplitDocument(text, item.Policy)
	if err != nil {
		return false, err
	}
	if len(chunks) == 0 {
		w.logger.Warn("no usable chunks, dropping queue entry", "key", item.Key.String())
		return false, w.tracker.Cancel(ctx, item.Key)
	}

	if err := w.vectors.DeleteByOwner(ctx, item.Key.OwnerID, item.Key.OwnerType, item.Key.Category); err != nil {
		return false, err
	}

	records := make([]core.VectorRecord, 0, len(chunks))
	var promptTokens, totalTokens int64
	for _, c := range chunks {
		var embedding ai.Embedding
		err := RetryWithBackoff(ctx, func() error {
			var embedErr error
			embedding, embedErr = w.embedder.EmbedText(ctx, c.Content)
			return embedErr
		}, embedMaxAttempts, embedBaseDelay)
		if err != nil {
			return false, err
		}

		promptTokens += int64(embedding.PromptTokens)
		totalTokens += int64(embedding.TotalTokens)
		records = append(records, core.VectorRecord{
			Content:   c.Content,
			Embedding: embedding.Vector,
			Key:       item.Key,
		})
	}

	if err := w.vectors.Upsert(ctx, records); err != nil {
		return false, err
	}
	if err := w.tracker.AddTokens(ctx, item.Key, promptTokens, totalTokens); err != nil {
		return false, err
	}

	return true, w.tracker.Complete(ctx, item.Key)
}
