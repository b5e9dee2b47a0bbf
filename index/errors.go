package index

import "errors"

var (
	// ErrStateRepositoryRequired is returned when a state repository is not provided.
	ErrStateRepositoryRequired = errors.New("index state repository required")

	// ErrQueueRepositoryRequired is returned when a queue repository is not provided.
	ErrQueueRepositoryRequired = errors.New("queue repository required")

	// ErrVectorStoreRequired is returned when a vector store is not provided.
	ErrVectorStoreRequired = errors.New("vector store required")

	// ErrExtractorRequired is returned when a content extractor is not provided.
	ErrExtractorRequired = errors.New("content extractor required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrTrackerRequired is returned when a tracker is not provided.
	ErrTrackerRequired = errors.New("tracker required")

	// ErrInvalidMaxAttempts is returned when retry attempts is not positive.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")
)
