package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for stored records.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// IndexKey identifies one indexable unit of site content. The tuple is
// unique across the index-state table and is the conflict key for vector
// records belonging to the same source.
type IndexKey struct {
	OwnerID   string // opaque identifier of the source entity
	OwnerType string // kind of source entity, e.g. "node", "file"
	Category  string // bundle or class within the owner type
	Language  string // langcode of the content variant
}

// String renders the key as "ownerType/category/ownerID/language".
// The order puts (OwnerType, Category) first so that category-scoped
// storage scans can use it as a prefix.
func (k IndexKey) String() string {
	return k.OwnerType + "/" + k.Category + "/" + k.OwnerID + "/" + k.Language
}

// CategoryPrefix returns the "ownerType/category/" prefix shared by all
// keys of one category.
func CategoryPrefix(ownerType, category string) string {
	return ownerType + "/" + category + "/"
}

// IndexState is the durable per-key indexing record.
//
// A key is never Indexed and InQueue at the same time after a completed
// indexing pass: enqueueing clears Indexed, completion clears InQueue.
// Token counters are cumulative and only reset when the record is deleted.
type IndexState struct {
	Key          IndexKey
	Indexed      bool
	InQueue      bool
	PromptTokens int64
	TotalTokens  int64
	Metadata     map[string]string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ChunkPolicy controls how extracted text is split before embedding.
type ChunkPolicy struct {
	MinLength int    // accumulator flush threshold for the sentence splitter
	ChunkSize int    // target size for the document splitter
	MaxLength int    // chunks longer than this are discarded
	Delimiter string // sentence delimiter
}

// DefaultChunkPolicy returns the policy used for site content.
// MaxLength drops oversized chunks, which are usually menus or other
// boilerplate blocks.
func DefaultChunkPolicy() ChunkPolicy {
	return ChunkPolicy{
		MinLength: 600,
		ChunkSize: 800,
		MaxLength: 1000,
		Delimiter: ".",
	}
}

// QueueItem is one unit of deferred indexing work. At most one item exists
// per IndexKey; it is consumed by a worker and removed on completion.
type QueueItem struct {
	Key        IndexKey
	Source     string // content reference: a URL or a local file path
	Policy     ChunkPolicy
	EnqueuedAt time.Time
}

// Chunk is a bounded-length segment of extracted text submitted for
// embedding. Chunks are ephemeral; they are not persisted beyond the
// vector record created from them.
type Chunk struct {
	Content string
}

// VectorRecord is the persisted unit in the vector store: one chunk of
// content, its embedding, and the owner tuple it belongs to.
type VectorRecord struct {
	Content   string
	Embedding []float32
	Key       IndexKey
}

// HistoryEntry is one append-only chat transcript record.
type HistoryEntry struct {
	Id       ID
	Created  time.Time
	UserID   string
	Query    string
	Response string
}
