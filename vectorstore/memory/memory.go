package memory

import (
	"context"
	"math"
	"slices"
	"sync"

	"github.com/AmazeeLabs/chat-ai/core"
	"github.com/AmazeeLabs/chat-ai/vectorstore"
)

// Store is an in-memory vector store for tests and local development.
// Similarity is cosine similarity over the stored embeddings.
type Store struct {
	mu      sync.RWMutex
	records map[recordKey]core.VectorRecord
}

// recordKey is the identity under which a row is upserted.
type recordKey struct {
	OwnerID   string
	OwnerType string
	Category  string
	Language  string
	Content   string
}

var _ vectorstore.Store = (*Store)(nil)

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{records: make(map[recordKey]core.VectorRecord)}
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Store) Upsert(ctx context.Context, records []core.VectorRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range records {
		key := recordKey{
			OwnerID:   record.Key.OwnerID,
			OwnerType: record.Key.OwnerType,
			Category:  record.Key.Category,
			Language:  record.Key.Language,
			Content:   record.Content,
		}
		s.records[key] = record
	}
	return nil
}

func (s *Store) DeleteByOwner(ctx context.Context, ownerID, ownerType, category string) error {
	s.deleteMatching(func(key recordKey) bool {
		return key.OwnerID == ownerID && key.OwnerType == ownerType && key.Category == category
	})
	return nil
}

func (s *Store) DeleteByCategory(ctx context.Context, ownerType, category string) error {
	s.deleteMatching(func(key recordKey) bool {
		return key.OwnerType == ownerType && key.Category == category
	})
	return nil
}

func (s *Store) DeleteAllExcept(ctx context.Context, excludedOwnerType string) error {
	s.deleteMatching(func(key recordKey) bool {
		return excludedOwnerType == "" || key.OwnerType != excludedOwnerType
	})
	return nil
}

func (s *Store) Search(ctx context.Context, vector []float32, threshold float64, limit int) ([]string, error) {
	type scored struct {
		content string
		score   float64
	}

	s.mu.RLock()
	var matches []scored
	for _, record := range s.records {
		score := cosineSimilarity(vector, record.Embedding)
		if score >= threshold {
			matches = append(matches, scored{content: record.Content, score: score})
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(matches, func(a, b scored) int {
		if a.score > b.score {
			return -1
		}
		if a.score < b.score {
			return 1
		}
		return 0
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	contents := make([]string, len(matches))
	for i, match := range matches {
		contents[i] = match.content
	}
	return contents, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return nil
}

func (s *Store) deleteMatching(match func(recordKey) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.records {
		if match(key) {
			delete(s.records, key)
		}
	}
}

// cosineSimilarity computes the cosine similarity of two vectors.
// Mismatched lengths are compared over the shorter vector.
func cosineSimilarity(a, b []float32) float64 {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < minLen; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
