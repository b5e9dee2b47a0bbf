package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmazeeLabs/chat-ai/ai"
	"github.com/AmazeeLabs/chat-ai/ai/mock"
	"github.com/AmazeeLabs/chat-ai/core"
)

// stubStore returns canned matches keyed by nothing; every search yields
// the next configured result set.
type stubStore struct {
	results [][]string
	calls   int
	err     error
}

func (s *stubStore) Upsert(ctx context.Context, records []core.VectorRecord) error { return nil }
func (s *stubStore) DeleteByOwner(ctx context.Context, ownerID, ownerType, category string) error {
	return nil
}
func (s *stubStore) DeleteByCategory(ctx context.Context, ownerType, category string) error {
	return nil
}
func (s *stubStore) DeleteAllExcept(ctx context.Context, excludedOwnerType string) error { return nil }
func (s *stubStore) Ping(ctx context.Context) error                                      { return nil }

func (s *stubStore) Search(ctx context.Context, vector []float32, threshold float64, limit int) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.calls >= len(s.results) {
		return nil, nil
	}
	matches := s.results[s.calls]
	s.calls++
	return matches, nil
}

// stubExpander returns fixed variants.
type stubExpander struct {
	variants []string
	err      error
}

func (s *stubExpander) MultiQuery(ctx context.Context, question, langcode string) ([]string, error) {
	return s.variants, s.err
}

func TestMatchingRejectsEmptyQuery(t *testing.T) {
	o, err := NewOrchestrator(mock.NewMockEmbedder(), &stubStore{}, nil)
	require.NoError(t, err)

	_, err = o.Matching(context.Background(), "")
	assert.ErrorIs(t, err, core.ErrEmptyQuery)
}

func TestRetrieveMergesVariantsFirstSeen(t *testing.T) {
	store := &stubStore{results: [][]string{
		{"a", "b"},
		{"a", "c"},
		{"b"},
	}}
	expander := &stubExpander{variants: []string{"variant one", "variant two", "variant three"}}

	o, err := NewOrchestrator(mock.NewMockEmbedder(), store, expander)
	require.NoError(t, err)

	merged, err := o.Retrieve(context.Background(), "original question", "en")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, merged)
	assert.Equal(t, 3, store.calls, "each query variant must be searched")
}

func TestRetrievePropagatesExpansionFailure(t *testing.T) {
	store := &stubStore{results: [][]string{{"only match"}}}
	expander := &stubExpander{err: errors.New("model unavailable")}

	o, err := NewOrchestrator(mock.NewMockEmbedder(), store, expander)
	require.NoError(t, err)

	_, err = o.Retrieve(context.Background(), "question", "en")
	require.Error(t, err)
	assert.Equal(t, 0, store.calls, "a failed expansion must not reach the store")
}

func TestRetrieveWithoutVariantsSkipsSearch(t *testing.T) {
	store := &stubStore{results: [][]string{{"chunk-a", "chunk-b"}}}
	expander := &stubExpander{}

	o, err := NewOrchestrator(mock.NewMockEmbedder(), store, expander)
	require.NoError(t, err)

	merged, err := o.Retrieve(context.Background(), "question", "en")
	require.NoError(t, err)
	assert.Empty(t, merged, "no variants means no retrieval context")
	assert.Equal(t, 0, store.calls)
}

func TestRetrieveWithoutExpander(t *testing.T) {
	store := &stubStore{results: [][]string{{"m1", "m2"}}}

	o, err := NewOrchestrator(mock.NewMockEmbedder(), store, nil)
	require.NoError(t, err)

	merged, err := o.Retrieve(context.Background(), "question", "en")
	require.NoError(t, err)
	assert.Equal(t, []string{"m1", "m2"}, merged)
}

func TestRetrievePropagatesEmbedderErrors(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) (ai.Embedding, error) {
		return ai.Embedding{}, core.ErrUpstream
	}

	o, err := NewOrchestrator(embedder, &stubStore{}, nil)
	require.NoError(t, err)

	_, err = o.Retrieve(context.Background(), "question", "en")
	assert.ErrorIs(t, err, core.ErrUpstream)
}

func TestNewOrchestratorValidation(t *testing.T) {
	_, err := NewOrchestrator(nil, &stubStore{}, nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	_, err = NewOrchestrator(mock.NewMockEmbedder(), nil, nil)
	assert.ErrorIs(t, err, ErrVectorStoreRequired)
}
