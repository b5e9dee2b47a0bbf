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


package retrieval

import (
	"context"
	"log/slog"

	"github.com/AmazeeLabs/chat-ai/ai"
	"github.com/AmazeeLabs/chat-ai/core"
	"github.com/AmazeeLabs/chat-ai/vectorstore"
)

// QueryExpander produces alternative phrasings of a user question.
// Retrieval runs once per phrasing and merges the results.
type QueryExpander interface {
	MultiQuery(ctx context.Context, question, langcode string) ([]string, error)
}

// Orchestrator retrieves the document chunks relevant to a question by
// embedding it and searching the vector store, once per query variant.
type Orchestrator struct {
	embedder  ai.Embedder
	store     vectorstore.Store
	expander  QueryExpander
	threshold float64
	count     int
	logger    *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithThreshold sets the minimum similarity for matches.
// Default is vectorstore.DefaultMatchThreshold.
func WithThreshold(threshold float64) Option {
	return func(o *Orchestrator) {
		o.threshold = threshold
	}
}

// WithMatchCount sets how many matches each search returns at most.
// Default is vectorstore.DefaultMatchCount.
func WithMatchCount(count int) Option {
	return func(o *Orchestrator) {
		if count > 0 {
			o.count = count
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger.With("component", "retrieval")
	}
}

// NewOrchestrator creates a retrieval orchestrator. The expander may be
// nil, in which case only the original question is searched.
func NewOrchestrator(embedder ai.Embedder, store vectorstore.Store, expander QueryExpander, opts ...Option) (*Orchestrator, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if store == nil {
		return nil, ErrVectorStoreRequired
	}

	o := &Orchestrator{
		embedder:  embedder,
		store:     store,
		expander:  expander,
		threshold: vectorstore.DefaultMatchThreshold,
		count:     vectorstore.DefaultMatchCount,
		logger:    slog.Default().With("component", "retrieval"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Matching returns the stored chunks relevant to a single query string.
func (o *Orchestrator) Matching(ctx context.Context, query string) ([]string, error) {
	if query == "" {
		return nil, core.ErrEmptyQuery
	}

	embedding, err := o.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, err
	}

	return o.store.Search(ctx, embedding.Vector, o.threshold, o.count)
}

// Retrieve expands the question into query variants, searches the store
// once per variant, and merges the results preserving first-seen order.
// Only the variants are searched; when the expansion yields no usable
// variants the result is empty, without an error.
func (o *Orchestrator) Retrieve(ctx context.Context, question, langcode string) ([]string, error) {
	queries := []string{question}
	if o.expander != nil {
		variants, err := o.expander.MultiQuery(ctx, question, langcode)
		if err != nil {
			return nil, err
		}
		queries = variants
	}

	if len(queries) == 0 {
		o.logger.Warn("query expansion produced no variants, skipping retrieval")
		return nil, nil
	}

	seen := make(map[string]bool)
	var merged []string
	for _, query := range queries {
		if query == "" {
			continue
		}
		matches, err := o.Matching(ctx, query)
		if err != nil {
			return nil, err
		}
		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true
			merged = append(merged, match)
		}
	}

	o.logger.Debug("retrieval finished",
		"queries", len(queries),
		"matches", len(merged))
	return merged, nil
}
