package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AmazeeLabs/chat-ai/core"
	"github.com/AmazeeLabs/chat-ai/vectorstore"
)

const (
	documentsPath = "/rest/v1/documents"
	matchPath     = "/rest/v1/rpc/match_documents"

	defaultTimeout = 60 * time.Second
)

// Client talks to a Supabase PostgREST endpoint with a pgvector-backed
// documents table.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *slog.Logger
}

var _ vectorstore.Store = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.http = client
	}
}

// WithLogger sets the logger used by the client.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger.With("component", "supabase")
	}
}

// NewClient creates a vector store client for the given Supabase project
// URL and service key.
func NewClient(baseURL, apiKey string, opts ...Option) (vectorstore.Store, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: supabase URL is required", core.ErrNotConfigured)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: supabase API key is required", core.ErrNotConfigured)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  slog.Default().With("component", "supabase"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// document is the wire representation of one stored chunk.
type document struct {
	Content   string    `json:"content"`
	Embedding []float32 `json:"embedding"`
	EntityID  string    `json:"entity_id"`
	EntityTyp string    `json:"entity_type"`
	Bundle    string    `json:"bundle"`
	Langcode  string    `json:"langcode"`
}

// matchRequest is the payload of the match_documents RPC.
type matchRequest struct {
	QueryEmbedding []float32 `json:"query_embedding"`
	MatchThreshold float64   `json:"match_threshold"`
	MatchCount     int       `json:"match_count"`
}

// matchResult is one row returned by the match_documents RPC.
type matchResult struct {
	Content    string  `json:"content"`
	Similarity float64 `json:"similarity"`
}

// Upsert writes records to the documents table. Rows that collide on the
// table's unique constraint replace the stored copy.
func (c *Client) Upsert(ctx context.Context, records []core.VectorRecord) error {
	if len(records) == 0 {
		return nil
	}

	docs := make([]document, len(records))
	for i, record := range records {
		docs[i] = document{
			Content:   record.Content,
			Embedding: record.Embedding,
			EntityID:  record.Key.OwnerID,
			EntityTyp: record.Key.OwnerType,
			Bundle:    record.Key.Category,
			Langcode:  record.Key.Language,
		}
	}

	headers := http.Header{"Prefer": []string{"resolution=merge-duplicates"}}
	_, err := c.do(ctx, http.MethodPost, c.baseURL+documentsPath, docs, headers)
	return err
}

// DeleteByOwner removes all rows belonging to one content item. Langcode
// is deliberately not part of the filter: reindexing one translation
// replaces every stored translation of the item, and the indexing pass
// writes them back.
func (c *Client) DeleteByOwner(ctx context.Context, ownerID, ownerType, category string) error {
	query := url.Values{}
	query.Set("entity_id", "eq."+ownerID)
	query.Set("entity_type", "eq."+ownerType)
	query.Set("bundle", "eq."+category)
	_, err := c.do(ctx, http.MethodDelete, c.baseURL+documentsPath+"?"+query.Encode(), nil, nil)
	return err
}

// DeleteByCategory removes all rows of an owner type and category.
func (c *Client) DeleteByCategory(ctx context.Context, ownerType, category string) error {
	query := url.Values{}
	query.Set("entity_type", "eq."+ownerType)
	query.Set("bundle", "eq."+category)
	_, err := c.do(ctx, http.MethodDelete, c.baseURL+documentsPath+"?"+query.Encode(), nil, nil)
	return err
}

// DeleteAllExcept removes every row except those of the excluded owner
// type. PostgREST refuses unfiltered deletes, so the empty case filters
// on the always-true id condition.
func (c *Client) DeleteAllExcept(ctx context.Context, excludedOwnerType string) error {
	query := url.Values{}
	if excludedOwnerType == "" {
		query.Set("id", "gt.0")
	} else {
		query.Set("entity_type", "neq."+excludedOwnerType)
	}
	_, err := c.do(ctx, http.MethodDelete, c.baseURL+documentsPath+"?"+query.Encode(), nil, nil)
	return err
}

// Search runs the match_documents RPC and returns matching content, best
// match first.
func (c *Client) Search(ctx context.Context, vector []float32, threshold float64, limit int) ([]string, error) {
	payload := matchRequest{
		QueryEmbedding: vector,
		MatchThreshold: threshold,
		MatchCount:     limit,
	}

	body, err := c.do(ctx, http.MethodPost, c.baseURL+matchPath, payload, nil)
	if err != nil {
		return nil, err
	}

	var results []matchResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("%w: decode match results: %v", core.ErrUpstream, err)
	}

	contents := make([]string, len(results))
	for i, result := range results {
		contents[i] = result.Content
	}
	return contents, nil
}

// Ping verifies that the documents table is reachable.
func (c *Client) Ping(ctx context.Context) error {
	query := url.Values{}
	query.Set("id", "eq.1")
	query.Set("select", "id")
	_, err := c.do(ctx, http.MethodGet, c.baseURL+documentsPath+"?"+query.Encode(), nil, nil)
	return err
}

// do sends one authenticated request and returns the response body.
// Non-2xx responses map to core.ErrUpstream.
func (c *Client) do(ctx context.Context, method, target string, payload any, extra http.Header) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	for key, values := range extra {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", core.ErrUpstream, method, target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", core.ErrUpstream, err)
	}

	if resp.StatusCode >= 300 {
		c.logger.Error("vector store request failed",
			"method", method,
			"status", resp.StatusCode,
			"body", string(body))
		return nil, fmt.Errorf("%w: %s returned status %d", core.ErrUpstream, method, resp.StatusCode)
	}

	return body, nil
}
