package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmazeeLabs/chat-ai/chat"
)

// stubAnswerer records the last call and returns a fixed answer.
type stubAnswerer struct {
	answer   string
	err      error
	userID   string
	question string
	langcode string
	turns    []chat.Turn
}

func (s *stubAnswerer) Answer(ctx context.Context, userID, question, langcode string, turns []chat.Turn) (string, error) {
	s.userID = userID
	s.question = question
	s.langcode = langcode
	s.turns = turns
	return s.answer, s.err
}

func newTestServer(answerer Answerer) *Server {
	return New(Config{
		Addr:           ":0",
		AllowedOrigins: []string{"https://www.example.com"},
	}, answerer, nil)
}

func postCompletion(t *testing.T, srv *Server, origin string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/chat/completion", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if origin != "" {
		req.Header.Set("Origin", origin)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestChatCompletion(t *testing.T) {
	answerer := &stubAnswerer{answer: "<p class='chat-gpt'>We open at nine.</p>"}
	srv := newTestServer(answerer)

	rec := postCompletion(t, srv, "https://www.example.com", map[string]any{
		"message":  "when do you open?",
		"langcode": "en",
		"history": []map[string]string{
			{"user": "hello", "assistant": "hi, how can I help?"},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp["status"])
	assert.Equal(t, "<p class='chat-gpt'>We open at nine.</p>", resp["answer"])
	assert.Equal(t, "en", resp["langcode"])
	assert.NotEmpty(t, resp["processed_at"])

	assert.Equal(t, "when do you open?", answerer.question)
	assert.Equal(t, "en", answerer.langcode)
	assert.Equal(t, rec.Header().Get("X-Request-ID"), answerer.userID, "the exchange is logged under the request id")
	require.Len(t, answerer.turns, 1)
	assert.Equal(t, "hello", answerer.turns[0].User)
}

func TestChatCompletionMissingFields(t *testing.T) {
	srv := newTestServer(&stubAnswerer{})

	for _, payload := range []map[string]string{
		{"langcode": "en"},
		{"message": "a question"},
		{},
	} {
		rec := postCompletion(t, srv, "https://www.example.com", payload)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "error", resp["status"])
		assert.Equal(t, "Missing required fields", resp["message"])
	}
}

func TestChatCompletionRejectsUnknownOrigin(t *testing.T) {
	srv := newTestServer(&stubAnswerer{})

	rec := postCompletion(t, srv, "https://evil.example.org", map[string]string{
		"message":  "a question",
		"langcode": "en",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestChatCompletionAnswererFailure(t *testing.T) {
	srv := newTestServer(&stubAnswerer{err: errors.New("boom")})

	rec := postCompletion(t, srv, "https://www.example.com", map[string]string{
		"message":  "a question",
		"langcode": "en",
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealthcheck(t *testing.T) {
	srv := newTestServer(&stubAnswerer{})

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestOriginHost(t *testing.T) {
	tests := []struct {
		origin string
		want   string
	}{
		{"https://www.example.com", "www.example.com"},
		{"http://localhost:3000", "localhost"},
		{"www.example.com", "www.example.com"},
		{"127.0.0.1:8080", "127.0.0.1"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, originHost(tt.origin), "origin %q", tt.origin)
	}
}
