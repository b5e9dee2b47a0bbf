package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmazeeLabs/chat-ai/core"
)

func TestHTMLToText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "strips tags",
			input: "<html><body><h1>Title</h1><p>Some   body text.</p></body></html>",
			want:  "Title Some body text.",
		},
		{
			name:  "drops script and style content",
			input: "<p>visible</p><script>var x = 1;</script><style>p { color: red }</style>",
			want:  "visible",
		},
		{
			name:  "plain text passes through",
			input: "just  some\n\nwords",
			want:  "just some words",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTMLToText(tt.input))
		})
	}
}

func TestHTTPExtractor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/page":
			assert.Equal(t, defaultUserAgent, r.Header.Get("User-Agent"))
			w.Write([]byte("<html><body><p>Hello <b>world</b></p></body></html>"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	extractor := NewHTTPExtractor()

	t.Run("fetches and strips", func(t *testing.T) {
		text, err := extractor.Extract(context.Background(), server.URL+"/page")
		require.NoError(t, err)
		assert.Equal(t, "Hello world", text)
	})

	t.Run("non-2xx is an extraction error", func(t *testing.T) {
		_, err := extractor.Extract(context.Background(), server.URL+"/missing")
		assert.ErrorIs(t, err, core.ErrExtraction)
	})

	t.Run("unreachable host is an extraction error", func(t *testing.T) {
		_, err := extractor.Extract(context.Background(), "http://127.0.0.1:1/nope")
		assert.ErrorIs(t, err, core.ErrExtraction)
	})
}

func TestFileExtractor(t *testing.T) {
	dir := t.TempDir()

	txtPath := filepath.Join(dir, "note.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("line one\nline two"), 0o644))

	htmlPath := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(htmlPath, []byte("<p>from a file</p>"), 0o644))

	extractor := &FileExtractor{}

	t.Run("plain file", func(t *testing.T) {
		text, err := extractor.Extract(context.Background(), txtPath)
		require.NoError(t, err)
		assert.Equal(t, "line one line two", text)
	})

	t.Run("html file is stripped", func(t *testing.T) {
		text, err := extractor.Extract(context.Background(), htmlPath)
		require.NoError(t, err)
		assert.Equal(t, "from a file", text)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := extractor.Extract(context.Background(), filepath.Join(dir, "absent"))
		assert.ErrorIs(t, err, core.ErrExtraction)
	})
}

func TestComposite(t *testing.T) {
	composite := NewComposite()

	t.Run("empty source", func(t *testing.T) {
		_, err := composite.Extract(context.Background(), "")
		assert.ErrorIs(t, err, core.ErrExtraction)
	})

	t.Run("url goes to http extractor", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<p>served</p>"))
		}))
		defer server.Close()

		text, err := composite.Extract(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "served", text)
	})
}
