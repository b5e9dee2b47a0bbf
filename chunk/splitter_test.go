package chunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AmazeeLabs/chat-ai/core"
)

func contents(chunks []core.Chunk) []string {
	if len(chunks) == 0 {
		return nil
	}
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.Content
	}
	return out
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		minLength int
		delimiter string
		want      []string
	}{
		{
			name:      "packs sentences past minimum length",
			text:      "Sentence one. Sentence two. Sentence three.",
			minLength: 10,
			delimiter: ".",
			want:      []string{"Sentence one.Sentence two.", "Sentence three."},
		},
		{
			name:      "single sentence stays whole",
			text:      "Only one sentence here.",
			minLength: 10,
			delimiter: ".",
			want:      []string{"Only one sentence here."},
		},
		{
			name:      "no delimiter returns whole text",
			text:      "no terminator at all",
			minLength: 5,
			delimiter: ".",
			want:      []string{"no terminator at all"},
		},
		{
			name:      "empty text",
			text:      "",
			minLength: 10,
			delimiter: ".",
			want:      nil,
		},
		{
			name:      "unterminated remainder is kept",
			text:      "First part. Second part. trailing words",
			minLength: 5,
			delimiter: ".",
			want:      []string{"First part.Second part.", "trailing words"},
		},
		{
			name:      "zero minimum flushes after every second sentence",
			text:      "A. B. C. D.",
			minLength: 0,
			delimiter: ".",
			want:      []string{"A.B.", "C.D."},
		},
		{
			name:      "custom delimiter",
			text:      "alpha|beta|gamma|",
			minLength: 4,
			delimiter: "|",
			want:      []string{"alpha|beta|", "gamma|"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.text, tt.minLength, tt.delimiter)
			assert.Equal(t, tt.want, contents(got))
		})
	}
}

func TestSplit_EveryChunkButLastExceedsMinimum(t *testing.T) {
	text := strings.Repeat("This is a fairly ordinary sentence. ", 40)
	minLength := 100

	chunks := Split(text, minLength, ".")
	assert.NotEmpty(t, chunks)
	for i, c := range chunks[:len(chunks)-1] {
		assert.Greater(t, len(c.Content), minLength, "chunk %d", i)
	}
}

func TestSplitDocument(t *testing.T) {
	policy := core.DefaultChunkPolicy()

	t.Run("empty text", func(t *testing.T) {
		chunks, err := SplitDocument("", policy)
		assert.NoError(t, err)
		assert.Empty(t, chunks)
	})

	t.Run("short text is a single chunk", func(t *testing.T) {
		chunks, err := SplitDocument("A short paragraph about nothing much.", policy)
		assert.NoError(t, err)
		assert.Len(t, chunks, 1)
	})

	t.Run("long text respects the maximum length", func(t *testing.T) {
		text := strings.Repeat("Another sentence in a very long document. ", 200)
		chunks, err := SplitDocument(text, policy)
		assert.NoError(t, err)
		assert.NotEmpty(t, chunks)
		for _, c := range chunks {
			assert.NotEmpty(t, c.Content)
			assert.LessOrEqual(t, len(c.Content), policy.MaxLength)
		}
	})
}
