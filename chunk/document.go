package chunk

import (
	"fmt"

	"github.com/tmc/langchaingo/textsplitter"

	"github.com/AmazeeLabs/chat-ai/core"
)

// SplitDocument splits extracted document text for embedding according to
// the given policy. Chunks that end up empty or longer than policy.MaxLength
// are dropped rather than embedded, since oversized chunks dilute retrieval
// quality and blow the embedding request size.
func SplitDocument(text string, policy core.ChunkPolicy) ([]core.Chunk, error) {
	if text == "" {
		return nil, nil
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(policy.ChunkSize),
		textsplitter.WithChunkOverlap(0),
		textsplitter.WithSeparators([]string{policy.Delimiter}),
	)
	parts, err := splitter.SplitText(text)
	if err != nil {
		return nil, fmt.Errorf("split document: %w", err)
	}

	chunks := make([]core.Chunk, 0, len(parts))
	for _, part := range parts {
		if len(part) == 0 || len(part) > policy.MaxLength {
			continue
		}
		chunks = append(chunks, core.Chunk{Content: part})
	}
	return chunks, nil
}
