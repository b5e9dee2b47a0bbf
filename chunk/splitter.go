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


package chunk

import (
	"strings"

	"github.com/AmazeeLabs/chat-ai/core"
)

// Split splits text into delimiter-terminated sentences and greedily packs
// consecutive sentences into chunks. A chunk is closed by the first sentence
// appended after the accumulator has grown past minLength, so every chunk
// except possibly the last is longer than minLength.
//
// Sentences are trimmed before packing; the delimiter itself is retained.
// Text without any delimiter occurrence comes back as a single chunk.
// Empty text yields no chunks.
func Split(text string, minLength int, delimiter string) []core.Chunk {
	if text == "" {
		return nil
	}
	if delimiter == "" || !strings.Contains(text, delimiter) {
		return []core.Chunk{{Content: text}}
	}

	sentences := splitSentences(text, delimiter)

	var chunks []core.Chunk
	acc := ""
	for _, sentence := range sentences {
		full := len(acc) > minLength
		acc += sentence
		if full {
			chunks = append(chunks, core.Chunk{Content: acc})
			acc = ""
		}
	}
	if acc != "" {
		chunks = append(chunks, core.Chunk{Content: acc})
	}
	return chunks
}

// splitSentences cuts text into delimiter-terminated segments plus any
// unterminated remainder, each trimmed of surrounding whitespace.
func splitSentences(text, delimiter string) []string {
	var sentences []string
	rest := text
	for {
		i := strings.Index(rest, delimiter)
		if i < 0 {
			break
		}
		sentence := strings.TrimSpace(rest[:i+len(delimiter)])
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		rest = rest[i+len(delimiter):]
	}
	if remainder := strings.TrimSpace(rest); remainder != "" {
		sentences = append(sentences, remainder)
	}
	return sentences
}
