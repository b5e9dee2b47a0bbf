package extract

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/AmazeeLabs/chat-ai/core"
)

// FileExtractor reads a local file and returns its text content. Files
// with an .html or .htm extension are stripped of markup first.
type FileExtractor struct{}

func (e *FileExtractor) Extract(_ context.Context, source string) (string, error) {
	data, err := os.ReadFile(source)
	if err != nil {
		return "", fmt.Errorf("%w: read file %s: %v", core.ErrExtraction, source, err)
	}

	text := string(data)
	lower := strings.ToLower(source)
	if strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm") {
		return HTMLToText(text), nil
	}
	return collapseWhitespace(text), nil
}
