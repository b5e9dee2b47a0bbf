package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// skippedElements hold no human-readable text and are dropped entirely.
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"head":     true,
	"iframe":   true,
	"svg":      true,
}

// HTMLToText strips markup from an HTML document and collapses the
// remaining text into single-space-separated plain text. Input that is
// not HTML passes through with only whitespace normalization.
func HTMLToText(input string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(input))

	var builder strings.Builder
	skipDepth := 0
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return collapseWhitespace(builder.String())
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if skippedElements[string(name)] {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if skippedElements[string(name)] && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth == 0 {
				builder.Write(tokenizer.Text())
				builder.WriteByte(' ')
			}
		}
	}
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
