package chat

import "strings"

// FormatAnswer renders model output paragraphs as the HTML fragment the
// chat widget embeds in the page.
func FormatAnswer(paragraphs []string) string {
	return "<p class='chat-gpt'>" + strings.Join(paragraphs, "<br />") + "</p>"
}
