// Package server exposes the chat completion HTTP endpoint consumed by
// the site's chat widget. Access is limited to allow-listed origins.
package server
