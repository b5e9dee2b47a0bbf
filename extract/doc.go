// Package extract fetches content sources and reduces them to plain
// text suitable for chunking and embedding. HTTP sources are fetched
// and stripped of markup; everything else is read from disk.
package extract
