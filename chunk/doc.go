// Package chunk splits extracted text into embedding-sized chunks.
//
// Two strategies are provided. Split packs delimiter-terminated sentences
// into chunks of at least a minimum length and is fully deterministic.
// SplitDocument delegates to a recursive character splitter for long
// documents and filters out chunks unsuitable for embedding.
package chunk
