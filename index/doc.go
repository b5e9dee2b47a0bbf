// Package index coordinates the content indexing lifecycle: tracking
// which items belong in the vector store, queueing them for processing,
// and draining the queue through extraction, chunking, and embedding.
//
// The Tracker owns consistency between local bookkeeping and the remote
// vector store. The Worker performs the actual indexing work and is
// safe to run repeatedly: items are only dequeued after their vectors
// have been written, so an interrupted pass is retried on the next one.
package index
