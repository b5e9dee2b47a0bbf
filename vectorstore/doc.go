// Package vectorstore abstracts the remote store of embedded content
// chunks. The production implementation talks to a Supabase PostgREST
// endpoint backed by pgvector; an in-memory implementation backs tests
// and local development.
package vectorstore
