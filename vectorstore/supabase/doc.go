// Package supabase implements the vector store against a Supabase
// PostgREST endpoint with a pgvector documents table and a
// match_documents similarity function.
package supabase
