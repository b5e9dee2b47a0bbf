// Package retrieval finds the stored content chunks relevant to a user
// question. Questions are optionally expanded into several phrasings
// before searching, which catches documents whose wording differs from
// the user's.
package retrieval
