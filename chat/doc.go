// Package chat turns retrieved context chunks into answers. It builds
// the prompt conversation sent to the chat model, expands questions for
// multi-query retrieval, and logs every answered question.
package chat
