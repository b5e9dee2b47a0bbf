package chat

import "errors"

var (
	// ErrChatModelRequired is returned when a chat model is not provided.
	ErrChatModelRequired = errors.New("chat model required")

	// ErrHistoryRepositoryRequired is returned when a history repository is not provided.
	ErrHistoryRepositoryRequired = errors.New("history repository required")
)
