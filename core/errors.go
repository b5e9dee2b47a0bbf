// Copyright 2025 Amazee Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "errors"

// Failure taxonomy shared across packages. Callers classify failures with
// errors.Is against these sentinels.
var (
	// ErrUpstream indicates a failure of an external service: the embedding
	// or chat model, or the vector store. Not retried automatically.
	ErrUpstream = errors.New("upstream service failure")

	// ErrExtraction indicates content could not be fetched or parsed.
	// The affected document stays queued for a future pass.
	ErrExtraction = errors.New("content extraction failed")

	// ErrNotConfigured indicates required credentials or endpoints are
	// missing. Indexing and chat are disabled until resolved.
	ErrNotConfigured = errors.New("missing configuration")
)

// Domain validation errors
var (
	// ErrInvalidIndexKey indicates an IndexKey failed validation.
	ErrInvalidIndexKey = errors.New("invalid index key")

	// ErrInvalidQueueItem indicates a QueueItem failed validation.
	ErrInvalidQueueItem = errors.New("invalid queue item")

	// ErrInvalidHistoryEntry indicates a HistoryEntry failed validation.
	ErrInvalidHistoryEntry = errors.New("invalid history entry")

	// ErrEmptyOwnerID indicates the OwnerID field is empty.
	ErrEmptyOwnerID = errors.New("owner id cannot be empty")

	// ErrEmptyOwnerType indicates the OwnerType field is empty.
	ErrEmptyOwnerType = errors.New("owner type cannot be empty")

	// ErrEmptySource indicates the queue item has no content reference.
	ErrEmptySource = errors.New("source reference cannot be empty")

	// ErrEmptyQuery indicates the history entry has no user query.
	ErrEmptyQuery = errors.New("query cannot be empty")
)
