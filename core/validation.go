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

import "fmt"

// ValidateIndexKey validates an IndexKey according to domain rules.
//
// Validation rules:
//   - OwnerID must not be empty
//   - OwnerType must not be empty
//
// NOT validated:
//   - Category and Language (single-type, monolingual sites leave them empty)
func ValidateIndexKey(key IndexKey) error {
	if key.OwnerID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidIndexKey, ErrEmptyOwnerID)
	}
	if key.OwnerType == "" {
		return fmt.Errorf("%w: %w", ErrInvalidIndexKey, ErrEmptyOwnerType)
	}
	return nil
}

// ValidateQueueItem validates a QueueItem according to domain rules.
//
// Validation rules:
//   - Key must be a valid IndexKey
//   - Source must not be empty
//
// NOT validated:
//   - Policy (zero values fall back to DefaultChunkPolicy in the worker)
//   - EnqueuedAt (set by the queue on push)
func ValidateQueueItem(item *QueueItem) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", ErrInvalidQueueItem)
	}
	if err := ValidateIndexKey(item.Key); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidQueueItem, err)
	}
	if item.Source == "" {
		return fmt.Errorf("%w: %w", ErrInvalidQueueItem, ErrEmptySource)
	}
	return nil
}

// ValidateHistoryEntry validates a HistoryEntry according to domain rules.
//
// Validation rules:
//   - Query must not be empty
//
// NOT validated:
//   - Response (a failed chat turn is still recorded with the fallback text)
//   - Id (0 is valid, the database sequence assigns one)
func ValidateHistoryEntry(entry *HistoryEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidHistoryEntry)
	}
	if entry.Query == "" {
		return fmt.Errorf("%w: %w", ErrInvalidHistoryEntry, ErrEmptyQuery)
	}
	return nil
}
