package core

import (
	"errors"
	"testing"
)

func TestValidateIndexKey(t *testing.T) {
	tests := []struct {
		name    string
		key     IndexKey
		wantErr error
	}{
		{
			name: "valid key",
			key: IndexKey{
				OwnerID:   "42",
				OwnerType: "node",
				Category:  "article",
				Language:  "en",
			},
			wantErr: nil,
		},
		{
			name: "valid key without category and language",
			key: IndexKey{
				OwnerID:   "42",
				OwnerType: "file",
			},
			wantErr: nil,
		},
		{
			name: "missing owner id",
			key: IndexKey{
				OwnerType: "node",
				Category:  "article",
			},
			wantErr: ErrEmptyOwnerID,
		},
		{
			name: "missing owner type",
			key: IndexKey{
				OwnerID:  "42",
				Category: "article",
			},
			wantErr: ErrEmptyOwnerType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIndexKey(tt.key)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateIndexKey() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateIndexKey() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidIndexKey) {
				t.Errorf("ValidateIndexKey() error = %v, want wrapped %v", err, ErrInvalidIndexKey)
			}
		})
	}
}

func TestValidateQueueItem(t *testing.T) {
	validKey := IndexKey{OwnerID: "1", OwnerType: "node", Category: "page", Language: "en"}

	tests := []struct {
		name    string
		item    *QueueItem
		wantErr error
	}{
		{
			name:    "valid item",
			item:    &QueueItem{Key: validKey, Source: "https://example.com/node/1"},
			wantErr: nil,
		},
		{
			name:    "nil item",
			item:    nil,
			wantErr: ErrInvalidQueueItem,
		},
		{
			name:    "missing source",
			item:    &QueueItem{Key: validKey},
			wantErr: ErrEmptySource,
		},
		{
			name:    "invalid key",
			item:    &QueueItem{Key: IndexKey{}, Source: "https://example.com"},
			wantErr: ErrInvalidIndexKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQueueItem(tt.item)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateQueueItem() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateQueueItem() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateHistoryEntry(t *testing.T) {
	tests := []struct {
		name    string
		entry   *HistoryEntry
		wantErr error
	}{
		{
			name:    "valid entry",
			entry:   &HistoryEntry{UserID: "0", Query: "opening hours", Response: "<p>Open daily.</p>"},
			wantErr: nil,
		},
		{
			name:    "empty response is allowed",
			entry:   &HistoryEntry{Query: "anything"},
			wantErr: nil,
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantErr: ErrInvalidHistoryEntry,
		},
		{
			name:    "empty query",
			entry:   &HistoryEntry{Response: "text"},
			wantErr: ErrEmptyQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHistoryEntry(tt.entry)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateHistoryEntry() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateHistoryEntry() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
