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


package storage

import (
	"github.com/AmazeeLabs/chat-ai/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	var id core.ID
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalIndexState serializes an IndexState to bytes.
func MarshalIndexState(state *core.IndexState) []byte {
	buf := make([]byte, core.IndexStateMUS.Size(*state))
	core.IndexStateMUS.Marshal(*state, buf)
	return buf
}

// UnmarshalIndexState deserializes an IndexState from bytes.
func UnmarshalIndexState(data []byte) (*core.IndexState, error) {
	state, _, err := core.IndexStateMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// MarshalQueueItem serializes a QueueItem to bytes.
func MarshalQueueItem(item *core.QueueItem) []byte {
	buf := make([]byte, core.QueueItemMUS.Size(*item))
	core.QueueItemMUS.Marshal(*item, buf)
	return buf
}

// UnmarshalQueueItem deserializes a QueueItem from bytes.
func UnmarshalQueueItem(data []byte) (*core.QueueItem, error) {
	item, _, err := core.QueueItemMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// MarshalHistoryEntry serializes a HistoryEntry to bytes.
func MarshalHistoryEntry(entry *core.HistoryEntry) []byte {
	buf := make([]byte, core.HistoryEntryMUS.Size(*entry))
	core.HistoryEntryMUS.Marshal(*entry, buf)
	return buf
}

// UnmarshalHistoryEntry deserializes a HistoryEntry from bytes.
func UnmarshalHistoryEntry(data []byte) (*core.HistoryEntry, error) {
	entry, _, err := core.HistoryEntryMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
