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


package badger

import "github.com/AmazeeLabs/chat-ai/storage"

// NewMemoryRepositories creates in-memory state, queue, and history
// repositories for testing. Caller must close the repos and backend
// when done.
func NewMemoryRepositories() (storage.IndexStateRepository, storage.QueueRepository, storage.HistoryRepository, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	states, err := NewIndexStateRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, nil, nil, err
	}

	queue, err := NewQueueRepository(backend)
	if err != nil {
		states.Close()
		backend.Close()
		return nil, nil, nil, nil, err
	}

	history, err := NewHistoryRepository(backend)
	if err != nil {
		queue.Close()
		states.Close()
		backend.Close()
		return nil, nil, nil, nil, err
	}

	return states, queue, history, backend, nil
}
