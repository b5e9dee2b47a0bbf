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


package vectorstore

import (
	"context"

	"github.com/AmazeeLabs/chat-ai/core"
)

const (
	// DefaultMatchThreshold is the minimum similarity for a document to
	// count as relevant to a query.
	DefaultMatchThreshold = 0.5

	// DefaultMatchCount is how many documents a single similarity search
	// returns at most.
	DefaultMatchCount = 5
)

// Store is the remote vector store holding embedded content chunks.
// Implementations must be safe for concurrent use.
type Store interface {
	// Upsert writes records to the store. Records that collide on their
	// identity (owner, category, language, content) replace the stored
	// copy instead of duplicating it.
	Upsert(ctx context.Context, records []core.VectorRecord) error

	// DeleteByOwner removes all records belonging to one content item.
	DeleteByOwner(ctx context.Context, ownerID, ownerType, category string) error

	// DeleteByCategory removes all records of an owner type and category.
	DeleteByCategory(ctx context.Context, ownerType, category string) error

	// DeleteAllExcept removes every record except those of the excluded
	// owner type. An empty excluded type removes everything.
	DeleteAllExcept(ctx context.Context, excludedOwnerType string) error

	// Search returns the content of stored records whose similarity to
	// the query vector is at least threshold, best match first, up to
	// limit results.
	Search(ctx context.Context, vector []float32, threshold float64, limit int) ([]string, error)

	// Ping verifies that the store is reachable and configured.
	Ping(ctx context.Context) error
}
