package index

import (
	"fmt"

	"github.com/AmazeeLabs/chat-ai/core"
)

// Publishable reports whether a content item is visible to site visitors.
// Unpublished content never reaches the vector store.
type Publishable interface {
	IsPublished() bool
}

// InclusionKey builds the lookup key of the inclusion set for an owner
// type and category pair.
func InclusionKey(ownerType, category string) string {
	return fmt.Sprintf("%s__%s", ownerType, category)
}

// ShouldIndex decides whether a content item belongs in the vector store.
// An item is indexable only when its type and category pair is included
// in the configured set and the item is published. A nil inclusion set
// indexes nothing.
func ShouldIndex(key core.IndexKey, item Publishable, included map[string]bool) bool {
	if included == nil {
		return false
	}
	if !included[InclusionKey(key.OwnerType, key.Category)] {
		return false
	}
	return item != nil && item.IsPublished()
}
