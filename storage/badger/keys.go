package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/AmazeeLabs/chat-ai/core"
)

// Key prefixes for different data types
const (
	indexStatePrefix = "idxsta"
	queueItemPrefix  = "idxque"
	historyPrefix    = "chahis"
	historyIDSeq     = "chahisseq"
)

// makeIndexStateKey generates a key for an index state record.
// Format: prefix:ownerType/category/ownerID/language
func makeIndexStateKey(key core.IndexKey) []byte {
	return []byte(fmt.Sprintf("%s:%s", indexStatePrefix, key.String()))
}

// makeIndexStateCategoryPrefix generates a scan prefix covering every
// state record of one owner type and category.
func makeIndexStateCategoryPrefix(ownerType, category string) []byte {
	return []byte(fmt.Sprintf("%s:%s", indexStatePrefix, core.CategoryPrefix(ownerType, category)))
}

// makeQueueKey generates a key for a pending queue item. Using the index
// key keeps the queue at one pending entry per content item.
func makeQueueKey(key core.IndexKey) []byte {
	return []byte(fmt.Sprintf("%s:%s", queueItemPrefix, key.String()))
}

// makeHistoryKey generates a composite key for a history entry.
// Format: prefix:timestamp:id
func makeHistoryKey(created time.Time, id core.ID) []byte {
	prefix := historyPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(created.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}
