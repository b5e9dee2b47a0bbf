// Code generated by musgen-go. DO NOT EDIT.

package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

var (
	mapZgwPDhB8QVAwkajuC0erVQΞΞ = ord.NewMapSer[string, string](ord.String, ord.String)
)

var IDMUS = iDMUS{}

type iDMUS struct{}

func (s iDMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s iDMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	tmp, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v = ID(tmp)
	return
}

func (s iDMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s iDMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

var IndexKeyMUS = indexKeyMUS{}

type indexKeyMUS struct{}

func (s indexKeyMUS) Marshal(v IndexKey, bs []byte) (n int) {
	n = ord.String.Marshal(v.OwnerID, bs)
	n += ord.String.Marshal(v.OwnerType, bs[n:])
	n += ord.String.Marshal(v.Category, bs[n:])
	return n + ord.String.Marshal(v.Language, bs[n:])
}

func (s indexKeyMUS) Unmarshal(bs []byte) (v IndexKey, n int, err error) {
	v.OwnerID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.OwnerType, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Category, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Language, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s indexKeyMUS) Size(v IndexKey) (size int) {
	size = ord.String.Size(v.OwnerID)
	size += ord.String.Size(v.OwnerType)
	size += ord.String.Size(v.Category)
	return size + ord.String.Size(v.Language)
}

func (s indexKeyMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	return
}

var IndexStateMUS = indexStateMUS{}

type indexStateMUS struct{}

func (s indexStateMUS) Marshal(v IndexState, bs []byte) (n int) {
	n = IndexKeyMUS.Marshal(v.Key, bs)
	n += ord.Bool.Marshal(v.Indexed, bs[n:])
	n += ord.Bool.Marshal(v.InQueue, bs[n:])
	n += varint.Int64.Marshal(v.PromptTokens, bs[n:])
	n += varint.Int64.Marshal(v.TotalTokens, bs[n:])
	n += mapZgwPDhB8QVAwkajuC0erVQΞΞ.Marshal(v.Metadata, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.CreatedAt, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.UpdatedAt, bs[n:])
}

func (s indexStateMUS) Unmarshal(bs []byte) (v IndexState, n int, err error) {
	v.Key, n, err = IndexKeyMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Indexed, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InQueue, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.PromptTokens, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.TotalTokens, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Metadata, n1, err = mapZgwPDhB8QVAwkajuC0erVQΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.CreatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s indexStateMUS) Size(v IndexState) (size int) {
	size = IndexKeyMUS.Size(v.Key)
	size += ord.Bool.Size(v.Indexed)
	size += ord.Bool.Size(v.InQueue)
	size += varint.Int64.Size(v.PromptTokens)
	size += varint.Int64.Size(v.TotalTokens)
	size += mapZgwPDhB8QVAwkajuC0erVQΞΞ.Size(v.Metadata)
	size += raw.TimeUnixMicro.Size(v.CreatedAt)
	return size + raw.TimeUnixMicro.Size(v.UpdatedAt)
}

func (s indexStateMUS) Skip(bs []byte) (n int, err error) {
	n, err = IndexKeyMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.Bool.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.Bool.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = mapZgwPDhB8QVAwkajuC0erVQΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

var ChunkPolicyMUS = chunkPolicyMUS{}

type chunkPolicyMUS struct{}

func (s chunkPolicyMUS) Marshal(v ChunkPolicy, bs []byte) (n int) {
	n = varint.Int.Marshal(v.MinLength, bs)
	n += varint.Int.Marshal(v.ChunkSize, bs[n:])
	n += varint.Int.Marshal(v.MaxLength, bs[n:])
	return n + ord.String.Marshal(v.Delimiter, bs[n:])
}

func (s chunkPolicyMUS) Unmarshal(bs []byte) (v ChunkPolicy, n int, err error) {
	v.MinLength, n, err = varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.ChunkSize, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.MaxLength, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Delimiter, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s chunkPolicyMUS) Size(v ChunkPolicy) (size int) {
	size = varint.Int.Size(v.MinLength)
	size += varint.Int.Size(v.ChunkSize)
	size += varint.Int.Size(v.MaxLength)
	return size + ord.String.Size(v.Delimiter)
}

func (s chunkPolicyMUS) Skip(bs []byte) (n int, err error) {
	n, err = varint.Int.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	return
}

var QueueItemMUS = queueItemMUS{}

type queueItemMUS struct{}

func (s queueItemMUS) Marshal(v QueueItem, bs []byte) (n int) {
	n = IndexKeyMUS.Marshal(v.Key, bs)
	n += ord.String.Marshal(v.Source, bs[n:])
	n += ChunkPolicyMUS.Marshal(v.Policy, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.EnqueuedAt, bs[n:])
}

func (s queueItemMUS) Unmarshal(bs []byte) (v QueueItem, n int, err error) {
	v.Key, n, err = IndexKeyMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Source, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Policy, n1, err = ChunkPolicyMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.EnqueuedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s queueItemMUS) Size(v QueueItem) (size int) {
	size = IndexKeyMUS.Size(v.Key)
	size += ord.String.Size(v.Source)
	size += ChunkPolicyMUS.Size(v.Policy)
	return size + raw.TimeUnixMicro.Size(v.EnqueuedAt)
}

func (s queueItemMUS) Skip(bs []byte) (n int, err error) {
	n, err = IndexKeyMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ChunkPolicyMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

var HistoryEntryMUS = historyEntryMUS{}

type historyEntryMUS struct{}

func (s historyEntryMUS) Marshal(v HistoryEntry, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += raw.TimeUnixMicro.Marshal(v.Created, bs[n:])
	n += ord.String.Marshal(v.UserID, bs[n:])
	n += ord.String.Marshal(v.Query, bs[n:])
	return n + ord.String.Marshal(v.Response, bs[n:])
}

func (s historyEntryMUS) Unmarshal(bs []byte) (v HistoryEntry, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Created, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UserID, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Query, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Response, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s historyEntryMUS) Size(v HistoryEntry) (size int) {
	size = IDMUS.Size(v.Id)
	size += raw.TimeUnixMicro.Size(v.Created)
	size += ord.String.Size(v.UserID)
	size += ord.String.Size(v.Query)
	return size + ord.String.Size(v.Response)
}

func (s historyEntryMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	return
}
