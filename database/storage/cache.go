// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package storage

import (
	"bytes"
	"iter"
	"slices"

	"github.com/0xsoniclabs/statestore/common"
	"github.com/google/btree"
)

// CacheStore is a write buffer placed in front of a read-only storage. Writes
// and removals are recorded in an ordered set of pending operations; reads
// consult the pending operations first and fall through to the underlying
// storage. The accumulated changes can be extracted as a Batch.
//
// A CacheStore is not safe for concurrent use.
type CacheStore struct {
	base    Storage
	pending *btree.BTreeG[cacheItem]
}

type cacheItem struct {
	key []byte
	op  Op
}

func lessCacheItem(a, b cacheItem) bool {
	return bytes.Compare(a.key, b.key) < 0
}

var _ WritableStorage = (*CacheStore)(nil)

// NewCacheStore creates an empty cache on top of the given storage.
func NewCacheStore(base Storage) *CacheStore {
	return &CacheStore{
		base:    base,
		pending: btree.NewG(32, lessCacheItem),
	}
}

func (c *CacheStore) Read(key []byte) ([]byte, bool) {
	if item, found := c.pending.Get(cacheItem{key: key}); found {
		return item.op.Value()
	}
	return c.base.Read(key)
}

func (c *CacheStore) Write(key, value []byte) {
	c.pending.ReplaceOrInsert(cacheItem{
		key: bytes.Clone(key),
		op:  Insert(bytes.Clone(value)),
	})
}

func (c *CacheStore) Remove(key []byte) {
	c.pending.ReplaceOrInsert(cacheItem{
		key: bytes.Clone(key),
		op:  Delete(),
	})
}

// Scan merges the pending operations with the content of the underlying
// storage. Pending inserts shadow base values, pending deletes hide them.
func (c *CacheStore) Scan(min, max []byte, order common.Order) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		records := c.merge(min, max)
		if order == common.Descending {
			slices.Reverse(records)
		}
		for _, record := range records {
			if !yield(record) {
				return
			}
		}
	}
}

func (c *CacheStore) merge(min, max []byte) []Record {
	var pending []cacheItem
	visit := func(item cacheItem) bool {
		if max != nil && bytes.Compare(item.key, max) >= 0 {
			return false
		}
		pending = append(pending, item)
		return true
	}
	if min == nil {
		c.pending.Ascend(visit)
	} else {
		c.pending.AscendGreaterOrEqual(cacheItem{key: min}, visit)
	}

	res := make([]Record, 0, len(pending))
	i := 0
	emitPendingBefore := func(key []byte) {
		for ; i < len(pending); i++ {
			if key != nil && bytes.Compare(pending[i].key, key) >= 0 {
				return
			}
			if value, ok := pending[i].op.Value(); ok {
				res = append(res, Record{Key: pending[i].key, Value: value})
			}
		}
	}
	for record := range c.base.Scan(min, max, common.Ascending) {
		emitPendingBefore(record.Key)
		if i < len(pending) && bytes.Equal(pending[i].key, record.Key) {
			continue // < shadowed by a pending operation, emitted in the next round
		}
		res = append(res, record)
	}
	emitPendingBefore(nil)
	return res
}

// Len returns the number of pending operations.
func (c *CacheStore) Len() int {
	return c.pending.Len()
}

// Disassemble returns the underlying storage and the pending operations as a
// batch. The cache must not be used afterwards.
func (c *CacheStore) Disassemble() (Storage, Batch) {
	batch := make(Batch, c.pending.Len())
	c.pending.Ascend(func(item cacheItem) bool {
		batch[string(item.key)] = item.op
		return true
	})
	base := c.base
	c.base = nil
	c.pending = nil
	return base, batch
}
