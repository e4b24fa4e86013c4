// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package versioned

import (
	"iter"
	"reflect"
	"sort"
	"unsafe"

	"github.com/0xsoniclabs/statestore/common"
	"github.com/0xsoniclabs/statestore/database/storage"
	"github.com/tidwall/btree"
)

// Map is a key/value store retaining the full history of every key. Each
// write is associated with a version; lookups resolve the value visible at a
// given version. Deletions are recorded as tombstones, so they never rewrite
// the history of older versions.
//
// A Map is not safe for concurrent use with writes.
type Map struct {
	keys *btree.Map[string, *history]
}

// history is the list of entries of a single key, sorted by strictly
// increasing version.
type history struct {
	entries []entry
}

type entry struct {
	version uint64
	value   []byte
	deleted bool
}

func NewMap() *Map {
	return &Map{keys: btree.NewMap[string, *history](32)}
}

// WriteBatch records all operations of the given batch at the given version.
func (m *Map) WriteBatch(batch storage.Batch, version uint64) {
	for key, op := range batch {
		value, insert := op.Value()
		h, found := m.keys.Get(key)
		if !found {
			h = &history{}
			m.keys.Set(key, h)
		}
		h.set(entry{version: version, value: value, deleted: !insert})
	}
}

// Get returns the value of the given key visible at the given version.
func (m *Map) Get(key []byte, version uint64) ([]byte, bool) {
	h, found := m.keys.Get(string(key))
	if !found {
		return nil, false
	}
	return h.get(version)
}

// Range produces the records of all keys within [min, max) having a value at
// the given version. Nil bounds are unbounded. The sequence is evaluated
// lazily and may be iterated multiple times.
func (m *Map) Range(min, max []byte, version uint64, order common.Order) iter.Seq[storage.Record] {
	return func(yield func(storage.Record) bool) {
		visit := func(key string, h *history) bool {
			value, found := h.get(version)
			if !found {
				return true
			}
			return yield(storage.Record{Key: []byte(key), Value: value})
		}

		if order == common.Descending {
			m.descend(min, max, visit)
		} else {
			m.ascend(min, max, visit)
		}
	}
}

func (m *Map) ascend(min, max []byte, visit func(string, *history) bool) {
	bounded := func(key string, h *history) bool {
		if max != nil && key >= string(max) {
			return false
		}
		return visit(key, h)
	}
	if min == nil {
		m.keys.Scan(bounded)
	} else {
		m.keys.Ascend(string(min), bounded)
	}
}

func (m *Map) descend(min, max []byte, visit func(string, *history) bool) {
	bounded := func(key string, h *history) bool {
		if min != nil && key < string(min) {
			return false
		}
		if max != nil && key == string(max) {
			return true // < the upper bound is exclusive
		}
		return visit(key, h)
	}
	if max == nil {
		m.keys.Reverse(bounded)
	} else {
		m.keys.Descend(string(max), bounded)
	}
}

// Len returns the number of keys with a recorded history.
func (m *Map) Len() int {
	return m.keys.Len()
}

func (m *Map) GetMemoryFootprint() *common.MemoryFootprint {
	var keys, values uintptr
	m.keys.Scan(func(key string, h *history) bool {
		keys += uintptr(len(key)) + unsafe.Sizeof(key) + unsafe.Sizeof(*h)
		for _, e := range h.entries {
			values += uintptr(len(e.value)) + reflect.TypeFor[entry]().Size()
		}
		return true
	})
	res := common.NewMemoryFootprint(unsafe.Sizeof(*m))
	res.AddChild("keys", common.NewMemoryFootprint(keys))
	res.AddChild("history", common.NewMemoryFootprint(values))
	return res
}

func (h *history) get(version uint64) ([]byte, bool) {
	// index of the first entry newer than the requested version
	pos := sort.Search(len(h.entries), func(i int) bool {
		return h.entries[i].version > version
	})
	if pos == 0 {
		return nil, false
	}
	e := h.entries[pos-1]
	if e.deleted {
		return nil, false
	}
	return e.value, true
}

func (h *history) set(e entry) {
	pos := sort.Search(len(h.entries), func(i int) bool {
		return h.entries[i].version >= e.version
	})
	if pos < len(h.entries) && h.entries[pos].version == e.version {
		h.entries[pos] = e
		return
	}
	h.entries = append(h.entries, entry{})
	copy(h.entries[pos+1:], h.entries[pos:])
	h.entries[pos] = e
}
