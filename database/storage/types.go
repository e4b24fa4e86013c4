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
	"slices"

	"golang.org/x/exp/maps"
)

// Op is a single key-level operation of a batch. It either inserts a value or
// deletes the key. The zero value is a deletion.
type Op struct {
	value  []byte
	insert bool
}

// Insert creates an operation setting a key to the given value.
func Insert(value []byte) Op {
	return Op{value: value, insert: true}
}

// Delete creates an operation removing a key.
func Delete() Op {
	return Op{}
}

func (o Op) IsInsert() bool {
	return o.insert
}

// Value returns the value written by an insert operation. The second result
// is false for deletions.
func (o Op) Value() ([]byte, bool) {
	return o.value, o.insert
}

// Batch is a set of operations applied atomically. Keys are the raw key bytes
// converted to strings; each key occurs at most once.
type Batch map[string]Op

// NewBatch creates an empty batch.
func NewBatch() Batch {
	return Batch{}
}

// Insert records an insert of the given key/value pair, replacing any earlier
// operation on the same key.
func (b Batch) Insert(key, value []byte) Batch {
	b[string(key)] = Insert(bytes.Clone(value))
	return b
}

// Delete records the deletion of the given key, replacing any earlier
// operation on the same key.
func (b Batch) Delete(key []byte) Batch {
	b[string(key)] = Delete()
	return b
}

func (b Batch) Len() int {
	return len(b)
}

// Clone creates an independent copy of the batch, including its values.
func (b Batch) Clone() Batch {
	res := make(Batch, len(b))
	for k, op := range b {
		if value, insert := op.Value(); insert {
			op = Insert(bytes.Clone(value))
		}
		res[k] = op
	}
	return res
}

// SortedKeys returns the keys of the batch in ascending byte order, providing
// a deterministic iteration order.
func (b Batch) SortedKeys() []string {
	keys := maps.Keys(b)
	slices.Sort(keys)
	return keys
}

// Record is a resolved key/value pair produced by scans. It never represents
// a deleted key.
type Record struct {
	Key   []byte
	Value []byte
}
