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
	"iter"

	"github.com/0xsoniclabs/statestore/common"
)

// Storage is the read capability of a key/value store.
type Storage interface {
	// Read returns the value stored for the given key. The second result is
	// false if there is no such value.
	Read(key []byte) ([]byte, bool)

	// Scan produces all records with keys in [min, max) in the given order. A
	// nil bound is unbounded. The resulting sequence may be iterated multiple
	// times; each iteration observes the content at the time it is started.
	Scan(min, max []byte, order common.Order) iter.Seq[Record]
}

// WritableStorage is the read/write capability of a key/value store. Read-only
// views of committed state do not implement it.
type WritableStorage interface {
	Storage
	Write(key, value []byte)
	Remove(key []byte)
}

// InRange checks whether key is within [min, max), where nil bounds are
// unbounded.
func InRange(key, min, max []byte) bool {
	if min != nil && string(key) < string(min) {
		return false
	}
	if max != nil && string(key) >= string(max) {
		return false
	}
	return true
}
