// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.
package memdb

import (
	"unsafe"

	"github.com/0xsoniclabs/statestore/common"
	"github.com/0xsoniclabs/statestore/database/merkle"
	lru "github.com/hashicorp/golang-lru/v2"
)

// keyHasher computes the trie keys of raw keys, using a cache to avoid
// redundant hashing of frequently proven keys. It is safe for concurrent use.
type keyHasher struct {
	cache *lru.Cache[string, common.Hash]
}

func newKeyHasher(size int) (*keyHasher, error) {
	cache, err := lru.New[string, common.Hash](size)
	if err != nil {
		return nil, err
	}
	return &keyHasher{cache: cache}, nil
}

func (h *keyHasher) hash(key []byte) common.Hash {
	if hash, found := h.cache.Get(string(key)); found {
		return hash
	}
	hash := merkle.HashKey(key)
	h.cache.Add(string(key), hash)
	return hash
}

func (h *keyHasher) GetMemoryFootprint() *common.MemoryFootprint {
	var keys uintptr
	for _, key := range h.cache.Keys() {
		keys += uintptr(len(key))
	}
	entrySize := unsafe.Sizeof("") + unsafe.Sizeof(common.Hash{})
	return common.NewMemoryFootprint(unsafe.Sizeof(*h) + keys + uintptr(h.cache.Len())*entrySize)
}
