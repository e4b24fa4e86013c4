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
	"slices"
	"testing"

	"github.com/0xsoniclabs/statestore/common"
	"github.com/stretchr/testify/require"
)

// sliceStorage is a read-only storage over a sorted list of records.
type sliceStorage []Record

func (s sliceStorage) Read(key []byte) ([]byte, bool) {
	for _, record := range s {
		if string(record.Key) == string(key) {
			return record.Value, true
		}
	}
	return nil, false
}

func (s sliceStorage) Scan(min, max []byte, order common.Order) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		records := slices.Clone(s)
		if order == common.Descending {
			slices.Reverse(records)
		}
		for _, record := range records {
			if InRange(record.Key, min, max) && !yield(record) {
				return
			}
		}
	}
}

func newBase() sliceStorage {
	return sliceStorage{
		{Key: []byte("a"), Value: []byte("1")},
		{Key: []byte("c"), Value: []byte("3")},
		{Key: []byte("e"), Value: []byte("5")},
	}
}

func keysOf(records iter.Seq[Record]) []string {
	var res []string
	for record := range records {
		res = append(res, string(record.Key)+"="+string(record.Value))
	}
	return res
}

func TestCacheStore_ReadsFallThroughToBase(t *testing.T) {
	require := require.New(t)
	cache := NewCacheStore(newBase())

	value, found := cache.Read([]byte("a"))
	require.True(found)
	require.Equal([]byte("1"), value)

	_, found = cache.Read([]byte("b"))
	require.False(found)
}

func TestCacheStore_PendingWritesShadowBase(t *testing.T) {
	require := require.New(t)
	cache := NewCacheStore(newBase())

	cache.Write([]byte("a"), []byte("10"))
	cache.Write([]byte("b"), []byte("2"))
	cache.Remove([]byte("c"))

	value, found := cache.Read([]byte("a"))
	require.True(found)
	require.Equal([]byte("10"), value)

	value, found = cache.Read([]byte("b"))
	require.True(found)
	require.Equal([]byte("2"), value)

	_, found = cache.Read([]byte("c"))
	require.False(found)
	require.Equal(3, cache.Len())
}

func TestCacheStore_ScanMergesPendingAndBase(t *testing.T) {
	require := require.New(t)
	cache := NewCacheStore(newBase())

	cache.Write([]byte("a"), []byte("10"))
	cache.Write([]byte("b"), []byte("2"))
	cache.Remove([]byte("c"))
	cache.Write([]byte("f"), []byte("6"))

	require.Equal(
		[]string{"a=10", "b=2", "e=5", "f=6"},
		keysOf(cache.Scan(nil, nil, common.Ascending)),
	)
	require.Equal(
		[]string{"f=6", "e=5", "b=2", "a=10"},
		keysOf(cache.Scan(nil, nil, common.Descending)),
	)
	require.Equal(
		[]string{"b=2", "e=5"},
		keysOf(cache.Scan([]byte("b"), []byte("f"), common.Ascending)),
	)
}

func TestCacheStore_ScanCanBeStoppedEarly(t *testing.T) {
	cache := NewCacheStore(newBase())
	cache.Write([]byte("b"), []byte("2"))

	var seen []string
	for record := range cache.Scan(nil, nil, common.Ascending) {
		seen = append(seen, string(record.Key))
		if len(seen) == 2 {
			break
		}
	}
	require.Equal(t, []string{"a", "b"}, seen)
}

func TestCacheStore_WritesDoNotAliasInputs(t *testing.T) {
	cache := NewCacheStore(newBase())
	key := []byte("k")
	value := []byte("v")
	cache.Write(key, value)
	key[0] = 'x'
	value[0] = 'x'

	got, found := cache.Read([]byte("k"))
	require.True(t, found)
	require.Equal(t, []byte("v"), got)
}

func TestCacheStore_DisassembleProducesPendingOperations(t *testing.T) {
	require := require.New(t)
	base := newBase()
	cache := NewCacheStore(base)

	cache.Write([]byte("a"), []byte("10"))
	cache.Remove([]byte("c"))
	cache.Remove([]byte("z"))

	gotBase, batch := cache.Disassemble()
	require.Equal(Storage(base), gotBase)
	require.Equal(3, batch.Len())

	value, ok := batch["a"].Value()
	require.True(ok)
	require.Equal([]byte("10"), value)
	require.False(batch["c"].IsInsert())
	require.False(batch["z"].IsInsert())
}
