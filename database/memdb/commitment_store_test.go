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
	"testing"

	"github.com/0xsoniclabs/statestore/common"
	"github.com/0xsoniclabs/statestore/database/storage"
	"github.com/stretchr/testify/require"
)

func TestCommitmentStore_ApplyUpsertsAndRemoves(t *testing.T) {
	require := require.New(t)
	store := newCommitmentStore(1024)

	require.NoError(store.apply(storage.NewBatch().
		Insert([]byte("a"), []byte("1")).
		Insert([]byte("b"), []byte("2"))))
	require.NoError(store.apply(storage.NewBatch().
		Insert([]byte("a"), []byte("3")).
		Delete([]byte("b")).
		Delete([]byte("never-existed"))))

	value, found := store.get([]byte("a"))
	require.True(found)
	require.Equal([]byte("3"), value)
	_, found = store.get([]byte("b"))
	require.False(found)
	require.Equal(1, store.len())
}

func TestCommitmentStore_CollectHonorsBoundsAndOrder(t *testing.T) {
	require := require.New(t)
	store := newCommitmentStore(1024)
	for _, key := range []string{"a", "b", "c", "d"} {
		require.NoError(store.put([]byte(key), []byte(key)))
	}

	asc, err := store.collect([]byte("b"), []byte("d"), common.Ascending)
	require.NoError(err)
	require.Equal([]string{"b", "c"}, keys(asc))

	desc, err := store.collect(nil, []byte("d"), common.Descending)
	require.NoError(err)
	require.Equal([]string{"c", "b", "a"}, keys(desc))
}

func TestCommitmentStore_ResultsDoNotAliasStore(t *testing.T) {
	store := newCommitmentStore(1024)
	require.NoError(t, store.put([]byte("a"), []byte("1")))
	value, _ := store.get([]byte("a"))
	value[0] = 'x'
	got, _ := store.get([]byte("a"))
	require.Equal(t, []byte("1"), got)
}
