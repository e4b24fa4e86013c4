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
	"bytes"
	"context"
	"fmt"
	"slices"
	"testing"

	"github.com/0xsoniclabs/statestore/common"
	"github.com/0xsoniclabs/statestore/database"
	"github.com/0xsoniclabs/statestore/database/storage"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/golang/snappy"
	"github.com/stretchr/testify/require"
)

func TestExport_RoundTripReproducesState(t *testing.T) {
	require := require.New(t)
	source := newTestDb(t)
	for i := range 3 {
		batch := storage.NewBatch()
		for j := range 30 {
			batch.Insert([]byte(fmt.Sprintf("key-%d-%d", i, j)), []byte(fmt.Sprintf("value-%d", j)))
		}
		batch.Insert([]byte("empty"), []byte{})
		if i > 0 {
			batch.Delete([]byte(fmt.Sprintf("key-%d-1", i-1)))
		}
		commit(t, source, batch)
	}

	for version := range uint64(3) {
		var buffer bytes.Buffer
		exported, err := source.Export(context.Background(), &buffer, database.At(version))
		require.NoError(err)
		want, err := source.RootHash(database.At(version))
		require.NoError(err)
		require.Equal(want, exported)

		target := newTestDb(t)
		imported, root, err := target.Import(context.Background(), &buffer)
		require.NoError(err)
		require.Equal(uint64(0), imported)
		require.Equal(exported, root)

		require.Equal(
			slices.Collect(source.StateStorage(database.At(version)).Scan(nil, nil, common.Ascending)),
			slices.Collect(target.StateStorage(database.Latest()).Scan(nil, nil, common.Ascending)),
		)
	}
}

func TestExport_EmptyDatabaseCanBeExported(t *testing.T) {
	require := require.New(t)
	var buffer bytes.Buffer
	root, err := newTestDb(t).Export(context.Background(), &buffer, database.Latest())
	require.NoError(err)
	require.Nil(root)

	target := newTestDb(t)
	version, root, err := target.Import(context.Background(), &buffer)
	require.NoError(err)
	require.Equal(uint64(0), version)
	require.Nil(root)
}

func TestImport_NonEmptyDatabaseIsRejected(t *testing.T) {
	require := require.New(t)
	source := newTestDb(t)
	commit(t, source, storage.NewBatch().Insert([]byte("a"), []byte("1")))
	var buffer bytes.Buffer
	_, err := source.Export(context.Background(), &buffer, database.Latest())
	require.NoError(err)

	target := newTestDb(t)
	commit(t, target, storage.NewBatch().Insert([]byte("b"), []byte("2")))
	_, _, err = target.Import(context.Background(), &buffer)
	require.ErrorIs(err, ErrNotEmpty)

	latest, _ := target.LatestVersion()
	require.Equal(uint64(0), latest, "nothing must be committed")
	_, found := read(target.StateStorage(database.Latest()), "a")
	require.False(found)
}

func TestImport_MismatchingRootIsRejected(t *testing.T) {
	require := require.New(t)

	var buffer bytes.Buffer
	writer := snappy.NewBufferedWriter(&buffer)
	require.NoError(rlp.Encode(writer, &exportHeader{Version: 3, Root: common.Hash{1, 2, 3}}))
	require.NoError(rlp.Encode(writer, &exportRecord{Key: []byte("a"), Value: []byte("1")}))
	require.NoError(writer.Close())

	target := newTestDb(t)
	_, _, err := target.Import(context.Background(), &buffer)
	require.ErrorIs(err, ErrRootMismatch)

	_, exists := target.LatestVersion()
	require.False(exists, "nothing must be committed")
	require.ErrorIs(target.Commit(), ErrChangeSetNotSet, "nothing must remain staged")
}

func TestImport_CorruptedInputIsRejected(t *testing.T) {
	_, _, err := newTestDb(t).Import(context.Background(), bytes.NewReader([]byte("not an export")))
	require.Error(t, err)
}

func TestExport_CancelledContextStopsExport(t *testing.T) {
	db := newTestDb(t)
	commit(t, db, storage.NewBatch().Insert([]byte("a"), []byte("1")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buffer bytes.Buffer
	_, err := db.Export(ctx, &buffer, database.Latest())
	require.ErrorIs(t, err, context.Canceled)
}

func TestExport_PoisonedDatabaseCanNotBeExported(t *testing.T) {
	db := newTestDb(t)
	db.poisoned.Store(true)
	var buffer bytes.Buffer
	_, err := db.Export(context.Background(), &buffer, database.Latest())
	require.ErrorIs(t, err, ErrPoisoned)
}
