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
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/0xsoniclabs/statestore/common"
	"github.com/0xsoniclabs/statestore/database"
	"github.com/0xsoniclabs/statestore/database/storage"
	"github.com/0xsoniclabs/tracy"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/golang/snappy"
)

// The export format is a snappy compressed stream of RLP encoded items. It
// starts with an exportHeader followed by one exportRecord per key of the
// exported version in ascending key order.

type exportHeader struct {
	Version uint64
	Root    common.Hash // < zero for an empty state
}

type exportRecord struct {
	Key   []byte
	Value []byte
}

// Export writes the state storage content of the given version to out. The
// result is the root hash of the exported version.
func (db *MemDb) Export(ctx context.Context, out io.Writer, version database.Version) (*common.Hash, error) {
	zone := tracy.ZoneBegin("memdb::export")
	defer zone.End()

	at := database.At(db.resolve(version))
	number, _ := at.Get()
	root, err := db.RootHash(at)
	if err != nil {
		return nil, err
	}

	header := exportHeader{Version: number}
	if root != nil {
		header.Root = *root
	}

	writer := snappy.NewBufferedWriter(out)
	if err := rlp.Encode(writer, &header); err != nil {
		return nil, fmt.Errorf("failed to write export header: %w", err)
	}
	count := 0
	for record := range db.StateStorage(at).Scan(nil, nil, common.Ascending) {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("export interrupted: %w", err)
		}
		if err := rlp.Encode(writer, &exportRecord{Key: record.Key, Value: record.Value}); err != nil {
			return nil, fmt.Errorf("failed to write record: %w", err)
		}
		count++
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush export: %w", err)
	}
	log.Info("Exported state", "version", number, "root", rootString(root), "keys", count)
	return root, nil
}

// Import reads an export produced by Export into an empty database and
// commits its content as version 0. The import fails with ErrNotEmpty if
// anything was committed before, and with ErrRootMismatch if the resulting
// root hash differs from the exported one. Nothing is committed on failure.
func (db *MemDb) Import(ctx context.Context, in io.Reader) (uint64, *common.Hash, error) {
	zone := tracy.ZoneBegin("memdb::import")
	defer zone.End()

	if _, exists := db.LatestVersion(); exists {
		return 0, nil, ErrNotEmpty
	}

	stream := rlp.NewStream(snappy.NewReader(in), 0)
	var header exportHeader
	if err := stream.Decode(&header); err != nil {
		return 0, nil, fmt.Errorf("failed to read export header: %w", err)
	}

	batch := storage.NewBatch()
	for {
		if err := ctx.Err(); err != nil {
			return 0, nil, fmt.Errorf("import interrupted: %w", err)
		}
		var record exportRecord
		if err := stream.Decode(&record); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return 0, nil, fmt.Errorf("failed to read record: %w", err)
		}
		batch.Insert(record.Key, record.Value)
	}

	version, root, err := db.FlushButNotCommit(batch)
	if err != nil {
		return 0, nil, err
	}
	var got common.Hash
	if root != nil {
		got = *root
	}
	if got != header.Root {
		if err := db.discard(version); err != nil {
			return 0, nil, err
		}
		return 0, nil, fmt.Errorf("%w: exported %x, imported %x", ErrRootMismatch, header.Root, got)
	}
	if err := db.Commit(); err != nil {
		return 0, nil, err
	}
	log.Info("Imported state", "exported", header.Version, "version", version, "root", rootString(root), "keys", batch.Len())
	return version, root, nil
}
