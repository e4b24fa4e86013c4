// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.
package main

import (
	"encoding/binary"
	"fmt"
	"math/rand"
	"time"

	"github.com/0xsoniclabs/statestore/database/memdb"
	"github.com/0xsoniclabs/statestore/database/storage"
	"github.com/c2h5oh/datasize"
	"github.com/ethereum/go-ethereum/log"
	"github.com/pbnjay/memory"
	"github.com/urfave/cli/v2"
)

// workload describes a deterministic sequence of blocks, each updating a
// batch of keys. Keys are drawn from a pool growing with the number of
// blocks, so later blocks update and delete earlier keys.
type workload struct {
	blocks    int
	batchSize int
	seed      int64
}

func workloadFrom(context *cli.Context) (workload, error) {
	res := workload{
		blocks:    context.Int(blocksFlag.Name),
		batchSize: context.Int(batchSizeFlag.Name),
		seed:      context.Int64(seedFlag.Name),
	}
	if res.blocks <= 0 {
		return res, fmt.Errorf("number of blocks must be positive, got %d", res.blocks)
	}
	if res.batchSize < 0 {
		return res, fmt.Errorf("batch size must not be negative, got %d", res.batchSize)
	}
	return res, nil
}

// generate produces the batches of the workload and passes them to the given
// consumer. Generation stops at the first error of the consumer.
func (w workload) generate(consume func(block int, batch storage.Batch) error) error {
	random := rand.New(rand.NewSource(w.seed))
	for block := range w.blocks {
		pool := max(int64(block+1)*int64(w.batchSize), 1)
		batch := storage.NewBatch()
		for range w.batchSize {
			key := binary.BigEndian.AppendUint64([]byte("key-"), uint64(random.Int63n(pool)))
			if random.Intn(10) == 0 {
				batch.Delete(key)
				continue
			}
			value := make([]byte, 8+random.Intn(24))
			random.Read(value)
			batch.Insert(key, value)
		}
		if err := consume(block, batch); err != nil {
			return err
		}
	}
	return nil
}

// populate runs the workload on a fresh database.
func (w workload) populate(db *memdb.MemDb) error {
	start := time.Now()
	return w.generate(func(block int, batch storage.Batch) error {
		version, root, err := db.FlushAndCommit(batch)
		if err != nil {
			return fmt.Errorf("failed to apply block %d: %w", block, err)
		}
		if (block+1)%100 == 0 {
			log.Info("Applied blocks", "blocks", block+1, "version", version, "root", root, "elapsed", time.Since(start))
		}
		return nil
	})
}

// reportMemory logs the memory usage of the given database relative to the
// memory available on the system.
func reportMemory(db *memdb.MemDb) {
	footprint := db.GetMemoryFootprint()
	total := memory.TotalMemory()
	used := uint64(footprint.Total())
	share := 0.0
	if total > 0 {
		share = 100 * float64(used) / float64(total)
	}
	log.Info("Memory usage",
		"database", datasize.ByteSize(used).HumanReadable(),
		"system", datasize.ByteSize(total).HumanReadable(),
		"share", fmt.Sprintf("%.2f%%", share),
	)
	log.Debug("Memory breakdown", "footprint", footprint.String())
}
