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
	"fmt"
	"time"

	"github.com/0xsoniclabs/statestore/database/memdb"
	"github.com/0xsoniclabs/statestore/database/storage"
	"github.com/urfave/cli/v2"
)

var Bench = cli.Command{
	Action: addPerformanceDiagnoses(bench),
	Name:   "bench",
	Usage:  "measures the throughput of staging and committing generated blocks",
	Flags: []cli.Flag{
		&blocksFlag,
		&batchSizeFlag,
		&seedFlag,
		&cpuProfileFlag,
	},
}

func bench(context *cli.Context) error {
	work, err := workloadFrom(context)
	if err != nil {
		return err
	}
	db, err := memdb.NewMemDb(memdb.Parameters{})
	if err != nil {
		return err
	}

	var flushTime, commitTime time.Duration
	updates := 0
	err = work.generate(func(block int, batch storage.Batch) error {
		start := time.Now()
		if _, _, err := db.FlushButNotCommit(batch); err != nil {
			return fmt.Errorf("failed to stage block %d: %w", block, err)
		}
		flushTime += time.Since(start)

		start = time.Now()
		if err := db.Commit(); err != nil {
			return fmt.Errorf("failed to commit block %d: %w", block, err)
		}
		commitTime += time.Since(start)
		updates += batch.Len()
		return nil
	})
	if err != nil {
		return err
	}

	total := flushTime + commitTime
	fmt.Fprintf(context.App.Writer, "blocks: %d, updates: %d\n", work.blocks, updates)
	fmt.Fprintf(context.App.Writer, "flush: %v, commit: %v\n", flushTime, commitTime)
	if total > 0 {
		fmt.Fprintf(context.App.Writer, "throughput: %.1f updates/s, %.1f blocks/s\n",
			float64(updates)/total.Seconds(),
			float64(work.blocks)/total.Seconds(),
		)
	}
	reportMemory(db)
	return nil
}
