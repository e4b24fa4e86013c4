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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/0xsoniclabs/statestore/database"
	"github.com/0xsoniclabs/statestore/database/memdb"
	"github.com/0xsoniclabs/statestore/database/storage"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"statetool", "--verbosity", "0"}, args...))
	return out.String(), err
}

func TestBench_ReportsThroughput(t *testing.T) {
	out, err := run(t, "bench", "--blocks", "5", "--batch-size", "20")
	require.NoError(t, err)
	require.Contains(t, out, "blocks: 5")
	require.Contains(t, out, "throughput")
}

func TestBench_RejectsInvalidWorkloads(t *testing.T) {
	_, err := run(t, "bench", "--blocks", "0")
	require.Error(t, err)
	_, err = run(t, "bench", "--batch-size", "-1")
	require.Error(t, err)
}

func TestBench_WritesCpuProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cpu.prof")
	_, err := run(t, "bench", "--blocks", "2", "--batch-size", "10", "--cpuprofile", path)
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.NotZero(t, info.Size())
}

func TestVerify_PassesForGeneratedBlocks(t *testing.T) {
	out, err := run(t, "verify", "--blocks", "4", "--batch-size", "30", "--workers", "2")
	require.NoError(t, err)
	require.Contains(t, out, "All checks passed!")
}

func TestExport_ProducesImportableFile(t *testing.T) {
	require := require.New(t)
	path := filepath.Join(t.TempDir(), "state.export")
	out, err := run(t, "export", "--blocks", "3", "--batch-size", "25", "--seed", "7", "--out", path)
	require.NoError(err)
	require.Contains(out, "exported version 2")

	file, err := os.Open(path)
	require.NoError(err)
	defer file.Close()

	db, err := memdb.NewMemDb(memdb.Parameters{})
	require.NoError(err)
	_, root, err := db.Import(context.Background(), file)
	require.NoError(err)

	reference, err := memdb.NewMemDb(memdb.Parameters{})
	require.NoError(err)
	require.NoError(workload{blocks: 3, batchSize: 25, seed: 7}.populate(reference))
	latest, _ := reference.LatestVersion()
	want, err := reference.RootHash(database.At(latest))
	require.NoError(err)
	require.Equal(want, root)
}

func TestWorkload_IsDeterministic(t *testing.T) {
	collect := func() []storage.Batch {
		var res []storage.Batch
		err := workload{blocks: 3, batchSize: 10, seed: 42}.generate(func(_ int, batch storage.Batch) error {
			res = append(res, batch)
			return nil
		})
		require.NoError(t, err)
		return res
	}
	require.Equal(t, collect(), collect())
}
