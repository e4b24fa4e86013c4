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
	"io"
	"runtime"
	"time"

	"github.com/0xsoniclabs/statestore/database/memdb"
	"github.com/0xsoniclabs/statestore/database/merkle"
	"github.com/urfave/cli/v2"
)

var Verify = cli.Command{
	Action: addPerformanceDiagnoses(verify),
	Name:   "verify",
	Usage:  "generates blocks and verifies the proofs of every key of every version",
	Flags: []cli.Flag{
		&blocksFlag,
		&batchSizeFlag,
		&seedFlag,
		&workersFlag,
		&cpuProfileFlag,
	},
}

var workersFlag = cli.IntFlag{
	Name:  "workers",
	Usage: "the number of goroutines creating and checking proofs",
	Value: runtime.NumCPU(),
}

func verify(context *cli.Context) error {
	work, err := workloadFrom(context)
	if err != nil {
		return err
	}
	db, err := memdb.NewMemDb(memdb.Parameters{})
	if err != nil {
		return err
	}
	if err := work.populate(db); err != nil {
		return err
	}

	observer := &verificationObserver{out: context.App.Writer}
	latest, _ := db.LatestVersion()
	for version := range latest + 1 {
		err := merkle.VerifyVersion(context.Context, db, version, context.Int(workersFlag.Name), observer)
		if err != nil {
			return fmt.Errorf("verification of version %d failed: %w", version, err)
		}
	}
	fmt.Fprintf(context.App.Writer, "All checks passed!\n")
	return nil
}

type verificationObserver struct {
	out   io.Writer
	start time.Time
}

func (o *verificationObserver) StartVerification() {
	o.start = time.Now()
}

func (o *verificationObserver) Progress(msg string) {
	now := time.Now()
	t := uint64(now.Sub(o.start).Seconds())
	fmt.Fprintf(o.out, "[t=%4d:%02d] - %s\n", t/60, t%60, msg)
}

func (o *verificationObserver) EndVerification(res error) {
	if res == nil {
		o.Progress("Verification successful")
	}
}
