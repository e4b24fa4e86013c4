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
	"os"
	"runtime/pprof"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
)

// Run using
//  go run ./cmd/statetool <command> <flags>

var (
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "log level: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=trace",
		Value: 3,
	}
	cpuProfileFlag = cli.StringFlag{
		Name:  "cpuprofile",
		Usage: "the file to write a CPU profile to",
	}
	blocksFlag = cli.IntFlag{
		Name:  "blocks",
		Usage: "the number of blocks to generate",
		Value: 100,
	}
	batchSizeFlag = cli.IntFlag{
		Name:  "batch-size",
		Usage: "the number of updates per block",
		Value: 1000,
	}
	seedFlag = cli.Int64Flag{
		Name:  "seed",
		Usage: "the seed of the generated workload",
		Value: 1,
	}
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "statetool",
		Usage: "state store toolbox",
		Flags: []cli.Flag{
			&verbosityFlag,
		},
		Before: func(context *cli.Context) error {
			level := log.FromLegacyLevel(context.Int(verbosityFlag.Name))
			log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, level, false)))
			return nil
		},
		Commands: []*cli.Command{
			&Bench,
			&Verify,
			&Export,
		},
	}
}

// addPerformanceDiagnoses wraps the given action such that it is profiled if
// requested by the command line flags.
func addPerformanceDiagnoses(action cli.ActionFunc) cli.ActionFunc {
	return func(context *cli.Context) error {
		path := context.String(cpuProfileFlag.Name)
		if path == "" {
			return action(context)
		}
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer file.Close()
		if err := pprof.StartCPUProfile(file); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
		return action(context)
	}
}
