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
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/0xsoniclabs/statestore/database"
	"github.com/0xsoniclabs/statestore/database/memdb"
	"github.com/urfave/cli/v2"
)

var Export = cli.Command{
	Action: addPerformanceDiagnoses(export),
	Name:   "export",
	Usage:  "generates blocks and exports the state of the latest version",
	Flags: []cli.Flag{
		&blocksFlag,
		&batchSizeFlag,
		&seedFlag,
		&outFlag,
		&cpuProfileFlag,
	},
}

var outFlag = cli.StringFlag{
	Name:     "out",
	Usage:    "the file to write the export to",
	Required: true,
}

func export(context *cli.Context) (err error) {
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

	path := context.String(outFlag.Name)
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()
	out := bufio.NewWriter(file)
	root, err := db.Export(context.Context, out, database.Latest())
	if err != nil {
		return err
	}
	if err := out.Flush(); err != nil {
		return err
	}
	latest, _ := db.LatestVersion()
	fmt.Fprintf(context.App.Writer, "exported version %d with root %v to %s\n", latest, root, path)
	return nil
}
