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
	"iter"

	"github.com/0xsoniclabs/statestore/common"
	"github.com/0xsoniclabs/statestore/database/storage"
)

// commitmentView is a read-only view on the committed content of the
// commitment store. It always reflects the latest commit.
type commitmentView struct {
	db *MemDb
}

func (v commitmentView) Read(key []byte) (value []byte, found bool) {
	v.db.read(func() {
		value, found = v.db.commitment.get(key)
	})
	return value, found
}

func (v commitmentView) Scan(min, max []byte, order common.Order) iter.Seq[storage.Record] {
	return func(yield func(storage.Record) bool) {
		var records []storage.Record
		var err error
		v.db.read(func() {
			records, err = v.db.commitment.collect(min, max, order)
		})
		if err != nil {
			panic(err)
		}
		for _, record := range records {
			if !yield(record) {
				return
			}
		}
	}
}

// storageView is a read-only view on the state storage pinned to a version.
type storageView struct {
	db      *MemDb
	version uint64
}

func (v storageView) Read(key []byte) (value []byte, found bool) {
	v.db.read(func() {
		value, found = v.db.history.Get(key, v.version)
	})
	return bytes.Clone(value), found
}

func (v storageView) Scan(min, max []byte, order common.Order) iter.Seq[storage.Record] {
	return func(yield func(storage.Record) bool) {
		var records []storage.Record
		v.db.read(func() {
			for record := range v.db.history.Range(min, max, v.version, order) {
				records = append(records, storage.Record{
					Key:   record.Key,
					Value: bytes.Clone(record.Value),
				})
			}
		})
		for _, record := range records {
			if !yield(record) {
				return
			}
		}
	}
}
