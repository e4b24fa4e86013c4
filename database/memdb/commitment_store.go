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
	"errors"
	"unsafe"

	"github.com/0xsoniclabs/statestore/common"
	"github.com/0xsoniclabs/statestore/database/storage"
	"github.com/syndtr/goleveldb/leveldb/comparer"
	"github.com/syndtr/goleveldb/leveldb/memdb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// commitmentStore is the flat key/value store holding the data the Merkle
// commitment is derived from. It is backed by LevelDB's in-memory skip list.
// Synchronization is left to the owning engine.
type commitmentStore struct {
	db *memdb.DB
}

func newCommitmentStore(capacity int) *commitmentStore {
	return &commitmentStore{db: memdb.New(comparer.DefaultComparer, capacity)}
}

func (s *commitmentStore) get(key []byte) ([]byte, bool) {
	value, err := s.db.Get(key)
	if err != nil {
		return nil, false
	}
	return bytes.Clone(value), true
}

func (s *commitmentStore) put(key, value []byte) error {
	return s.db.Put(key, value)
}

func (s *commitmentStore) delete(key []byte) error {
	err := s.db.Delete(key)
	if errors.Is(err, memdb.ErrNotFound) {
		return nil
	}
	return err
}

// apply writes all operations of the given batch to the store.
func (s *commitmentStore) apply(batch storage.Batch) error {
	for key, op := range batch {
		var err error
		if value, insert := op.Value(); insert {
			err = s.put([]byte(key), value)
		} else {
			err = s.delete([]byte(key))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// collect lists all records with keys in [min, max) in the given order.
func (s *commitmentStore) collect(min, max []byte, order common.Order) ([]storage.Record, error) {
	iter := s.db.NewIterator(&util.Range{Start: min, Limit: max})
	defer iter.Release()

	var res []storage.Record
	add := func() {
		res = append(res, storage.Record{
			Key:   bytes.Clone(iter.Key()),
			Value: bytes.Clone(iter.Value()),
		})
	}
	if order == common.Descending {
		for ok := iter.Last(); ok; ok = iter.Prev() {
			add()
		}
	} else {
		for ok := iter.First(); ok; ok = iter.Next() {
			add()
		}
	}
	return res, iter.Error()
}

func (s *commitmentStore) len() int {
	return s.db.Len()
}

func (s *commitmentStore) GetMemoryFootprint() *common.MemoryFootprint {
	return common.NewMemoryFootprint(unsafe.Sizeof(*s) + uintptr(s.db.Size()))
}
