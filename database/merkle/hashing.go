// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package merkle

import (
	"github.com/0xsoniclabs/statestore/common"
	"github.com/0xsoniclabs/statestore/database/storage"
	"github.com/0xsoniclabs/tracy"
	"github.com/ethereum/go-ethereum/trie"
)

// hashChunkSize is the number of batch entries hashed by a single task.
const hashChunkSize = 64

// update is a batch entry translated into the trie's key space.
type update struct {
	key     common.Hash
	value   common.Hash
	deleted bool
}

// hashBatch computes the trie updates of the given batch, ordered by raw key.
// Hashing is distributed over multiple tasks; once all of them are done, the
// given consumer is run with the complete list of updates.
func hashBatch(batch storage.Batch, consume func([]update)) {
	keys := batch.SortedKeys()
	updates := make([]update, len(keys))

	numChunks := (len(keys) + hashChunkSize - 1) / hashChunkSize
	consumer := newTask(func() { consume(updates) }, numChunks)

	tasks := make([]*task, 0, numChunks+1)
	for start := 0; start < len(keys); start += hashChunkSize {
		end := min(start+hashChunkSize, len(keys))
		hashing := newTask(func() {
			for i := start; i < end; i++ {
				value, insert := batch[keys[i]].Value()
				updates[i].key = HashKey([]byte(keys[i]))
				updates[i].deleted = !insert
				if insert {
					updates[i].value = HashValue(value)
				}
			}
		}, 0)
		hashing.parentTask = consumer
		tasks = append(tasks, hashing)
	}
	runTasks(append(tasks, consumer))
}

// applyBatch applies all operations of the batch to the given trie.
func applyBatch(tr *trie.Trie, batch storage.Batch) error {
	var err error
	hashBatch(batch, func(updates []update) {
		zone := tracy.ZoneBegin("merkle::update")
		defer zone.End()
		for _, u := range updates {
			if u.deleted {
				err = tr.Delete(u.key[:])
			} else {
				err = tr.Update(u.key[:], u.value[:])
			}
			if err != nil {
				return
			}
		}
	})
	return err
}
