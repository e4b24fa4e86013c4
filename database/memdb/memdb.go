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
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/0xsoniclabs/statestore/common"
	"github.com/0xsoniclabs/statestore/database"
	"github.com/0xsoniclabs/statestore/database/merkle"
	"github.com/0xsoniclabs/statestore/database/storage"
	"github.com/0xsoniclabs/statestore/database/versioned"
	"github.com/0xsoniclabs/tracy"
	"github.com/ethereum/go-ethereum/log"
)

const (
	ErrChangeSetAlreadySet = common.ConstError("a change set is already staged")
	ErrChangeSetNotSet     = common.ConstError("no change set staged")
	ErrPoisoned            = common.ConstError("database is poisoned by an earlier failure and must be recreated")
	ErrRootMismatch        = common.ConstError("root hash mismatch")
	ErrNotEmpty            = common.ConstError("database is not empty")
)

// Parameters configure a MemDb. Zero values are replaced by defaults.
type Parameters struct {
	KeyHashCacheSize   int // < number of memoized key hashes used for proofs
	CommitmentCapacity int // < initial capacity of the commitment store in bytes
}

const (
	defaultKeyHashCacheSize   = 1 << 16
	defaultCommitmentCapacity = 4 << 20
)

func (p Parameters) withDefaults() Parameters {
	if p.KeyHashCacheSize == 0 {
		p.KeyHashCacheSize = defaultKeyHashCacheSize
	}
	if p.CommitmentCapacity == 0 {
		p.CommitmentCapacity = defaultCommitmentCapacity
	}
	return p
}

// MemDb is an in-memory versioned state database. The state commitment is
// kept in a flat store backing a Merkle tree, the state storage retains the
// full history of every key.
//
// Changes are applied in two phases. FlushButNotCommit computes the resulting
// root hash without modifying any committed data and stages the changes;
// Commit applies them atomically. Readers never observe partially applied
// changes.
//
// A panic raised while the database is modified poisons the database. All
// subsequent operations fail with ErrPoisoned, reads through views panic.
type MemDb struct {
	lock     sync.RWMutex
	poisoned atomic.Bool

	latestVersion uint64
	hasVersion    bool
	commitment    *commitmentStore
	history       *versioned.Map
	changeSet     *changeSet

	committer committer
	hasher    *keyHasher
}

// changeSet is a staged, not yet committed, set of changes.
type changeSet struct {
	version         uint64
	stateCommitment storage.Batch // < delta of the commitment store
	stateStorage    storage.Batch
}

var _ database.Db[*merkle.Proof] = (*MemDb)(nil)
var _ merkle.ProvingSource = (*MemDb)(nil)

// NewMemDb creates an empty database.
func NewMemDb(params Parameters) (*MemDb, error) {
	return newMemDb(params, merkle.Tree{})
}

func newMemDb(params Parameters, committer committer) (*MemDb, error) {
	params = params.withDefaults()
	hasher, err := newKeyHasher(params.KeyHashCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create key hash cache: %w", err)
	}
	return &MemDb{
		commitment: newCommitmentStore(params.CommitmentCapacity),
		history:    versioned.NewMap(),
		committer:  committer,
		hasher:     hasher,
	}, nil
}

func (db *MemDb) StateCommitment() storage.Storage {
	return commitmentView{db: db}
}

func (db *MemDb) StateStorage(version database.Version) storage.Storage {
	db.lock.RLock()
	defer db.lock.RUnlock()
	return storageView{
		db:      db,
		version: version.Resolve(db.latestVersion, db.hasVersion),
	}
}

func (db *MemDb) LatestVersion() (uint64, bool) {
	db.lock.RLock()
	defer db.lock.RUnlock()
	return db.latestVersion, db.hasVersion
}

func (db *MemDb) RootHash(version database.Version) (*common.Hash, error) {
	if db.Poisoned() {
		return nil, ErrPoisoned
	}
	return db.committer.RootHash(db.StateCommitment(), db.resolve(version))
}

func (db *MemDb) Prove(key []byte, version database.Version) (*merkle.Proof, error) {
	if db.Poisoned() {
		return nil, ErrPoisoned
	}
	return db.committer.Prove(db.StateCommitment(), db.hasher.hash(key), db.resolve(version))
}

func (db *MemDb) FlushButNotCommit(batch storage.Batch) (uint64, *common.Hash, error) {
	zone := tracy.ZoneBegin("memdb::flush")
	defer zone.End()

	if db.Poisoned() {
		return 0, nil, ErrPoisoned
	}

	db.lock.RLock()
	staged := db.changeSet != nil
	latest, exists := db.latestVersion, db.hasVersion
	db.lock.RUnlock()
	if staged {
		return 0, nil, ErrChangeSetAlreadySet
	}

	// The staged batch must not share value buffers with the caller.
	batch = batch.Clone()

	oldVersion, newVersion := uint64(0), uint64(0)
	if exists {
		oldVersion, newVersion = latest, latest+1
	}

	// The Merkle tree reads the committed state through a view, which acquires
	// the read lock on its own. No lock may be held here.
	cache := storage.NewCacheStore(db.StateCommitment())
	root, err := db.committer.ApplyRaw(cache, oldVersion, newVersion, batch)
	if err != nil {
		return 0, nil, err
	}
	_, delta := cache.Disassemble()

	err = db.update(func() error {
		// Another flush may have staged, and even committed, its changes while
		// the root was computed.
		if db.changeSet != nil || db.latestVersion != latest || db.hasVersion != exists {
			return ErrChangeSetAlreadySet
		}
		db.changeSet = &changeSet{
			version:         newVersion,
			stateCommitment: delta,
			stateStorage:    batch,
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	log.Debug("Staged change set", "version", newVersion, "root", rootString(root), "keys", batch.Len(), "nodes", delta.Len())
	return newVersion, root, nil
}

func (db *MemDb) Commit() error {
	zone := tracy.ZoneBegin("memdb::commit")
	defer zone.End()

	var version uint64
	err := db.update(func() error {
		changes := db.changeSet
		if changes == nil {
			return ErrChangeSetNotSet
		}
		// A failure past this point leaves the stores out of sync.
		if err := db.commitment.apply(changes.stateCommitment); err != nil {
			panic(fmt.Sprintf("failed to update commitment store: %v", err))
		}
		db.history.WriteBatch(changes.stateStorage, changes.version)
		db.latestVersion, db.hasVersion = changes.version, true
		db.changeSet = nil
		version = changes.version
		return nil
	})
	if err != nil {
		return err
	}
	log.Debug("Committed change set", "version", version)
	return nil
}

// FlushAndCommit stages the given batch and commits it right away.
func (db *MemDb) FlushAndCommit(batch storage.Batch) (uint64, *common.Hash, error) {
	version, root, err := db.FlushButNotCommit(batch)
	if err != nil {
		return 0, nil, err
	}
	if err := db.Commit(); err != nil {
		return 0, nil, err
	}
	return version, root, nil
}

// discard drops the staged change set of the given version, if present.
func (db *MemDb) discard(version uint64) error {
	return db.update(func() error {
		if db.changeSet != nil && db.changeSet.version == version {
			db.changeSet = nil
		}
		return nil
	})
}

// Poisoned reports whether the database got corrupted by a failed update.
func (db *MemDb) Poisoned() bool {
	return db.poisoned.Load()
}

func (db *MemDb) GetMemoryFootprint() *common.MemoryFootprint {
	db.lock.RLock()
	defer db.lock.RUnlock()
	res := common.NewMemoryFootprint(unsafe.Sizeof(*db))
	res.AddChild("commitment", db.commitment.GetMemoryFootprint())
	res.AddChild("storage", db.history.GetMemoryFootprint())
	res.AddChild("keyHashes", db.hasher.GetMemoryFootprint())
	if db.changeSet != nil {
		res.AddChild("changeSet", db.changeSet.GetMemoryFootprint())
	}
	return res
}

func (c *changeSet) GetMemoryFootprint() *common.MemoryFootprint {
	size := func(batch storage.Batch) uintptr {
		var res uintptr
		for key, op := range batch {
			value, _ := op.Value()
			res += uintptr(len(key)+len(value)) + unsafe.Sizeof(key) + unsafe.Sizeof(op)
		}
		return res
	}
	return common.NewMemoryFootprint(unsafe.Sizeof(*c) + size(c.stateCommitment) + size(c.stateStorage))
}

// resolve maps the given version selector to a version number.
func (db *MemDb) resolve(version database.Version) uint64 {
	db.lock.RLock()
	defer db.lock.RUnlock()
	return version.Resolve(db.latestVersion, db.hasVersion)
}

// update runs the given modification holding the write lock. A panic raised
// by the modification poisons the database before it is propagated.
func (db *MemDb) update(modify func() error) error {
	db.lock.Lock()
	defer db.lock.Unlock()
	if db.Poisoned() {
		return ErrPoisoned
	}
	defer func() {
		if r := recover(); r != nil {
			db.poisoned.Store(true)
			log.Error("Database poisoned", "reason", r)
			panic(r)
		}
	}()
	return modify()
}

// read runs the given action holding the read lock. Reads of a poisoned
// database panic.
func (db *MemDb) read(action func()) {
	db.lock.RLock()
	defer db.lock.RUnlock()
	if db.Poisoned() {
		panic(ErrPoisoned)
	}
	action()
}

func rootString(root *common.Hash) string {
	if root == nil {
		return "<empty>"
	}
	return root.Hex()
}
