// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package database

import (
	"github.com/0xsoniclabs/statestore/common"
	"github.com/0xsoniclabs/statestore/database/storage"
)

// Db is the capability of a versioned state database. Its content is split in
// two stores: the state commitment, a flat store backing the Merkle tree, and
// the state storage, a versioned store supporting historic queries. Changes
// are applied in two phases: FlushButNotCommit stages a batch and computes the
// resulting root hash, Commit makes the staged changes visible.
//
// The type P is the proof type produced by the backend.
type Db[P any] interface {
	// --- Read Access ---

	// StateCommitment returns a read-only view on the committed content of the
	// state commitment store.
	StateCommitment() storage.Storage

	// StateStorage returns a read-only view on the state storage pinned to the
	// given version. The latest version is resolved when the view is created.
	StateStorage(version Version) storage.Storage

	// LatestVersion returns the most recently committed version. The second
	// result is false if nothing has been committed yet.
	LatestVersion() (uint64, bool)

	// RootHash returns the root hash of the Merkle tree at the given version,
	// or nil if the tree is empty.
	RootHash(version Version) (*common.Hash, error)

	// Prove produces an inclusion or exclusion proof for the given key at the
	// given version.
	Prove(key []byte, version Version) (P, error)

	// --- Two Phase Commit ---

	// FlushButNotCommit computes the version and root hash resulting from the
	// given batch and stages the changes without applying them. At most one
	// batch can be staged at any time.
	FlushButNotCommit(batch storage.Batch) (uint64, *common.Hash, error)

	// Commit applies the staged changes to both stores and advances the
	// latest version.
	Commit() error
}

// Version selects a version of the state. The zero value selects the latest
// committed version.
type Version struct {
	number uint64
	pinned bool
}

// Latest selects the most recently committed version, or version 0 if
// nothing has been committed yet.
func Latest() Version {
	return Version{}
}

// At selects the given version.
func At(version uint64) Version {
	return Version{number: version, pinned: true}
}

// Get returns the selected version number. The second result is false if the
// latest version is selected.
func (v Version) Get() (uint64, bool) {
	return v.number, v.pinned
}

// Resolve returns the selected version, using the given latest version if no
// version is pinned.
func (v Version) Resolve(latest uint64, exists bool) uint64 {
	if v.pinned {
		return v.number
	}
	if !exists {
		return 0
	}
	return latest
}
