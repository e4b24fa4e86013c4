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
	"github.com/0xsoniclabs/statestore/common"
	"github.com/0xsoniclabs/statestore/database/merkle"
	"github.com/0xsoniclabs/statestore/database/storage"
)

//go:generate mockgen -source committer.go -destination committer_mocks.go -package memdb

// committer is the Merkle commitment scheme used by the engine to derive
// root hashes and proofs from the commitment store.
type committer interface {
	ApplyRaw(cache storage.WritableStorage, oldVersion, newVersion uint64, batch storage.Batch) (*common.Hash, error)
	RootHash(view storage.Storage, version uint64) (*common.Hash, error)
	Prove(view storage.Storage, hashedKey common.Hash, version uint64) (*merkle.Proof, error)
}

var _ committer = merkle.Tree{}
