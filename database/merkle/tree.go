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
	"fmt"

	"github.com/0xsoniclabs/statestore/common"
	"github.com/0xsoniclabs/statestore/database/storage"
	"github.com/0xsoniclabs/tracy"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/trie"
	"github.com/ethereum/go-ethereum/trie/trienode"
)

const (
	ErrRootNotFound  = common.ConstError("no root recorded for version")
	ErrCorruptedRoot = common.ConstError("corrupted root record")
)

// Tree computes Merkle commitments of key/value sets using a Merkle-Patricia
// trie. The trie is keyed by the Keccak256 hash of the keys and stores the
// Keccak256 hash of the values in its leaves. Its nodes are kept in the
// storage handed to the individual operations; a Tree has no state of its own
// and the zero value is ready to use.
type Tree struct{}

// HashKey computes the trie key of the given raw key.
func HashKey(key []byte) common.Hash {
	return common.Keccak256(key)
}

// HashValue computes the leaf value stored in the trie for the given value.
func HashValue(value []byte) common.Hash {
	return common.Keccak256(value)
}

// ApplyRaw applies the given batch to the tree of the old version and records
// the resulting tree as the new version. All new trie nodes and the new root
// are written to the given cache. If old and new version are equal and no
// root is known for them, the batch is applied to the empty tree. The result
// is the new root hash, or nil if the resulting tree is empty.
func (Tree) ApplyRaw(
	cache storage.WritableStorage,
	oldVersion, newVersion uint64,
	batch storage.Batch,
) (*common.Hash, error) {
	zone := tracy.ZoneBegin("merkle::apply")
	defer zone.End()

	oldRoot, found, err := readRoot(cache, oldVersion)
	if err != nil {
		return nil, err
	}
	if !found {
		if oldVersion != newVersion {
			return nil, fmt.Errorf("%w: %d", ErrRootNotFound, oldVersion)
		}
		oldRoot = types.EmptyRootHash
	}

	tr, err := trie.New(trie.TrieID(oldRoot), newNodeSource(cache))
	if err != nil {
		return nil, fmt.Errorf("failed to open trie of version %d: %w", oldVersion, err)
	}
	if err := applyBatch(tr, batch); err != nil {
		return nil, fmt.Errorf("failed to update trie: %w", err)
	}

	commitZone := tracy.ZoneBegin("merkle::commit")
	root, nodes := tr.Commit(false)
	if nodes != nil {
		nodes.ForEachWithOrder(func(_ string, node *trienode.Node) {
			if node.IsDeleted() {
				return // < nodes are retained for older versions
			}
			cache.Write(nodeKey(node.Hash), node.Blob)
		})
	}
	writeRoot(cache, newVersion, root)
	commitZone.End()

	return toOptional(root), nil
}

// RootHash returns the root hash recorded for the given version. The result
// is nil if the tree was empty at that version or the version is unknown.
func (Tree) RootHash(view storage.Storage, version uint64) (*common.Hash, error) {
	root, found, err := readRoot(view, version)
	if err != nil || !found {
		return nil, err
	}
	return toOptional(root), nil
}

// Prove produces a proof for the given hashed key in the tree of the given
// version. The proof shows either the presence of the key or its absence.
func (Tree) Prove(view storage.Storage, hashedKey common.Hash, version uint64) (*Proof, error) {
	root, found, err := readRoot(view, version)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %d", ErrRootNotFound, version)
	}
	proof := &Proof{Key: hashedKey}
	if toOptional(root) == nil {
		return proof, nil
	}
	tr, err := trie.New(trie.TrieID(root), newNodeSource(view))
	if err != nil {
		return nil, fmt.Errorf("failed to open trie of version %d: %w", version, err)
	}
	if err := tr.Prove(hashedKey[:], proofWriter{proof: proof}); err != nil {
		return nil, fmt.Errorf("failed to create proof: %w", err)
	}
	return proof, nil
}
