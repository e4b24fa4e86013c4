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
	"bytes"
	"fmt"

	"github.com/0xsoniclabs/statestore/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethdb/memorydb"
	"github.com/ethereum/go-ethereum/trie"
)

// ErrInvalidProof is returned when a proof does not match the root hash it is
// verified against, or does not prove the expected statement.
const ErrInvalidProof = common.ConstError("invalid proof")

// Proof is a Merkle proof for a single key. It lists the encoded trie nodes on
// the path from the root towards the key, starting with the root. The same
// proof type serves as an inclusion proof, if the key is present, and as an
// exclusion proof otherwise.
type Proof struct {
	Key   common.Hash // < hashed key
	Nodes [][]byte
}

// Verify checks the proof against the given root hash and returns the hash of
// the value stored for the proven key. A nil result denotes the absence of the
// key. A nil root denotes the empty tree.
func (p *Proof) Verify(root *common.Hash) (*common.Hash, error) {
	if root == nil || *root == types.EmptyRootHash {
		if len(p.Nodes) != 0 {
			return nil, fmt.Errorf("%w: proof for empty tree contains nodes", ErrInvalidProof)
		}
		return nil, nil
	}
	db := memorydb.New()
	for _, node := range p.Nodes {
		if err := db.Put(common.Keccak256(node).Bytes(), node); err != nil {
			return nil, err
		}
	}
	value, err := trie.VerifyProof(*root, p.Key[:], db)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProof, err)
	}
	if value == nil {
		return nil, nil
	}
	if len(value) != common.HashLength {
		return nil, fmt.Errorf("%w: unexpected leaf length %d", ErrInvalidProof, len(value))
	}
	res := common.Hash(value)
	return &res, nil
}

// VerifyMembership checks that the proof shows the given key to be mapped to
// the given value in the tree with the given root.
func (p *Proof) VerifyMembership(root *common.Hash, key, value []byte) error {
	if p.Key != HashKey(key) {
		return fmt.Errorf("%w: proof covers a different key", ErrInvalidProof)
	}
	got, err := p.Verify(root)
	if err != nil {
		return err
	}
	if got == nil {
		return fmt.Errorf("%w: key %x is not present", ErrInvalidProof, key)
	}
	if want := HashValue(value); *got != want {
		return fmt.Errorf("%w: value hash mismatch for key %x, got %x, want %x", ErrInvalidProof, key, *got, want)
	}
	return nil
}

// VerifyNonMembership checks that the proof shows the given key to be absent
// from the tree with the given root.
func (p *Proof) VerifyNonMembership(root *common.Hash, key []byte) error {
	if p.Key != HashKey(key) {
		return fmt.Errorf("%w: proof covers a different key", ErrInvalidProof)
	}
	got, err := p.Verify(root)
	if err != nil {
		return err
	}
	if got != nil {
		return fmt.Errorf("%w: key %x is present", ErrInvalidProof, key)
	}
	return nil
}

// proofWriter collects the nodes emitted by the trie's proof generation.
type proofWriter struct {
	proof *Proof
}

func (w proofWriter) Put(_ []byte, value []byte) error {
	w.proof.Nodes = append(w.proof.Nodes, bytes.Clone(value))
	return nil
}

func (w proofWriter) Delete([]byte) error {
	return fmt.Errorf("proof nodes can not be deleted")
}
