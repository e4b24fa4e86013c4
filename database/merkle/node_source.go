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
	"encoding/binary"

	"github.com/0xsoniclabs/statestore/common"
	"github.com/0xsoniclabs/statestore/database/storage"
	"github.com/ethereum/go-ethereum/core/types"
	triedb "github.com/ethereum/go-ethereum/triedb/database"
)

// Layout of the Merkle tree data in the commitment store:
//
//	'n' || node hash        -> encoded trie node
//	'r' || version (8 byte) -> root hash of the tree at that version
//
// Nodes are addressed by their hash, so nodes of all versions co-exist and
// every recorded version remains provable.
const (
	nodePrefix = 'n'
	rootPrefix = 'r'
)

func nodeKey(hash common.Hash) []byte {
	res := make([]byte, 1+common.HashLength)
	res[0] = nodePrefix
	copy(res[1:], hash[:])
	return res
}

func rootKey(version uint64) []byte {
	res := make([]byte, 9)
	res[0] = rootPrefix
	binary.BigEndian.PutUint64(res[1:], version)
	return res
}

// readRoot fetches the root hash recorded for the given version. The second
// result is false if no root was recorded.
func readRoot(source storage.Storage, version uint64) (common.Hash, bool, error) {
	data, found := source.Read(rootKey(version))
	if !found {
		return common.Hash{}, false, nil
	}
	if len(data) != common.HashLength {
		return common.Hash{}, false, ErrCorruptedRoot
	}
	return common.Hash(data), true, nil
}

func writeRoot(sink storage.WritableStorage, version uint64, root common.Hash) {
	sink.Write(rootKey(version), root[:])
}

// toOptional maps the root of an empty trie to nil.
func toOptional(root common.Hash) *common.Hash {
	if root == types.EmptyRootHash || root == (common.Hash{}) {
		return nil
	}
	return &root
}

// nodeSource provides trie nodes stored in a key/value storage to the trie
// implementation. It serves as the node database of all trie instances, the
// state root is not needed to locate nodes.
type nodeSource struct {
	source storage.Storage
}

var _ triedb.NodeDatabase = nodeSource{}
var _ triedb.NodeReader = nodeSource{}

func newNodeSource(source storage.Storage) nodeSource {
	return nodeSource{source: source}
}

func (s nodeSource) NodeReader(common.Hash) (triedb.NodeReader, error) {
	return s, nil
}

// Node returns the encoded node with the given hash, or nil if there is no
// such node. The owner and path are not needed for hash based addressing.
func (s nodeSource) Node(_ common.Hash, _ []byte, hash common.Hash) ([]byte, error) {
	data, found := s.source.Read(nodeKey(hash))
	if !found {
		return nil, nil
	}
	return data, nil
}
