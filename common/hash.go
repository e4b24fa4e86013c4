// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package common

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// HashLength is the length of a Hash in bytes.
const HashLength = common.HashLength

// Hash is a 32-byte cryptographic digest.
type Hash = common.Hash

// Keccak256 computes the Keccak256 hash of the concatenation of the given
// inputs.
func Keccak256(data ...[]byte) Hash {
	return crypto.Keccak256Hash(data...)
}
