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
	"testing"

	"github.com/0xsoniclabs/statestore/database/merkle"
	"github.com/stretchr/testify/require"
)

func TestKeyHasher_ProducesTrieKeys(t *testing.T) {
	hasher, err := newKeyHasher(4)
	require.NoError(t, err)
	for range 2 {
		for i := range 10 {
			key := []byte(fmt.Sprintf("key-%d", i))
			require.Equal(t, merkle.HashKey(key), hasher.hash(key))
		}
	}
	require.Equal(t, 4, hasher.cache.Len())
}

func TestKeyHasher_InvalidSizeIsRejected(t *testing.T) {
	_, err := newKeyHasher(0)
	require.Error(t, err)
}
