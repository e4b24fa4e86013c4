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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersion_ZeroValueSelectsLatest(t *testing.T) {
	require := require.New(t)

	var v Version
	require.Equal(Latest(), v)
	_, pinned := v.Get()
	require.False(pinned)
	require.Equal(uint64(7), v.Resolve(7, true))
	require.Equal(uint64(0), v.Resolve(7, false))
}

func TestVersion_PinnedVersionIgnoresLatest(t *testing.T) {
	require := require.New(t)

	v := At(3)
	number, pinned := v.Get()
	require.True(pinned)
	require.Equal(uint64(3), number)
	require.Equal(uint64(3), v.Resolve(7, true))
	require.Equal(uint64(3), v.Resolve(0, false))
}
