// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.
package gas

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTracker_ConsumptionWithinLimitSucceeds(t *testing.T) {
	require := require.New(t)
	tracker := NewLimited(100)

	require.NoError(tracker.Consume(50, "first"))
	require.Equal(uint64(50), tracker.Used())
	remaining, limited := tracker.Remaining()
	require.True(limited)
	require.Equal(uint64(50), remaining)

	require.NoError(tracker.Consume(50, "exact"))
	remaining, _ = tracker.Remaining()
	require.Zero(remaining)
}

func TestTracker_FailedConsumptionIsNotApplied(t *testing.T) {
	require := require.New(t)
	tracker := NewLimited(100)
	require.NoError(tracker.Consume(50, "first"))

	err := tracker.Consume(60, "second")
	var outOfGas *OutOfGasError
	require.True(errors.As(err, &outOfGas))
	require.Equal(OutOfGasError{Limit: 100, Used: 110}, *outOfGas)
	require.Equal("not enough gas! limit: 100, used: 110", err.Error())
	require.Equal(uint64(50), tracker.Used())
}

func TestTracker_LimitlessNeverFails(t *testing.T) {
	require := require.New(t)
	tracker := NewLimitless()
	for range 3 {
		require.NoError(tracker.Consume(math.MaxUint64/2, "big"))
		_, limited := tracker.Remaining()
		require.False(limited)
	}
	require.Equal(uint64(math.MaxUint64), tracker.Used(), "limitless trackers saturate")
	_, limited := tracker.Limit()
	require.False(limited)
}

func TestTracker_OverflowIsReportedForLimitedTrackers(t *testing.T) {
	require := require.New(t)
	tracker := NewLimited(math.MaxUint64)
	require.NoError(tracker.Consume(math.MaxUint64-1, "almost all"))

	err := tracker.Consume(2, "overflow")
	var outOfGas *OutOfGasError
	require.ErrorAs(err, &outOfGas)
	require.Equal(uint64(math.MaxUint64), outOfGas.Used)
	require.Equal(uint64(math.MaxUint64-1), tracker.Used())
}

func TestTracker_CopiesShareTheCounter(t *testing.T) {
	tracker := NewLimited(10)
	shared := tracker
	require.NoError(t, shared.Consume(4, "copy"))
	require.Equal(t, uint64(4), tracker.Used())
}

func TestTracker_NewIgnoresLimitOfUnlimitedTrackers(t *testing.T) {
	limit, limited := New(42, false).Limit()
	require.False(t, limited)
	require.Zero(t, limit)

	limit, limited = New(42, true).Limit()
	require.True(t, limited)
	require.Equal(t, uint64(42), limit)
}

func TestTracker_ZeroLimitRejectsAnyConsumption(t *testing.T) {
	tracker := NewLimited(0)
	require.NoError(t, tracker.Consume(0, "nothing"))
	require.Error(t, tracker.Consume(1, "something"))
}

func TestTracker_ConcurrentConsumptionNeverExceedsLimit(t *testing.T) {
	require := require.New(t)
	const limit = 1000
	tracker := NewLimited(limit)

	var wg sync.WaitGroup
	var lock sync.Mutex
	succeeded := 0
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				if tracker.Consume(1, "parallel") == nil {
					lock.Lock()
					succeeded++
					lock.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	require.Equal(limit, succeeded)
	require.Equal(uint64(limit), tracker.Used())
}

func TestTracker_ZeroValueIsNotUsable(t *testing.T) {
	require.Panics(t, func() { Tracker{}.Used() })
}

func TestTracker_StringListsUsageAndLimit(t *testing.T) {
	tracker := NewLimited(10)
	require.NoError(t, tracker.Consume(3, "test"))
	require.Equal(t, "gas used: 3, limit: 10", tracker.String())
	require.Equal(t, "gas used: 0, limit: none", NewLimitless().String())
}
