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
	"fmt"
	"math"
	"sync"

	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
)

// Tracker meters the gas consumed by an execution context, e.g. a block or a
// single transaction. Copies of a Tracker share the same counter. A Tracker
// without a limit accepts any consumption.
//
// The zero value is not usable; trackers must be created by New, NewLimited
// or NewLimitless.
type Tracker struct {
	inner *tracker
}

type tracker struct {
	lock    sync.RWMutex
	limit   uint64
	limited bool
	used    uint64
}

// New creates a tracker with the given limit. If limited is false, the limit
// is ignored.
func New(limit uint64, limited bool) Tracker {
	if !limited {
		limit = 0
	}
	return Tracker{inner: &tracker{limit: limit, limited: limited}}
}

// NewLimitless creates a tracker without a limit.
func NewLimitless() Tracker {
	return New(0, false)
}

// NewLimited creates a tracker with the given limit.
func NewLimited(limit uint64) Tracker {
	return New(limit, true)
}

// Limit returns the gas limit. The second result is false if there is none.
func (t Tracker) Limit() (uint64, bool) {
	t.inner.lock.RLock()
	defer t.inner.lock.RUnlock()
	return t.inner.limit, t.inner.limited
}

// Used returns the gas consumed so far.
func (t Tracker) Used() uint64 {
	t.inner.lock.RLock()
	defer t.inner.lock.RUnlock()
	return t.inner.used
}

// Remaining returns the gas left before reaching the limit. The second result
// is false if there is no limit.
func (t Tracker) Remaining() (uint64, bool) {
	t.inner.lock.RLock()
	defer t.inner.lock.RUnlock()
	if !t.inner.limited {
		return 0, false
	}
	if t.inner.used >= t.inner.limit {
		return 0, true
	}
	return t.inner.limit - t.inner.used, true
}

// Consume charges the given amount of gas. If the limit would be exceeded, an
// *OutOfGasError is returned and the consumed gas is left unchanged.
func (t Tracker) Consume(amount uint64, reason string) error {
	inner := t.inner
	inner.lock.Lock()
	defer inner.lock.Unlock()

	var sum uint256.Int
	sum.AddUint64(uint256.NewInt(inner.used), amount)
	candidate := uint64(math.MaxUint64)
	if sum.IsUint64() {
		candidate = sum.Uint64()
	}

	if inner.limited && (!sum.IsUint64() || candidate > inner.limit) {
		log.Warn("Out of gas", "reason", reason, "limit", inner.limit, "used", inner.used, "amount", amount)
		return &OutOfGasError{Limit: inner.limit, Used: candidate}
	}
	inner.used = candidate
	log.Debug("Consumed gas", "reason", reason, "amount", amount, "used", candidate)
	return nil
}

func (t Tracker) String() string {
	limit, limited := t.Limit()
	if !limited {
		return fmt.Sprintf("gas used: %d, limit: none", t.Used())
	}
	return fmt.Sprintf("gas used: %d, limit: %d", t.Used(), limit)
}

// OutOfGasError is produced when a consumption would exceed the limit. Used is
// the total the consumption would have resulted in, saturated at the maximum
// uint64 value.
type OutOfGasError struct {
	Limit uint64
	Used  uint64
}

func (e *OutOfGasError) Error() string {
	return fmt.Sprintf("not enough gas! limit: %d, used: %d", e.Limit, e.Used)
}
