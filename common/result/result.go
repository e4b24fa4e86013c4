// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package result

import "errors"

// Result encapsulates a value along with an error. It is used where a single
// type is needed to carry the outcome of an operation, e.g. to send the
// results of worker goroutines through a channel.
type Result[T any] struct {
	Value T
	Error error
}

func Ok[T any](value T) Result[T] {
	return Result[T]{Value: value}
}

func Err[T any](err error) Result[T] {
	return Result[T]{Error: err}
}

// Get returns the value and error contained in the Result.
func (r Result[T]) Get() (T, error) {
	return r.Value, r.Error
}

// Collect drains the given channel and returns all successfully produced
// values together with the joined errors of the failed ones.
func Collect[T any](results <-chan Result[T]) ([]T, error) {
	var (
		values []T
		errs   []error
	)
	for res := range results {
		if res.Error != nil {
			errs = append(errs, res.Error)
			continue
		}
		values = append(values, res.Value)
	}
	return values, errors.Join(errs...)
}
