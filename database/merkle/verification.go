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
	"context"
	"fmt"
	"sync"

	"github.com/0xsoniclabs/statestore/common"
	"github.com/0xsoniclabs/statestore/common/result"
	"github.com/0xsoniclabs/statestore/database"
	"github.com/0xsoniclabs/statestore/database/storage"
)

//go:generate mockgen -source verification.go -destination verification_mocks.go -package merkle

// VerificationObserver is notified about the progress of a verification.
type VerificationObserver interface {
	StartVerification()
	Progress(msg string)
	EndVerification(res error)
}

// NilVerificationObserver is a VerificationObserver ignoring all events.
type NilVerificationObserver struct{}

func (NilVerificationObserver) StartVerification() {
}

func (NilVerificationObserver) Progress(string) {
}

func (NilVerificationObserver) EndVerification(error) {
}

// ProvingSource is the part of a database needed for verifying the proofs of
// a version.
type ProvingSource interface {
	StateStorage(version database.Version) storage.Storage
	RootHash(version database.Version) (*common.Hash, error)
	Prove(key []byte, version database.Version) (*Proof, error)
}

// VerifyVersion checks that every record of the state storage at the given
// version is covered by a valid inclusion proof against the root hash of that
// version. Proofs are created and checked by the given number of workers.
func VerifyVersion(
	ctx context.Context,
	source ProvingSource,
	version uint64,
	workers int,
	observer VerificationObserver,
) error {
	observer.StartVerification()
	err := verifyVersion(ctx, source, version, max(workers, 1), observer)
	observer.EndVerification(err)
	return err
}

func verifyVersion(
	ctx context.Context,
	source ProvingSource,
	version uint64,
	workers int,
	observer VerificationObserver,
) error {
	at := database.At(version)
	root, err := source.RootHash(at)
	if err != nil {
		return err
	}
	observer.Progress(fmt.Sprintf("Verifying version %d against root %s", version, rootString(root)))

	records := make(chan storage.Record, workers)
	go func() {
		defer close(records)
		for record := range source.StateStorage(at).Scan(nil, nil, common.Ascending) {
			select {
			case records <- record:
			case <-ctx.Done():
				return
			}
		}
	}()

	results := make(chan result.Result[storage.Record], workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for record := range records {
				results <- verifyRecord(source, at, root, record)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	verified, err := result.Collect(results)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("verification of version %d interrupted: %w", version, err)
	}

	// A key not present in the version must be provably absent.
	absent := []byte("\xff\xff absent key probe")
	if _, found := source.StateStorage(at).Read(absent); !found {
		proof, err := source.Prove(absent, at)
		if err != nil {
			return err
		}
		if err := proof.VerifyNonMembership(root, absent); err != nil {
			return err
		}
	}

	observer.Progress(fmt.Sprintf("Verified %d keys of version %d", len(verified), version))
	return nil
}

func verifyRecord(
	source ProvingSource,
	version database.Version,
	root *common.Hash,
	record storage.Record,
) result.Result[storage.Record] {
	proof, err := source.Prove(record.Key, version)
	if err == nil {
		err = proof.VerifyMembership(root, record.Key, record.Value)
	}
	if err != nil {
		return result.Err[storage.Record](fmt.Errorf("key %x: %w", record.Key, err))
	}
	return result.Ok(record)
}

func rootString(root *common.Hash) string {
	if root == nil {
		return "<empty>"
	}
	return root.Hex()
}
