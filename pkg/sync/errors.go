//
// Copyright (c) 2025 Chakib Ben Ziane <contact@blob42.xyz> and [`marksync` contributors]
// (https://github.com/blob42/marksync/graphs/contributors).
//
// All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// This file is part of marksync.
//
// marksync is free software: you can redistribute it and/or modify it under the terms of
// the GNU Affero General Public License as published by the Free Software Foundation,
// either version 3 of the License, or (at your option) any later version.
//
// marksync is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR
// PURPOSE.  See the GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License along with
// marksync.  If not, see <http://www.gnu.org/licenses/>.

package sync

import (
	"errors"
	"fmt"
)

var (
	ErrSyncFailed = errors.New("sync failed")

	// Returned by the engine when the store reports a missing record on
	// update or delete
	ErrNotFound = errors.New("record not found")
)

// SyncFailedError reports a store failure in the middle of a run. Operations
// applied before the failure are kept in the store and counted in Stats.
type SyncFailedError struct {
	// Failed operation, nil when the store export failed
	Op    *Op
	Stats Stats
	Err   error
}

func (e *SyncFailedError) Error() string {
	if e.Op == nil {
		return fmt.Sprintf("%s: export: %s", ErrSyncFailed, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", ErrSyncFailed, e.Op, e.Err)
}

func (e *SyncFailedError) Unwrap() error {
	return e.Err
}

func (e *SyncFailedError) Is(target error) bool {
	return target == ErrSyncFailed
}
