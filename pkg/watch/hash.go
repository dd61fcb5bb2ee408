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

package watch

import (
	"os"
	"sync"

	"github.com/zeebo/xxh3"
)

// ContentTracker remembers the xxh3 hash of files to skip runs triggered by
// writes that left the content unchanged.
type ContentTracker struct {
	mu     sync.Mutex
	hashes map[string]uint64
}

func NewContentTracker() *ContentTracker {
	return &ContentTracker{hashes: make(map[string]uint64)}
}

// Changed reads path and reports whether its content differs from the last
// call. The first call for a path is always a change.
func (ct *ContentTracker) Changed(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	sum := xxh3.Hash(data)

	ct.mu.Lock()
	defer ct.mu.Unlock()

	last, seen := ct.hashes[path]
	ct.hashes[path] = sum
	return !seen || last != sum, nil
}

// Forget drops the hash of path, the next Changed call reports a change
func (ct *ContentTracker) Forget(path string) {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	delete(ct.hashes, path)
}
