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

package parsing

import (
	"time"
)

// Counter keeps track of what a parse run produced
type Counter struct {
	lastParseRuntime time.Duration
	folderCount      uint
	urlCount         uint
	skipCount        uint

	// counts of the previous run
	lastFolderCount uint
	lastURLCount    uint
}

func (c *Counter) IncFolderCount() {
	c.folderCount++
}

func (c *Counter) AddFolderCount(n uint) {
	c.folderCount += n
}

func (c *Counter) IncURLCount() {
	c.urlCount++
}

// IncSkipCount counts links that were dropped for missing a title or url
func (c *Counter) IncSkipCount() {
	c.skipCount++
}

func (c *Counter) FolderCount() uint {
	return c.folderCount
}

func (c *Counter) URLCount() uint {
	return c.urlCount
}

func (c *Counter) SkipCount() uint {
	return c.skipCount
}

func (c *Counter) SetLastParseRuntime(d time.Duration) {
	c.lastParseRuntime = d
}

func (c *Counter) LastParseRuntime() time.Duration {
	return c.lastParseRuntime
}

func (c *Counter) ResetCount() {
	c.lastURLCount = c.urlCount
	c.lastFolderCount = c.folderCount
	c.folderCount = 0
	c.urlCount = 0
	c.skipCount = 0
}

// Stats returns a snapshot of the counters
func (c *Counter) Stats() Stats {
	return Stats{
		Folders:      c.folderCount,
		URLs:         c.urlCount,
		Skipped:      c.skipCount,
		Runtime:      c.lastParseRuntime,
		LastURLCount: c.lastURLCount,
		LastFolders:  c.lastFolderCount,
	}
}
