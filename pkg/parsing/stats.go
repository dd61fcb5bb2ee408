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
	"fmt"
	"time"
)

type Stats struct {
	Folders uint
	URLs    uint
	Skipped uint
	Runtime time.Duration

	LastFolders  uint
	LastURLCount uint
}

func (s Stats) String() string {
	return fmt.Sprintf("%d urls, %d folders, %d skipped in %s",
		s.URLs, s.Folders, s.Skipped, s.Runtime.Round(time.Microsecond))
}
