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

import "fmt"

// Stats summarizes a synchronization run
type Stats struct {
	TotalNew      int `json:"total_new"`
	TotalExisting int `json:"total_existing"`
	Added         int `json:"added"`
	Updated       int `json:"updated"`
	Deleted       int `json:"deleted"`
}

func (s *Stats) count(a Action) {
	switch a {
	case ActionAdd:
		s.Added++
	case ActionUpdate:
		s.Updated++
	case ActionDelete:
		s.Deleted++
	}
}

// Changed returns true if the run mutated the store
func (s Stats) Changed() bool {
	return s.Added+s.Updated+s.Deleted > 0
}

func (s Stats) String() string {
	return fmt.Sprintf("new=%d existing=%d added=%d updated=%d deleted=%d",
		s.TotalNew, s.TotalExisting, s.Added, s.Updated, s.Deleted)
}
