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

package redis

const DefaultPrefix = "marksync"

// Keys builds the redis keys of a store namespace
type Keys struct {
	Prefix string
}

// Bookmark holds the json record of a bookmark
func (k Keys) Bookmark(id string) string {
	return k.Prefix + ":bookmark:" + id
}

// All is the set of all bookmark ids
func (k Keys) All() string {
	return k.Prefix + ":bookmarks:all"
}

// Order is the sorted set keeping the insertion order of the ids
func (k Keys) Order() string {
	return k.Prefix + ":bookmarks:order"
}

// Seq is the counter scoring Order
func (k Keys) Seq() string {
	return k.Prefix + ":bookmarks:seq"
}
