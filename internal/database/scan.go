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

package database

import (
	"fmt"
	"strconv"
	"time"

	"github.com/blob42/marksync"
)

type xxhashsum uint64

// Implements the [sql.Scanner] interface.
func (hash *xxhashsum) Scan(value any) error {
	if value == nil {
		*hash = 0
		return nil
	}

	switch s := value.(type) {
	case uint64:
		*hash = xxhashsum(s)
	case int64:
		*hash = xxhashsum(s)
	case string:
		return hash.parse(s)
	case []byte:
		return hash.parse(string(s))
	default:
		return fmt.Errorf("cannot convert to uint64 %v", value)
	}
	return nil
}

func (hash *xxhashsum) parse(s string) error {
	if s == "" {
		*hash = 0
		return nil
	}
	val, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("cannot parse uint64 from string \"%s\"", s)
	}
	*hash = xxhashsum(val)
	return nil
}

func (hash xxhashsum) String() string {
	return strconv.FormatUint(uint64(hash), 10)
}

// RawBookmark is a row of the bookmarks table
type RawBookmark struct {
	ID      int64  `db:"id"`
	URL     string `db:"URL"`
	Title   string `db:"title"`
	Icon    string `db:"icon"`
	Folder  string `db:"folder"`
	Tags    string `db:"tags"`
	Summary string `db:"summary"`
	AddedAt int64  `db:"added_at"`
}

type RawBookmarks []*RawBookmark

func (raw *RawBookmark) AsBookmark() *marksync.Bookmark {
	return &marksync.Bookmark{
		ID:         marksync.ID(strconv.FormatInt(raw.ID, 10)),
		Title:      raw.Title,
		URL:        raw.URL,
		Icon:       raw.Icon,
		AddedAt:    time.Unix(raw.AddedAt, 0).UTC(),
		FolderPath: raw.Folder,
		Tags:       TagsFromString(raw.Tags, TagSep).Get(),
		Summary:    raw.Summary,
	}
}

func (raws RawBookmarks) AsBookmarks() []*marksync.Bookmark {
	res := make([]*marksync.Bookmark, 0, len(raws))
	for _, raw := range raws {
		res = append(res, raw.AsBookmark())
	}
	return res
}

// rowID parses a store id, ok is false for ids this store never assigned
func rowID(id marksync.ID) (int64, bool) {
	v, err := strconv.ParseInt(string(id), 10, 64)
	return v, err == nil
}
