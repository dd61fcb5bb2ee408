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
	"context"
	"errors"
	"strings"

	"github.com/blob42/marksync"
)

// Count returns the number of stored bookmarks
func (db *DB) Count(ctx context.Context) (int, error) {
	var count int
	err := db.Handle.QueryRowxContext(ctx, query(QCountBookmarks)).Scan(&count)
	if err != nil {
		return 0, DBError{DBName: db.Name, Err: err}
	}
	return count, nil
}

// QueryBookmarks returns the bookmarks whose url, title or tags contain q
func (db *DB) QueryBookmarks(ctx context.Context, q string) ([]*marksync.Bookmark, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, errors.New("cannot use empty query")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pattern := "%" + q + "%"
	var rows RawBookmarks
	if err := dotx.Select(db.Handle, &rows, QSearchBookmarks, pattern, pattern, pattern); err != nil {
		return nil, DBError{DBName: db.Name, Err: err}
	}
	return rows.AsBookmarks(), nil
}

// BookmarksByTag returns the bookmarks annotated with tag
func (db *DB) BookmarksByTag(ctx context.Context, tag string) ([]*marksync.Bookmark, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, errors.New("empty tag provided")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rows RawBookmarks
	pattern := "%" + TagSep + tag + TagSep + "%"
	if err := dotx.Select(db.Handle, &rows, QBookmarksByTag, pattern); err != nil {
		return nil, DBError{DBName: db.Name, Err: err}
	}
	return rows.AsBookmarks(), nil
}
