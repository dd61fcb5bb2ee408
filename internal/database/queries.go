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
	_ "embed"

	"github.com/gchaincl/dotsql"
	"github.com/swithek/dotsqlx"
)

const (
	QExportBookmarks  = "export-bookmarks"
	QCreateBookmark   = "create-bookmark"
	QGetXHSum         = "get-xhsum"
	QUpdateBookmark   = "update-bookmark"
	QDeleteBookmark   = "delete-bookmark"
	QAnnotateBookmark = "annotate-bookmark"
	QCountBookmarks   = "count-bookmarks"
	QSearchBookmarks  = "search-bookmarks"
	QBookmarksByTag   = "bookmarks-by-tag"
)

//go:embed queries.sql
var rawQueries string

var (
	dot  *dotsql.DotSql
	dotx *dotsqlx.DotSqlx
)

// query returns the raw sql of a named query from queries.sql
func query(name string) string {
	q, err := dot.Raw(name)
	if err != nil {
		log.Fatal("missing query", "name", name, "err", err)
	}
	return q
}

func init() {
	var err error
	if dot, err = dotsql.LoadFromString(rawQueries); err != nil {
		log.Fatal("loading queries", "err", err)
	}
	dotx = dotsqlx.Wrap(dot)
}
