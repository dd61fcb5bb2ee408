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

// Package database implements the bookmark Store on top of sqlite.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/OneOfOne/xxhash"
	"github.com/jmoiron/sqlx"
	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/blob42/marksync/pkg/logging"
)

var log = logging.GetLogger("DB")

const (
	DBFileName = "marksync.sqlite"

	// sqlite3 driver registering the marksync sql functions
	DriverName = "sqlite3_marksync"

	DBTypeInMemoryDSN = "file:%s?mode=memory&cache=shared"
	DBTypeFileDSN     = "file:%s"
)

var ErrNotInitialized = errors.New("database not initialized")

type DBError struct {
	DBName string
	Err    error
}

func (e DBError) Error() string {
	return fmt.Sprintf("<%s>: %s", e.DBName, e.Err)
}

func (e DBError) Unwrap() error {
	return e.Err
}

// DsnOptions are appended to the dsn as query parameters
type DsnOptions map[string]string

// DB encapsulates an sqlx.DB handle
type DB struct {
	Name   string
	Path   string
	Handle *sqlx.DB
}

// NewDB builds a DB from a dsn format, ie. DBTypeFileDSN. The dsn is formatted
// with path or with name when path is empty.
func NewDB(name string, path string, format string, opts ...DsnOptions) *DB {
	target := path
	if target == "" {
		target = name
	}
	dsn := fmt.Sprintf(format, target)

	for _, o := range opts {
		params := make([]string, 0, len(o))
		for _, k := range slices.Sorted(maps.Keys(o)) {
			params = append(params, fmt.Sprintf("%s=%s", k, o[k]))
		}
		if len(params) == 0 {
			continue
		}

		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + strings.Join(params, "&")
	}

	return &DB{Name: name, Path: dsn}
}

// Open opens a file database at path
func Open(ctx context.Context, path string) (*DB, error) {
	return NewDB("marksync", path, DBTypeFileDSN, DsnOptions{
		"_journal_mode": "WAL",
		"_busy_timeout": "5000",
	}).Init(ctx)
}

// OpenMemory opens a named in-memory database
func OpenMemory(ctx context.Context, name string) (*DB, error) {
	return NewDB(name, "", DBTypeInMemoryDSN).Init(ctx)
}

// Init opens the connection and creates or migrates the schema
func (db *DB) Init(ctx context.Context) (*DB, error) {
	var err error

	if db.Handle != nil {
		log.Warnf("%s: already initialized", db.Name)
		return db, nil
	}

	if _, err = db.open(ctx); err != nil {
		return nil, err
	}

	// sqlite serializes writers
	db.Handle.SetMaxOpenConns(1)
	log.Debugf("<%s> opened at <%s>", db.Name, db.Path)

	if err = db.InitSchema(ctx); err != nil {
		db.Handle.Close()
		return nil, err
	}

	return db, nil
}

func (db *DB) Close() error {
	if db.Handle == nil {
		return nil
	}
	log.Debugf("closing <%s>", db.Name)
	return db.Handle.Close()
}

func (db *DB) String() string {
	return db.Name
}

// xhash is exposed to sql as xhash(text)
func xhash(input string) string {
	return fmt.Sprintf("%d", xxhash.ChecksumString64(input))
}

// xhsum is the content hash of the mutable fields of a record. Each field is
// prefixed with its length in bytes so that no two records share an encoding.
// Must stay in sync with xhsumSQL.
func xhsum(url, title, icon, folder string) string {
	var sb strings.Builder
	for _, field := range []string{url, title, icon, folder} {
		fmt.Fprintf(&sb, "%d:%s", len(field), field)
	}
	return xhash(sb.String())
}

// xhsumSQL computes xhsum over the columns of the bookmarks table
const xhsumSQL = `xhash(printf('%d:%s%d:%s%d:%s%d:%s',
	length(CAST(URL AS BLOB)), URL,
	length(CAST(title AS BLOB)), title,
	length(CAST(icon AS BLOB)), icon,
	length(CAST(folder AS BLOB)), folder))`

func init() {
	sql.Register(DriverName,
		&sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterFunc("xhash", xhash, true)
			},
		})
	sqlx.BindDriver(DriverName, sqlx.QUESTION)
}
