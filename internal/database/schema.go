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
	"database/sql"
	"errors"
	"fmt"
)

// # Schema versions:
// 1: initial version
//
// 2: added column xhsum, the xxhash of the mutable fields of a record
const CurrentSchemaVersion = 2

const (
	// added_at: unix time in seconds
	// modified: time of the last write
	// tags: delimiter wrapped list, ie. ",go,web,"
	QCreateSchema = `
	CREATE TABLE IF NOT EXISTS bookmarks (
		id INTEGER PRIMARY KEY,
		URL TEXT NOT NULL UNIQUE,
		title TEXT DEFAULT '',
		icon TEXT DEFAULT '',
		folder TEXT DEFAULT '/',
		tags TEXT DEFAULT ',',
		summary TEXT DEFAULT '',
		added_at INTEGER DEFAULT (strftime('%s')),
		modified INTEGER DEFAULT (strftime('%s')),
		xhsum TEXT DEFAULT ''
	)
	`

	QCreateSchemaVersion = `
	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY
	)
	`
)

func (db *DB) schemaVersion(ctx context.Context) (int, error) {
	var version int
	err := db.Handle.QueryRowContext(ctx, "SELECT version FROM schema_version").Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return version, err
}

func (db *DB) checkDBVersion(ctx context.Context, fresh bool) error {
	log.Debug("checking schema version")

	if _, err := db.Handle.ExecContext(ctx, QCreateSchemaVersion); err != nil {
		return DBError{DBName: db.Name, Err: err}
	}

	version, err := db.schemaVersion(ctx)
	if err != nil {
		return DBError{DBName: db.Name, Err: err}
	}

	if version == 0 {
		version = 1
		if fresh {
			version = CurrentSchemaVersion
		}
		log.Debug("unversioned schema detected", "version", version)
		_, err = db.Handle.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", version)
		if err != nil {
			return DBError{DBName: db.Name, Err: err}
		}
	}

	if version > CurrentSchemaVersion {
		return fmt.Errorf("unrecognized db version %d: current=%d", version, CurrentSchemaVersion)
	}

	for version < CurrentSchemaVersion {
		switch version {
		case 1:
			if err = db.migrateToVersion2(ctx); err != nil {
				return err
			}
		}
		version++
	}

	_, err = db.Handle.ExecContext(ctx, "UPDATE schema_version SET version = ?", version)
	if err != nil {
		return DBError{DBName: db.Name, Err: err}
	}

	log.Debug("schema", "version", version)
	return nil
}

func (db *DB) tableExists(ctx context.Context, name string) (bool, error) {
	var count int
	err := db.Handle.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", name,
	).Scan(&count)
	return count > 0, err
}

// InitSchema creates the tables of a new database and migrates older ones
func (db *DB) InitSchema(ctx context.Context) error {
	exists, err := db.tableExists(ctx, "bookmarks")
	if err != nil {
		return DBError{DBName: db.Name, Err: err}
	}

	if !exists {
		if _, err = db.Handle.ExecContext(ctx, QCreateSchema); err != nil {
			return DBError{DBName: db.Name, Err: err}
		}
	}

	if err = db.checkDBVersion(ctx, !exists); err != nil {
		return fmt.Errorf("checking schema version: %w", err)
	}

	log.Debugf("<%s> initialized", db.Name)
	return nil
}

// v2 adds the xhsum column and computes it for the existing records
func (db *DB) migrateToVersion2(ctx context.Context) error {
	log.Debug("DB schema: migrating to v2")
	tx, err := db.Handle.BeginTxx(ctx, nil)
	if err != nil {
		return DBError{DBName: db.Name, Err: err}
	}

	var count int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM pragma_table_info('bookmarks') WHERE name = 'xhsum'",
	).Scan(&count)
	if err != nil {
		tx.Rollback()
		return DBError{DBName: db.Name, Err: err}
	}

	if count == 0 {
		if _, err = tx.ExecContext(ctx, "ALTER TABLE bookmarks ADD COLUMN xhsum TEXT DEFAULT ''"); err != nil {
			tx.Rollback()
			return DBError{DBName: db.Name, Err: err}
		}
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE bookmarks SET xhsum = "+xhsumSQL)
	if err != nil {
		tx.Rollback()
		return DBError{DBName: db.Name, Err: err}
	}

	if err = tx.Commit(); err != nil {
		return DBError{DBName: db.Name, Err: err}
	}
	return nil
}
