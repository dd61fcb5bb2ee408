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
	"fmt"

	"github.com/jmoiron/sqlx"
	sqlite3 "github.com/mattn/go-sqlite3"
)

// BackupToDisk copies the database contents to a sqlite file at dbpath using
// the sqlite backup API. An existing file is overwritten.
func (src *DB) BackupToDisk(ctx context.Context, dbpath string) error {
	log.Debugf("copying <%s> to <%s>", src.Name, dbpath)

	dst, err := NewDB("backup", dbpath, DBTypeFileDSN).open(ctx)
	if err != nil {
		return err
	}
	defer dst.Close()

	srcConn, err := src.Handle.Conn(ctx)
	if err != nil {
		return DBError{DBName: src.Name, Err: err}
	}
	defer srcConn.Close()

	dstConn, err := dst.Handle.Conn(ctx)
	if err != nil {
		return DBError{DBName: dst.Name, Err: err}
	}
	defer dstConn.Close()

	return srcConn.Raw(func(srcDriver any) error {
		return dstConn.Raw(func(dstDriver any) error {
			srcSQL, ok := srcDriver.(*sqlite3.SQLiteConn)
			if !ok {
				return fmt.Errorf("unexpected driver connection %T", srcDriver)
			}
			dstSQL, ok := dstDriver.(*sqlite3.SQLiteConn)
			if !ok {
				return fmt.Errorf("unexpected driver connection %T", dstDriver)
			}

			bkp, err := dstSQL.Backup("main", srcSQL, "main")
			if err != nil {
				return err
			}

			if _, err = bkp.Step(-1); err != nil {
				return errors.Join(err, bkp.Finish())
			}

			if err = bkp.Finish(); err != nil {
				return err
			}

			log.Infof("copied <%s> to <%s>", src.Name, dbpath)
			return nil
		})
	})
}

// open opens the handle without touching the schema
func (db *DB) open(ctx context.Context) (*DB, error) {
	var err error
	if db.Handle, err = sqlx.Open(DriverName, db.Path); err != nil {
		return nil, DBError{DBName: db.Name, Err: err}
	}
	if err = db.Handle.PingContext(ctx); err != nil {
		db.Handle.Close()
		return nil, DBError{DBName: db.Name, Err: err}
	}
	return db, nil
}
