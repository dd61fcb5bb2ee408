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
	"fmt"

	"github.com/blob42/marksync"
	bksync "github.com/blob42/marksync/pkg/sync"
)

// WithTx runs fn with a Store bound to a transaction. The transaction is
// committed when fn returns nil and rolled back otherwise.
func (db *DB) WithTx(ctx context.Context, fn func(store *Store) error) error {
	if db.Handle == nil {
		return ErrNotInitialized
	}

	tx, err := db.Handle.BeginTxx(ctx, nil)
	if err != nil {
		return DBError{DBName: db.Name, Err: err}
	}

	if err = fn(&Store{name: db.Name, ext: tx}); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			log.Error("rollback failed", "err", rerr)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return DBError{DBName: db.Name, Err: err}
	}
	return nil
}

// SyncTx synchronizes c into the database in a single transaction. When
// the run fails nothing is applied and the returned stats are zero.
func (db *DB) SyncTx(ctx context.Context, engine *bksync.Engine, c *marksync.Collection) (bksync.Stats, error) {
	var stats bksync.Stats
	err := db.WithTx(ctx, func(store *Store) error {
		var err error
		stats, err = engine.Run(ctx, c, store)
		return err
	})
	if err != nil {
		return bksync.Stats{}, fmt.Errorf("rolled back: %w", err)
	}
	return stats, nil
}
