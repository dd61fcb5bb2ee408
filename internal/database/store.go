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
	"strconv"

	"github.com/jmoiron/sqlx"
	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/blob42/marksync"
	bksync "github.com/blob42/marksync/pkg/sync"
)

var ErrDuplicateURL = errors.New("url already stored")

// Store implements the sync Store and the AnnotationStore over a db handle or
// a transaction.
type Store struct {
	name string
	ext  sqlx.ExtContext
}

var (
	_ bksync.Store             = (*Store)(nil)
	_ marksync.AnnotationStore = (*Store)(nil)
)

// Store returns a Store writing directly to the database
func (db *DB) Store() *Store {
	return &Store{name: db.Name, ext: db.Handle}
}

func (s *Store) dbErr(err error) error {
	if err == nil {
		return nil
	}
	var sqlErr sqlite3.Error
	if errors.As(err, &sqlErr) && sqlErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		err = fmt.Errorf("%w: %w", ErrDuplicateURL, err)
	}
	return DBError{DBName: s.name, Err: err}
}

func (s *Store) Export(ctx context.Context) ([]*marksync.Bookmark, error) {
	var rows RawBookmarks
	if err := sqlx.SelectContext(ctx, s.ext, &rows, query(QExportBookmarks)); err != nil {
		return nil, s.dbErr(err)
	}
	return rows.AsBookmarks(), nil
}

func (s *Store) Create(ctx context.Context, b *marksync.Bookmark) (marksync.ID, error) {
	res, err := s.ext.ExecContext(ctx, query(QCreateBookmark),
		b.URL,
		b.Title,
		b.Icon,
		b.FolderPath,
		b.AddedAt.Unix(),
		xhsum(b.URL, b.Title, b.Icon, b.FolderPath),
	)
	if err != nil {
		log.Errorf("%s: %s", err, b.URL)
		return "", s.dbErr(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return "", s.dbErr(err)
	}

	return marksync.ID(strconv.FormatInt(id, 10)), nil
}

// Update writes the mutable fields of b. The write is skipped when the stored
// content hash is unchanged.
func (s *Store) Update(ctx context.Context, id marksync.ID, b *marksync.Bookmark) (bool, error) {
	rowid, ok := rowID(id)
	if !ok {
		return false, nil
	}

	var current xxhashsum
	err := s.ext.QueryRowxContext(ctx, query(QGetXHSum), rowid).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, s.dbErr(err)
	}

	sum := xhsum(b.URL, b.Title, b.Icon, b.FolderPath)
	if current.String() == sum {
		log.Debug("update: same hash skipping", "url", b.URL)
		return true, nil
	}

	res, err := s.ext.ExecContext(ctx, query(QUpdateBookmark),
		b.URL,
		b.Title,
		b.Icon,
		b.FolderPath,
		sum,
		rowid,
	)
	if err != nil {
		return false, s.dbErr(err)
	}

	return affected(res)
}

func (s *Store) Delete(ctx context.Context, id marksync.ID) (bool, error) {
	rowid, ok := rowID(id)
	if !ok {
		return false, nil
	}

	res, err := s.ext.ExecContext(ctx, query(QDeleteBookmark), rowid)
	if err != nil {
		return false, s.dbErr(err)
	}

	return affected(res)
}

// Annotate stores the summary and tags produced by an Annotator
func (s *Store) Annotate(ctx context.Context, id marksync.ID, summary string, tags []string) (bool, error) {
	rowid, ok := rowID(id)
	if !ok {
		return false, nil
	}

	tagList := NewTags(append([]string{}, tags...), TagSep).PreSanitize()
	res, err := s.ext.ExecContext(ctx, query(QAnnotateBookmark),
		summary,
		tagList.String(true),
		rowid,
	)
	if err != nil {
		return false, s.dbErr(err)
	}

	return affected(res)
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
