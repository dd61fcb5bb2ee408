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

// Package redis implements the bookmark Store on top of redis. Each record is
// stored as json under its own key, a sorted set keeps the insertion order.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/blob42/marksync"
	"github.com/blob42/marksync/pkg/logging"
	bksync "github.com/blob42/marksync/pkg/sync"
)

var log = logging.GetLogger("REDIS")

// Store handles Redis operations for bookmarks
type Store struct {
	client *redis.Client
	keys   Keys
}

var (
	_ bksync.Store             = (*Store)(nil)
	_ marksync.AnnotationStore = (*Store)(nil)
)

// NewStore creates a new Redis store under prefix
func NewStore(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{
		client: client,
		keys:   Keys{Prefix: prefix},
	}
}

func (s *Store) get(ctx context.Context, id marksync.ID) (*marksync.Bookmark, error) {
	data, err := s.client.Get(ctx, s.keys.Bookmark(id.String())).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bookmark: %w", err)
	}

	var bk marksync.Bookmark
	if err := json.Unmarshal(data, &bk); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bookmark %s: %w", id, err)
	}
	return &bk, nil
}

func (s *Store) set(ctx context.Context, bk *marksync.Bookmark) error {
	data, err := json.Marshal(bk)
	if err != nil {
		return fmt.Errorf("failed to marshal bookmark: %w", err)
	}

	if err := s.client.Set(ctx, s.keys.Bookmark(bk.ID.String()), data, redis.KeepTTL).Err(); err != nil {
		return fmt.Errorf("failed to save bookmark: %w", err)
	}
	return nil
}

// Export retrieves all bookmarks in insertion order
func (s *Store) Export(ctx context.Context) ([]*marksync.Bookmark, error) {
	ids, err := s.client.ZRange(ctx, s.keys.Order(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get bookmark ids: %w", err)
	}

	if len(ids) == 0 {
		return []*marksync.Bookmark{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.keys.Bookmark(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get bookmarks: %w", err)
	}

	bookmarks := make([]*marksync.Bookmark, 0, len(values))
	for i, v := range values {
		data, ok := v.(string)
		if !ok {
			// expired or removed outside of the store
			log.Warn("dangling bookmark id", "id", ids[i])
			continue
		}

		var bk marksync.Bookmark
		if err := json.Unmarshal([]byte(data), &bk); err != nil {
			return nil, fmt.Errorf("failed to unmarshal bookmark %s: %w", ids[i], err)
		}
		bookmarks = append(bookmarks, &bk)
	}

	return bookmarks, nil
}

// Create stores a new record with a random uuid
func (s *Store) Create(ctx context.Context, b *marksync.Bookmark) (marksync.ID, error) {
	uid, err := uuid.NewV4()
	if err != nil {
		return "", err
	}

	rec := b.Copy()
	rec.ID = marksync.ID(uid.String())
	rec.Tags = []string{}
	rec.Summary = ""

	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("failed to marshal bookmark: %w", err)
	}

	seq, err := s.client.Incr(ctx, s.keys.Seq()).Result()
	if err != nil {
		return "", fmt.Errorf("failed to get sequence: %w", err)
	}

	id := rec.ID.String()
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.keys.Bookmark(id), data, 0)
		pipe.SAdd(ctx, s.keys.All(), id)
		pipe.ZAdd(ctx, s.keys.Order(), redis.Z{Score: float64(seq), Member: id})
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to save bookmark: %w", err)
	}

	log.Debug("created", "id", id, "url", rec.URL)
	return rec.ID, nil
}

// Update writes the mutable fields of b into the record id
func (s *Store) Update(ctx context.Context, id marksync.ID, b *marksync.Bookmark) (bool, error) {
	rec, err := s.get(ctx, id)
	if err != nil || rec == nil {
		return false, err
	}

	rec.Title = b.Title
	rec.URL = b.URL
	rec.Icon = b.Icon
	rec.FolderPath = b.FolderPath

	if err = s.set(ctx, rec); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes a bookmark and its index entries
func (s *Store) Delete(ctx context.Context, id marksync.ID) (bool, error) {
	var del *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, s.keys.Bookmark(id.String()))
		pipe.SRem(ctx, s.keys.All(), id.String())
		pipe.ZRem(ctx, s.keys.Order(), id.String())
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete bookmark: %w", err)
	}

	return del.Val() > 0, nil
}

// Annotate stores the summary and tags produced by an Annotator
func (s *Store) Annotate(ctx context.Context, id marksync.ID, summary string, tags []string) (bool, error) {
	rec, err := s.get(ctx, id)
	if err != nil || rec == nil {
		return false, err
	}

	rec.Summary = summary
	rec.Tags = append([]string{}, tags...)

	if err = s.set(ctx, rec); err != nil {
		return false, err
	}
	return true, nil
}

// Count returns the number of stored bookmarks
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.client.SCard(ctx, s.keys.All()).Result()
}
