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

package synctest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blob42/marksync"
	bksync "github.com/blob42/marksync/pkg/sync"
)

// StoreFactory returns a new empty store
type StoreFactory func(t *testing.T) bksync.Store

var addedAt = time.Unix(1700000000, 0).UTC()

func bookmark(title, url, folder string) *marksync.Bookmark {
	return &marksync.Bookmark{
		Title:      title,
		URL:        url,
		FolderPath: folder,
		AddedAt:    addedAt,
	}
}

// Collection builds a collection holding the given bookmarks, folders are
// created from their folder path.
func Collection(list ...*marksync.Bookmark) *marksync.Collection {
	c := marksync.NewCollection("synctest", addedAt)
	for _, b := range list {
		folder := c.Root
		for _, name := range marksync.SplitPath(b.FolderPath) {
			next := folder.Subfolder(name)
			if next == nil {
				next = folder.AddFolder(name)
			}
			folder = next
		}
		folder.AddEntry(b.Copy())
	}
	return c
}

func byURL(t *testing.T, s bksync.Store) map[string]*marksync.Bookmark {
	t.Helper()
	list, err := s.Export(context.Background())
	require.NoError(t, err)

	res := make(map[string]*marksync.Bookmark, len(list))
	for _, b := range list {
		res[b.URL] = b
	}
	return res
}

// RunStoreSuite checks that a Store implementation honors the contract the
// sync engine relies on.
func RunStoreSuite(t *testing.T, newStore StoreFactory) {
	ctx := context.Background()

	t.Run("empty export", func(t *testing.T) {
		list, err := newStore(t).Export(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("create keeps order", func(t *testing.T) {
		s := newStore(t)

		ids := map[marksync.ID]bool{}
		for _, b := range []*marksync.Bookmark{
			bookmark("A", "https://a.com", "/"),
			bookmark("B", "https://b.com", "/Work/"),
			bookmark("C", "https://c.com", "/Work/Tools/"),
		} {
			b.Icon = "icon-" + b.Title
			id, err := s.Create(ctx, b)
			require.NoError(t, err)
			require.NotEmpty(t, id)
			ids[id] = true
		}
		assert.Len(t, ids, 3)

		list, err := s.Export(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)

		got := []string{}
		for _, b := range list {
			got = append(got, b.URL)
			assert.True(t, ids[b.ID])
			assert.Empty(t, b.Summary)
			assert.Empty(t, b.Tags)
			assert.Equal(t, "icon-"+b.Title, b.Icon)
			assert.True(t, addedAt.Equal(b.AddedAt), "added_at %s", b.AddedAt)
		}
		assert.Equal(t, []string{"https://a.com", "https://b.com", "https://c.com"}, got)
		assert.Equal(t, "/Work/Tools/", list[2].FolderPath)
	})

	t.Run("update writes mutable fields only", func(t *testing.T) {
		s := newStore(t)
		id, err := s.Create(ctx, bookmark("Old", "https://a.com", "/"))
		require.NoError(t, err)

		if as, ok := s.(marksync.AnnotationStore); ok {
			ok, err := as.Annotate(ctx, id, "a summary", []string{"go", "web"})
			require.NoError(t, err)
			require.True(t, ok)
		}

		upd := bookmark("New", "https://a.com/", "/Moved/")
		upd.Icon = "new-icon"
		upd.Summary = "must not be written"
		upd.Tags = []string{"nope"}

		ok, err := s.Update(ctx, id, upd)
		require.NoError(t, err)
		require.True(t, ok)

		got := byURL(t, s)["https://a.com/"]
		require.NotNil(t, got)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, "New", got.Title)
		assert.Equal(t, "new-icon", got.Icon)
		assert.Equal(t, "/Moved/", got.FolderPath)

		if _, ok := s.(marksync.AnnotationStore); ok {
			assert.Equal(t, "a summary", got.Summary)
			assert.Equal(t, []string{"go", "web"}, got.Tags)
		} else {
			assert.Empty(t, got.Summary)
			assert.Empty(t, got.Tags)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Create(ctx, bookmark("A", "https://a.com", "/"))
		require.NoError(t, err)

		ok, err := s.Update(ctx, "does-not-exist", bookmark("B", "https://b.com", "/"))
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = s.Delete(ctx, "does-not-exist")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		id, err := s.Create(ctx, bookmark("A", "https://a.com", "/"))
		require.NoError(t, err)
		_, err = s.Create(ctx, bookmark("B", "https://b.com", "/"))
		require.NoError(t, err)

		ok, err := s.Delete(ctx, id)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = s.Delete(ctx, id)
		require.NoError(t, err)
		assert.False(t, ok)

		urls := byURL(t, s)
		assert.Len(t, urls, 1)
		assert.Contains(t, urls, "https://b.com")
	})

	t.Run("sync scenario", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Create(ctx, bookmark("Old", "a.com", "/"))
		require.NoError(t, err)
		_, err = s.Create(ctx, bookmark("C", "c.com", "/"))
		require.NoError(t, err)

		c := Collection(
			bookmark("New", "a.com", "/Work/"),
			bookmark("B", "b.com", "/"),
		)

		stats, err := bksync.Sync(ctx, c, s)
		require.NoError(t, err)
		assert.Equal(t, bksync.Stats{TotalNew: 2, TotalExisting: 2, Added: 1, Updated: 1, Deleted: 1}, stats)

		urls := byURL(t, s)
		require.Len(t, urls, 2)
		assert.Equal(t, "New", urls["a.com"].Title)
		assert.Equal(t, "/Work/", urls["a.com"].FolderPath)
		assert.Equal(t, "B", urls["b.com"].Title)

		// second run is a no-op
		stats, err = bksync.Sync(ctx, c, s)
		require.NoError(t, err)
		assert.False(t, stats.Changed(), "stats: %s", stats)
		assert.Equal(t, 2, stats.TotalExisting)
	})
}
