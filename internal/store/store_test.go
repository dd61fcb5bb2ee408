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

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blob42/marksync"
	"github.com/blob42/marksync/internal/database"
	"github.com/blob42/marksync/internal/store/redis"
	"github.com/blob42/marksync/pkg/config"
	bksync "github.com/blob42/marksync/pkg/sync"
	"github.com/blob42/marksync/pkg/sync/synctest"
)

var ctx = context.Background()

func useBackend(t *testing.T, backend string) {
	t.Helper()
	prevStore, prevDB, prevRedis := *Conf, *database.Conf, *redis.Conf
	t.Cleanup(func() {
		*Conf, *database.Conf, *redis.Conf = prevStore, prevDB, prevRedis
		setGlobalBackend(t, "")
	})

	Conf.Backend = backend
	database.Conf.Path = filepath.Join(t.TempDir(), "test.sqlite")
}

func setGlobalBackend(t *testing.T, v string) {
	t.Helper()
	require.NoError(t, config.Get(config.GlobalConfigName).Set(GlobalBackendOpt, v))
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, (&Config{Backend: BackendRedis}).Validate())
	assert.Error(t, (&Config{Backend: "mongo"}).Validate())
	assert.Error(t, (&Config{}).Validate())
}

func TestOpenSQLite(t *testing.T) {
	useBackend(t, BackendSQLite)

	h, err := Open(ctx)
	require.NoError(t, err)
	require.NotNil(t, h.DB)

	// the lock is held while the handle is open
	_, err = Open(ctx)
	assert.ErrorIs(t, err, database.ErrLocked)

	c := synctest.Collection(&marksync.Bookmark{Title: "A", URL: "a.com", FolderPath: "/"})
	stats, err := h.Sync(ctx, &bksync.Engine{}, c, true)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Added)

	list, err := h.Store.Export(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, h.Annotate(ctx, list[0].ID, "sum", []string{"x"}))
	assert.ErrorIs(t, h.Annotate(ctx, "999", "sum", nil), bksync.ErrNotFound)

	require.NoError(t, h.Close())

	h, err = Open(ctx)
	require.NoError(t, err)
	require.NoError(t, h.Close())
}

func TestOpenRedis(t *testing.T) {
	useBackend(t, BackendRedis)
	mr := miniredis.RunT(t)
	redis.Conf.Addr = mr.Addr()

	h, err := Open(ctx)
	require.NoError(t, err)
	defer h.Close()
	assert.Nil(t, h.DB)

	c := synctest.Collection(&marksync.Bookmark{Title: "A", URL: "a.com", FolderPath: "/"})

	_, err = h.Sync(ctx, &bksync.Engine{}, c, true)
	assert.ErrorIs(t, err, ErrNoTx)

	stats, err := h.Sync(ctx, &bksync.Engine{}, c, false)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Added)
}

func TestGlobalBackendOverride(t *testing.T) {
	useBackend(t, BackendSQLite)

	setGlobalBackend(t, BackendRedis)
	require.NoError(t, applyGlobalBackend(ctx, nil))
	assert.Equal(t, BackendRedis, Conf.Backend)

	setGlobalBackend(t, "nope")
	assert.Error(t, applyGlobalBackend(ctx, nil))
}
