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

package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInlist(t *testing.T) {
	t1 := []int{1, 2, 3, 4}
	assert.Equal(t, true, InList(t1, 4))
	assert.Equal(t, false, InList(t1, 5))

	t2 := []string{"one", "two", "three"}
	assert.Equal(t, true, InList(t2, "three"))
	assert.Equal(t, false, InList(t2, "five"))
}

func TestExtends(t *testing.T) {
	t1 := []int{1, 2, 3}
	assert.Equal(t, []int{1, 2, 3, 4}, Extends(t1, 4))
	assert.Equal(t, []int{1, 2, 3}, Extends([]int{1, 2, 3}, 3))
}

func TestShorten(t *testing.T) {
	assert.Equal(t, "short", Shorten("short", 10))
	assert.Equal(t, "long ti…", Shorten("long title", 8))
	assert.Equal(t, "héll…", Shorten("héllo wörld", 5))
	assert.Equal(t, "same", Shorten("same", 0))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	p, err := ExpandPath("~", "not-there", "db.sqlite")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "not-there", "db.sqlite"), p)

	t.Setenv("MARKSYNC_TEST_DIR", "/nonexistent/dir")
	p, err = ExpandPath("$MARKSYNC_TEST_DIR/file")
	require.NoError(t, err)
	assert.Equal(t, "/nonexistent/dir/file", p)
}

func TestCheckFileExists(t *testing.T) {
	dir := t.TempDir()
	_, err := CheckFileExists(dir)
	assert.Error(t, err)

	ok, err := CheckFileExists(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.False(t, ok)

	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	ok, err = CheckFileExists(file)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckDirExists(dir)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDataDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	dir, err := DataDir()
	require.NoError(t, err)
	assert.Equal(t, "/data/marksync", dir)
}
