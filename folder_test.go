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

package marksync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestJoinPath(t *testing.T) {
	tests := []struct {
		parent, name, want string
	}{
		{"/", "A", "/A/"},
		{"/A/", "B", "/A/B/"},
		{"/A", "B", "/A/B/"},
		{"", "A", "/A/"},
		{"/A/", " B ", "/A/B/"},
		{"/A/", "B/C", "/A/B∕C/"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinPath(tt.parent, tt.name))
		})
	}
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "/", NormalizePath(""))
	assert.Equal(t, "/", NormalizePath("/"))
	assert.Equal(t, "/A/B/", NormalizePath("A/B"))
	assert.Equal(t, "/A/B/", NormalizePath("//A//B"))
	assert.Equal(t, []string{"A", "B"}, SplitPath("/A/B/"))
	assert.Empty(t, SplitPath("/"))
}

func TestFolderTree(t *testing.T) {
	c := NewCollection("test.html", fixedTime)
	require.True(t, c.Root.IsRoot())
	assert.Equal(t, RootPath, c.Root.Path)

	a := c.Root.AddFolder("A")
	b := a.AddFolder("B")
	unnamed := a.AddFolder("  ")

	assert.Equal(t, "/A/", a.Path)
	assert.Equal(t, "/", a.ParentPath)
	assert.Equal(t, "/A/B/", b.Path)
	assert.Equal(t, "/A/", b.ParentPath)
	assert.Equal(t, UnnamedFolder, unnamed.Name)

	slashed := c.Root.AddFolder(" News/Blogs ")
	assert.Equal(t, "News∕Blogs", slashed.Name)
	assert.Equal(t, "/News∕Blogs/", slashed.Path)
	assert.Equal(t, []string{"News∕Blogs"}, SplitPath(slashed.Path))
	assert.Same(t, slashed, c.Root.Subfolder("News∕Blogs"))
	assert.Same(t, b, a.Subfolder("B"))
	assert.Nil(t, a.Subfolder("C"))

	bk := &Bookmark{Title: "x", URL: "https://x.org", Tags: []string{"t"}}
	b.AddEntry(bk)
	assert.Equal(t, "/A/B/", bk.FolderPath)

	cp := bk.Copy()
	cp.Tags[0] = "changed"
	assert.Equal(t, "t", bk.Tags[0])
}
