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

package parsing

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blob42/marksync"
	"github.com/blob42/marksync/pkg/tree"
)

func TestWriteHTMLRoundTrip(t *testing.T) {
	_, c := parseTestFile(t, "bookmarks.html")

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, c.Root))

	p := New(WithSourceName("export.html"), WithClock(clock))
	again, err := p.Parse(buf.Bytes())
	require.NoError(t, err)

	if diff := cmp.Diff(flat(c), flat(again)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	wantFolders, wantEntries := tree.Count(c.Root)
	gotFolders, gotEntries := tree.Count(again.Root)
	assert.Equal(t, wantFolders, gotFolders)
	assert.Equal(t, wantEntries, gotEntries)
}

func TestWriteHTMLSlashInFolderName(t *testing.T) {
	p := New(WithClock(clock))
	c, err := p.Parse([]byte(`<DL><p>
	<DT><H3>A/B</H3>
	<DL><p>
		<DT><A HREF="https://x.org">x</A>
	</DL><p>
	</DL>`))
	require.NoError(t, err)

	folder := tree.Find(c.Root, "/A∕B/")
	require.NotNil(t, folder)
	assert.Nil(t, tree.Find(c.Root, "/A/"))

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, c.Root))

	again, err := New(WithClock(clock)).Parse(buf.Bytes())
	require.NoError(t, err)
	if diff := cmp.Diff(flat(c), flat(again)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	// a store export rebuilds the same folder
	rebuilt := tree.Build("store", now, tree.Flatten(again))
	assert.NotNil(t, tree.Find(rebuilt.Root, "/A∕B/"))
}

func TestWriteHTMLFromStoreExport(t *testing.T) {
	added := time.Unix(1710000000, 0).UTC()
	list := []*marksync.Bookmark{
		{Title: "Root <link>", URL: "https://a.com/?q=1&b=2", FolderPath: "/", AddedAt: added},
		{Title: "Tool", URL: "https://b.com", FolderPath: "/Work/Tools/", AddedAt: added, Icon: "data:image/png;base64,AAA"},
		{Title: "Mail", URL: "https://c.com", FolderPath: "/Work/", AddedAt: added},
	}

	c := tree.Build("store", now, list)

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, c.Root))
	out := buf.String()

	assert.Contains(t, out, "<!DOCTYPE NETSCAPE-Bookmark-file-1>")
	assert.Contains(t, out, `HREF="https://a.com/?q=1&amp;b=2"`)
	assert.Contains(t, out, "Root &lt;link&gt;</A>")
	assert.Contains(t, out, `ADD_DATE="1710000000"`)

	again, err := New(WithClock(clock), WithFormat(FormatHTML)).Parse(buf.Bytes())
	require.NoError(t, err)

	got := map[string]*marksync.Bookmark{}
	for _, b := range tree.Flatten(again) {
		got[b.URL] = b
	}
	require.Len(t, got, 3)

	for _, b := range list {
		g := got[b.URL]
		require.NotNil(t, g, b.URL)
		assert.Equal(t, b.Title, g.Title)
		assert.Equal(t, b.FolderPath, g.FolderPath)
		assert.Equal(t, b.Icon, g.Icon)
		assert.True(t, b.AddedAt.Equal(g.AddedAt))
	}
}

func TestWriteHTMLEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, marksync.NewRootFolder()))

	c, err := New(WithClock(clock)).Parse(buf.Bytes())
	require.NoError(t, err)
	_, entries := tree.Count(c.Root)
	assert.Zero(t, entries)
	assert.Empty(t, c.Root.Subfolders)
}
