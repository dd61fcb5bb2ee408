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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanXxhsum(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  xxhashsum
		err   string
	}{
		{"nil", nil, 0, ""},
		{"uint64", uint64(123), 123, ""},
		{"int64", int64(7), 7, ""},
		{"string valid", "456", 456, ""},
		{"string empty", "", 0, ""},
		{"string invalid", "abc", 0, "cannot parse uint64 from string \"abc\""},
		{"bytes", []byte("789"), 789, ""},
		{"unsupported", 1.5, 0, "cannot convert to uint64 1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h xxhashsum
			err := h.Scan(tt.input)
			if tt.err != "" {
				require.EqualError(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, h)
		})
	}
}

func TestXHSum(t *testing.T) {
	a := xhsum("https://a.com", "A", "", "/")
	assert.Equal(t, a, xhsum("https://a.com", "A", "", "/"))
	assert.NotEqual(t, a, xhsum("https://a.com", "A", "", "/Work/"))

	// separators inside fields must not shift values between fields
	assert.NotEqual(t,
		xhsum("https://u", "x", "y+", "/"),
		xhsum("https://u", "x+y", "", "/"))
	assert.NotEqual(t,
		xhsum("https://u", "1:a", "", "/"),
		xhsum("https://u", "", "1:a", "/"))

	var h xxhashsum
	require.NoError(t, h.Scan(a))
	assert.Equal(t, a, h.String())
}

func TestRawBookmark(t *testing.T) {
	raw := &RawBookmark{
		ID:      42,
		URL:     "https://go.dev",
		Title:   "Go",
		Folder:  "/Dev/",
		Tags:    ",go,lang,",
		AddedAt: 1700000000,
	}
	bk := raw.AsBookmark()
	assert.Equal(t, "42", bk.ID.String())
	assert.Equal(t, []string{"go", "lang"}, bk.Tags)
	assert.Equal(t, "/Dev/", bk.FolderPath)
	assert.True(t, bk.AddedAt.Equal(time.Unix(1700000000, 0)))

	id, ok := rowID(bk.ID)
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	_, ok = rowID("3f1c-uuid")
	assert.False(t, ok)
}
