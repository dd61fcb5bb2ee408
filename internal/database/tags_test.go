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

	"github.com/stretchr/testify/assert"
)

func TestTags_PreSanitize(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want []string
	}{
		{"empty", []string{}, []string{}},
		{"good_input", []string{"tag1", "tag2"}, []string{"tag1", "tag2"}},
		{"bad_input1", []string{"tag1,", "tag2"}, []string{"tag1--", "tag2"}},
		{"bad_input2", []string{"tag1", ",tag2"}, []string{"tag1", "--tag2"}},
		{"blank", []string{" ", "tag"}, []string{"tag"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewTags(tt.tags, TagSep).PreSanitize().Get()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTags_String(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		wrap bool
		want string
	}{
		{"empty wrapped", nil, true, ","},
		{"empty", nil, false, ""},
		{"single", []string{"go"}, true, ",go,"},
		{"many", []string{"go", "web"}, true, ",go,web,"},
		{"many unwrapped", []string{"go", "web"}, false, "go,web"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewTags(tt.tags, TagSep).String(tt.wrap))
		})
	}
}

func TestTagsFromString(t *testing.T) {
	assert.Equal(t, []string{"go", "web"}, TagsFromString(",go,web,", TagSep).Get())
	assert.Empty(t, TagsFromString(",", TagSep).Get())
	assert.Empty(t, TagsFromString("", TagSep).Get())

	tags := TagsFromString(",go,", TagSep).Extend([]string{"go", "db"})
	assert.Equal(t, []string{"go", "db"}, tags.Get())
}
