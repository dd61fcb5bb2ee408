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
	"slices"
	"strings"

	"github.com/blob42/marksync/internal/utils"
)

// Default separator used to join tags in the DB
const TagSep = ","

// Tags is a list of tags stored as a single delimited column
type Tags struct {
	delim string
	tags  []string
}

func NewTags(tags []string, delim string) *Tags {
	return &Tags{delim: delim, tags: tags}
}

func (t *Tags) Extend(tags []string) *Tags {
	t.tags = utils.Extends(t.tags, tags...)
	return t
}

// PreSanitize replaces the delim inside tags before saving them to the DB
// ex: [ "tag,1", "t,g2", "tag3" ] -> [ "tag--1", "t--g2", "tag3" ]
func (t *Tags) PreSanitize() *Tags {
	if t.delim == "" {
		return t
	}
	res := make([]string, 0, len(t.tags))
	for _, tag := range t.tags {
		tag = strings.TrimSpace(strings.ReplaceAll(tag, t.delim, "--"))
		if tag != "" {
			res = append(res, tag)
		}
	}
	t.tags = res
	return t
}

func (t *Tags) Get() []string {
	return t.tags
}

// String representation of the tags.
// It can wrap the tags with the delim if wrap is true. This is done for
// compatibility with Buku DB format.
func (t Tags) String(wrap bool) string {
	if wrap {
		return delimWrap(strings.Join(t.tags, t.delim), t.delim)
	}
	return strings.Join(t.tags, t.delim)
}

// TagsFromString builds a list of tags from a delimited string, empty tags
// are removed.
func TagsFromString(s, delim string) *Tags {
	tags := slices.DeleteFunc(strings.Split(s, delim), func(s string) bool {
		return s == ""
	})
	return &Tags{delim: delim, tags: tags}
}

// Returns a string wrapped with the delim
func delimWrap(token string, delim string) string {
	if strings.TrimSpace(token) == "" {
		return delim
	}

	if !strings.HasPrefix(token, delim) {
		token = delim + token
	}

	if !strings.HasSuffix(token, delim) {
		token = token + delim
	}

	return token
}
