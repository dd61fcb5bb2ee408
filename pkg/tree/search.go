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

package tree

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/blob42/marksync"
)

// Search returns the bookmarks whose title or url contains query, case
// insensitive. Order of list is kept.
func Search(list []*marksync.Bookmark, query string) []*marksync.Bookmark {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return list
	}

	var res []*marksync.Bookmark
	for _, b := range list {
		if strings.Contains(strings.ToLower(b.Title), query) ||
			strings.Contains(strings.ToLower(b.URL), query) {
			res = append(res, b)
		}
	}
	return res
}

// FuzzySearch ranks the bookmarks matching query on their title or url. Best
// matches come first, ties keep the order of list.
func FuzzySearch(list []*marksync.Bookmark, query string) []*marksync.Bookmark {
	if strings.TrimSpace(query) == "" {
		return list
	}

	type match struct {
		b    *marksync.Bookmark
		rank int
	}

	var matches []match
	for _, b := range list {
		rank := bestRank(query, b.Title, b.URL)
		if rank >= 0 {
			matches = append(matches, match{b, rank})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].rank < matches[j].rank
	})

	res := make([]*marksync.Bookmark, len(matches))
	for i, m := range matches {
		res[i] = m.b
	}
	return res
}

// lowest Levenshtein distance of all targets, -1 when nothing matches
func bestRank(query string, targets ...string) int {
	best := -1
	for _, t := range targets {
		r := fuzzy.RankMatchNormalizedFold(query, t)
		if r >= 0 && (best < 0 || r < best) {
			best = r
		}
	}
	return best
}
