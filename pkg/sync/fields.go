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

package sync

import (
	"fmt"
	"slices"
	"strings"

	"github.com/blob42/marksync"
)

// Field names a bookmark field used to detect a changed record
type Field string

const (
	FieldTitle Field = "title"
	FieldURL   Field = "url"
	FieldIcon  Field = "icon"
)

// DefaultFields is used when no compare field is given
var DefaultFields = []Field{FieldTitle}

var knownFields = []Field{FieldTitle, FieldURL, FieldIcon}

func (f Field) valid() bool {
	return slices.Contains(knownFields, f)
}

func (f Field) value(b *marksync.Bookmark) string {
	switch f {
	case FieldTitle:
		return b.Title
	case FieldURL:
		return b.URL
	case FieldIcon:
		return b.Icon
	}
	return ""
}

// ParseFields parses field names such as "title" or "url,icon". Unknown names
// are rejected.
func ParseFields(names ...string) ([]Field, error) {
	var res []Field
	for _, name := range names {
		for _, tok := range strings.Split(name, ",") {
			tok = strings.ToLower(strings.TrimSpace(tok))
			if tok == "" {
				continue
			}

			f := Field(tok)
			if !f.valid() {
				return nil, fmt.Errorf("unknown compare field %q", tok)
			}
			if !slices.Contains(res, f) {
				res = append(res, f)
			}
		}
	}
	return res, nil
}

// normalizeFields restricts fields to the comparable ones, an empty set falls
// back to DefaultFields.
func normalizeFields(fields []Field) []Field {
	var res []Field
	for _, f := range fields {
		if f.valid() && !slices.Contains(res, f) {
			res = append(res, f)
		}
	}

	if len(res) == 0 {
		return DefaultFields
	}
	return res
}

// changedFields returns the fields of prev that differ in next
func changedFields(fields []Field, prev, next *marksync.Bookmark) []Field {
	var changed []Field
	for _, f := range fields {
		if f.value(prev) != f.value(next) {
			changed = append(changed, f)
		}
	}
	return changed
}
