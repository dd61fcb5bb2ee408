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

// Package marksync holds the bookmark data model shared by the parsers, the
// synchronization engine and the stores.
package marksync

import (
	"context"
	"time"
)

// ID is the stable identifier assigned by a store on first persistence.
// Freshly parsed bookmarks have an empty ID.
type ID string

func (id ID) String() string {
	return string(id)
}

// Bookmark is a leaf node of the bookmark tree.
type Bookmark struct {
	ID      ID        `json:"id,omitempty" yaml:"id,omitempty"`
	Title   string    `json:"title" yaml:"title"`
	URL     string    `json:"url" yaml:"url"`
	Icon    string    `json:"icon,omitempty" yaml:"icon,omitempty"`
	AddedAt time.Time `json:"added_at" yaml:"added_at"`

	// Full path of the parent folder, ie. /Work/Tools/
	FolderPath string `json:"folder_path" yaml:"folder_path"`

	// Tags and Summary are only ever written by an Annotator
	Tags    []string `json:"tags" yaml:"tags,omitempty"`
	Summary string   `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// Copy returns a deep copy of the bookmark
func (b *Bookmark) Copy() *Bookmark {
	cp := *b
	cp.Tags = append([]string(nil), b.Tags...)
	return &cp
}

// Annotator populates the summary and tags of a bookmark from its target
// page. Implementations live outside of this module.
type Annotator interface {
	SummarizeAndTag(ctx context.Context, url string) (summary string, tags []string, err error)
}

// AnnotationStore is implemented by stores that can persist the output of an
// Annotator. It returns false when no record has the given id.
type AnnotationStore interface {
	Annotate(ctx context.Context, id ID, summary string, tags []string) (bool, error)
}
