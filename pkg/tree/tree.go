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

// Package tree provides traversal and linearization helpers over a parsed
// bookmark collection.
package tree

import (
	"errors"
	"time"

	"github.com/blob42/marksync"
	"github.com/blob42/marksync/pkg/logging"
)

var log = logging.GetLogger("TREE")

// SkipFolder can be returned by a WalkFunc to skip the subfolders of the
// current folder.
var SkipFolder = errors.New("skip this folder")

type WalkFunc func(f *marksync.Folder) error

// Walk visits folder and all its subfolders depth first, pre-order, in source
// order.
func Walk(folder *marksync.Folder, fn WalkFunc) error {
	err := walk(folder, fn)
	if errors.Is(err, SkipFolder) {
		return nil
	}
	return err
}

func walk(folder *marksync.Folder, fn WalkFunc) error {
	if folder == nil {
		return nil
	}

	if err := fn(folder); err != nil {
		return err
	}

	for _, sub := range folder.Subfolders {
		if err := walk(sub, fn); err != nil && !errors.Is(err, SkipFolder) {
			return err
		}
	}

	return nil
}

// Flatten linearizes the collection into a single ordered list. A folder's own
// entries precede the entries of its subfolders.
func Flatten(c *marksync.Collection) []*marksync.Bookmark {
	if c == nil {
		return nil
	}
	return FlattenFolder(c.Root)
}

func FlattenFolder(root *marksync.Folder) []*marksync.Bookmark {
	var res []*marksync.Bookmark
	_ = Walk(root, func(f *marksync.Folder) error {
		res = append(res, f.Entries...)
		return nil
	})
	return res
}

// Dedupe removes duplicate urls from list. For each url the last occurrence is
// kept, at its own position.
func Dedupe(list []*marksync.Bookmark) []*marksync.Bookmark {
	last := make(map[string]int, len(list))
	for i, b := range list {
		last[b.URL] = i
	}

	if len(last) == len(list) {
		return list
	}

	res := make([]*marksync.Bookmark, 0, len(last))
	for i, b := range list {
		if last[b.URL] == i {
			res = append(res, b)
		} else {
			log.Debug("duplicate url", "url", b.URL, "folder", b.FolderPath)
		}
	}

	return res
}

// Find returns the folder at path or nil
func Find(root *marksync.Folder, path string) *marksync.Folder {
	path = marksync.NormalizePath(path)

	var found *marksync.Folder
	_ = Walk(root, func(f *marksync.Folder) error {
		if found != nil {
			return SkipFolder
		}
		if f.Path == path {
			found = f
			return SkipFolder
		}
		return nil
	})

	return found
}

// Count returns the number of folders (root excluded) and entries under root.
func Count(root *marksync.Folder) (folders int, entries int) {
	_ = Walk(root, func(f *marksync.Folder) error {
		if !f.IsRoot() {
			folders++
		}
		entries += len(f.Entries)
		return nil
	})
	return
}

// Build rebuilds a collection from a flat list using the folder path of each
// entry. Missing folders are created in order of first appearance. Entries are
// copied, their FolderPath is normalized.
func Build(source string, importedAt time.Time, list []*marksync.Bookmark) *marksync.Collection {
	c := marksync.NewCollection(source, importedAt)

	for _, b := range list {
		folder := mkdirAll(c.Root, b.FolderPath)
		folder.AddEntry(b.Copy())
	}

	return c
}

// BuildFlat is like Build but keeps the order of list through Flatten. The
// entries stay in the root folder with their normalized folder path, the
// folders they name are created empty.
func BuildFlat(source string, importedAt time.Time, list []*marksync.Bookmark) *marksync.Collection {
	c := marksync.NewCollection(source, importedAt)

	for _, b := range list {
		entry := b.Copy()
		entry.FolderPath = mkdirAll(c.Root, b.FolderPath).Path
		c.Root.Entries = append(c.Root.Entries, entry)
	}

	return c
}

func mkdirAll(root *marksync.Folder, path string) *marksync.Folder {
	cur := root
	for _, name := range marksync.SplitPath(path) {
		next := cur.Subfolder(name)
		if next == nil {
			next = cur.AddFolder(name)
		}
		cur = next
	}
	return cur
}
