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
	"strings"
	"time"
)

const (
	RootName = "root"
	RootPath = "/"

	// Name given to folders without a heading
	UnnamedFolder = "Unnamed Folder"

	// Stands in for a slash in folder names, a name is a single path segment
	slashInName = "\u2215"
)

// Folder is an internal node of the bookmark tree. A folder owns its entries
// and subfolders, children only know their parent through ParentPath.
type Folder struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`

	// Empty for the root folder
	ParentPath string `json:"parent_path,omitempty" yaml:"parent_path,omitempty"`

	Entries    []*Bookmark `json:"entries" yaml:"entries,omitempty"`
	Subfolders []*Folder   `json:"subfolders" yaml:"subfolders,omitempty"`
}

func NewRootFolder() *Folder {
	return &Folder{
		Name: RootName,
		Path: RootPath,
	}
}

// IsRoot reports whether f has no parent
func (f *Folder) IsRoot() bool {
	return f.ParentPath == ""
}

// FolderName returns name as a valid folder name: trimmed, slashes replaced
// by the division slash (U+2215) and never empty.
func FolderName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return UnnamedFolder
	}
	return strings.ReplaceAll(name, "/", slashInName)
}

// AddFolder creates a subfolder named name, appends it to f and returns it.
func (f *Folder) AddFolder(name string) *Folder {
	name = FolderName(name)

	sub := &Folder{
		Name:       name,
		Path:       JoinPath(f.Path, name),
		ParentPath: f.Path,
	}
	f.Subfolders = append(f.Subfolders, sub)
	return sub
}

// AddEntry appends b to the folder entries and sets its folder path.
func (f *Folder) AddEntry(b *Bookmark) {
	b.FolderPath = f.Path
	f.Entries = append(f.Entries, b)
}

// Subfolder returns the direct child named name
func (f *Folder) Subfolder(name string) *Folder {
	for _, sub := range f.Subfolders {
		if sub.Name == name {
			return sub
		}
	}
	return nil
}

// Collection is a parsed bookmark file.
type Collection struct {
	Root       *Folder   `json:"root" yaml:"root"`
	SourceName string    `json:"source_name" yaml:"source_name"`
	ImportedAt time.Time `json:"imported_at" yaml:"imported_at"`
}

// NewCollection returns a collection holding only an empty root folder.
func NewCollection(source string, importedAt time.Time) *Collection {
	return &Collection{
		Root:       NewRootFolder(),
		SourceName: source,
		ImportedAt: importedAt,
	}
}

// JoinPath appends a folder name to a parent path. The result always starts
// and ends with a slash and never contains empty segments. name is taken as a
// single segment, slashes in it are replaced as in FolderName.
//
//	JoinPath("/", "A")    == "/A/"
//	JoinPath("/A/", "B")  == "/A/B/"
func JoinPath(parent, name string) string {
	return NormalizePath(parent + "/" + strings.ReplaceAll(name, "/", slashInName))
}

// NormalizePath turns a folder value such as "A/B" or "//A//B" into the
// canonical "/A/B/" form. Blank segments are dropped and an empty path is the
// root path.
func NormalizePath(p string) string {
	var sb strings.Builder
	sb.WriteString(RootPath)
	for _, seg := range strings.Split(p, "/") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		sb.WriteString(seg)
		sb.WriteString("/")
	}
	return sb.String()
}

// SplitPath returns the folder names of a path, root excluded.
func SplitPath(p string) []string {
	var res []string
	for _, seg := range strings.Split(NormalizePath(p), "/") {
		if seg != "" {
			res = append(res, seg)
		}
	}
	return res
}
