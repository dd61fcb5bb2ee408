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
	"fmt"
	"io"

	"github.com/xlab/treeprint"

	"github.com/blob42/marksync"
)

// PrintTree renders the folder hierarchy under root to w
func PrintTree(w io.Writer, root *marksync.Folder) error {
	t := treeprint.New()
	t.SetValue(root.Path)
	addFolder(t, root)
	_, err := fmt.Fprint(w, t.String())
	return err
}

func addFolder(t treeprint.Tree, folder *marksync.Folder) {
	for _, b := range folder.Entries {
		t.AddMetaNode(b.URL, b.Title)
	}

	for _, sub := range folder.Subfolders {
		branch := t.AddMetaBranch(len(sub.Entries), sub.Name)
		addFolder(branch, sub)
	}
}
