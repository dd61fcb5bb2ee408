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
	"bufio"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/blob42/marksync"
)

const netscapeHeader = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<!-- This is an automatically generated file.
     It will be read and overwritten.
     DO NOT EDIT! -->
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
`

// WriteHTML writes the tree under root as a Netscape bookmark file. Parsing
// the output yields the same folder paths and entry order.
func WriteHTML(w io.Writer, root *marksync.Folder) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(netscapeHeader)
	writeList(bw, root, 0)

	return bw.Flush()
}

func writeList(w *bufio.Writer, folder *marksync.Folder, depth int) {
	indent := strings.Repeat("    ", depth)

	w.WriteString(indent + "<DL><p>\n")

	for _, b := range folder.Entries {
		writeEntry(w, b, indent+"    ")
	}

	for _, sub := range folder.Subfolders {
		w.WriteString(indent + "    <DT><H3>" + html.EscapeString(sub.Name) + "</H3>\n")
		writeList(w, sub, depth+1)
	}

	w.WriteString(indent + "</DL><p>\n")
}

func writeEntry(w *bufio.Writer, b *marksync.Bookmark, indent string) {
	w.WriteString(indent + `<DT><A HREF="` + html.EscapeString(b.URL) + `"`)

	if !b.AddedAt.IsZero() {
		w.WriteString(` ADD_DATE="` + strconv.FormatInt(b.AddedAt.Unix(), 10) + `"`)
	}
	if b.Icon != "" {
		w.WriteString(` ICON="` + html.EscapeString(b.Icon) + `"`)
	}
	if len(b.Tags) > 0 {
		w.WriteString(` TAGS="` + html.EscapeString(strings.Join(b.Tags, ",")) + `"`)
	}

	w.WriteString(">" + html.EscapeString(b.Title) + "</A>\n")
}
