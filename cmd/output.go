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

package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/blob42/marksync"
	"github.com/blob42/marksync/internal/utils"
	bksync "github.com/blob42/marksync/pkg/sync"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	faint  = color.New(color.Faint).SprintFunc()
)

func printStats(w io.Writer, runID string, stats bksync.Stats, dryRun bool) {
	prefix := "import"
	if dryRun {
		prefix = "dry run"
	}

	fmt.Fprintf(w, "%s %s: %s added, %s updated, %s deleted (%d new, %d existing)\n",
		prefix,
		faint(runID),
		green(stats.Added),
		yellow(stats.Updated),
		red(stats.Deleted),
		stats.TotalNew,
		stats.TotalExisting,
	)
}

func printOp(w io.Writer, op bksync.Op) {
	switch op.Action {
	case bksync.ActionAdd:
		fmt.Fprintf(w, "%s %s %s\n", green("+"), op.Bookmark.URL, faint(op.Bookmark.FolderPath))
	case bksync.ActionUpdate:
		fmt.Fprintf(w, "%s %s %v\n", yellow("~"), op.Bookmark.URL, op.Changed)
	case bksync.ActionDelete:
		fmt.Fprintf(w, "%s %s\n", red("-"), op.Bookmark.URL)
	}
}

func printBookmarks(w io.Writer, list []*marksync.Bookmark) {
	for _, b := range list {
		fmt.Fprintf(w, "%-10s %-40s %s %s\n",
			faint(b.ID), utils.Shorten(b.Title, 40), b.URL, faint(b.FolderPath))
	}
}
