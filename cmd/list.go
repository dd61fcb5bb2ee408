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
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/blob42/marksync"
	"github.com/blob42/marksync/internal/store"
	"github.com/blob42/marksync/pkg/tree"
)

func listCmd() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "list stored bookmarks, optionally filtered by QUERY",
		ArgsUsage: "[QUERY]",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "query"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "tag", Usage: "only bookmarks tagged `TAG` (sqlite only)"},
			&cli.BoolFlag{Name: "count", Usage: "print the number of matches only"},
		},
		Action: listAction,
	}
}

func searchCmd() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Aliases:   []string{"s"},
		Usage:     "search stored bookmarks",
		ArgsUsage: "QUERY",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "query"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "fuzzy", Aliases: []string{"z"}, Usage: "fuzzy match and rank the results"},
		},
		Action: searchAction,
	}
}

func listAction(ctx context.Context, c *cli.Command) error {
	h, err := store.Open(ctx)
	if err != nil {
		return err
	}
	defer h.Close()

	var list []*marksync.Bookmark

	if tag := c.String("tag"); tag != "" {
		if h.DB == nil {
			return fmt.Errorf("--tag is not supported by the %s backend", h.Backend)
		}
		list, err = h.DB.BookmarksByTag(ctx, tag)
	} else {
		list, err = h.Store.Export(ctx)
	}
	if err != nil {
		return err
	}

	if q := c.StringArg("query"); q != "" {
		list = tree.Search(list, q)
	}

	if c.Bool("count") {
		fmt.Fprintln(out(c), len(list))
		return nil
	}

	printBookmarks(out(c), list)
	return nil
}

func searchAction(ctx context.Context, c *cli.Command) error {
	q, err := requireArg(c, "query")
	if err != nil {
		return err
	}

	h, err := store.Open(ctx)
	if err != nil {
		return err
	}
	defer h.Close()

	var res []*marksync.Bookmark

	switch {
	case c.Bool("fuzzy"):
		list, err := h.Store.Export(ctx)
		if err != nil {
			return err
		}
		res = tree.FuzzySearch(list, q)

	case h.DB != nil:
		res, err = h.DB.QueryBookmarks(ctx, q)
		if err != nil {
			return err
		}

	default:
		list, err := h.Store.Export(ctx)
		if err != nil {
			return err
		}
		res = tree.Search(list, q)
	}

	printBookmarks(out(c), res)
	return nil
}
