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
)

func annotateCmd() *cli.Command {
	return &cli.Command{
		Name:      "annotate",
		Usage:     "set the summary and tags of a stored bookmark",
		ArgsUsage: "ID",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id", Config: cli.StringConfig{TrimSpace: true}},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "summary", Usage: "summary `text`"},
			&cli.StringSliceFlag{Name: "tag", Aliases: []string{"t"}, Usage: "`tag`, can be repeated"},
		},
		Action: annotateAction,
	}
}

func annotateAction(ctx context.Context, c *cli.Command) error {
	id, err := requireArg(c, "id")
	if err != nil {
		return err
	}

	h, err := store.Open(ctx)
	if err != nil {
		return err
	}
	defer h.Close()

	tags := c.StringSlice("tag")
	if err = h.Annotate(ctx, marksync.ID(id), c.String("summary"), tags); err != nil {
		return err
	}

	fmt.Fprintf(out(c), "annotated %s with %d tags\n", id, len(tags))
	return nil
}
