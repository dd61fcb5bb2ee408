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
	"errors"

	"github.com/teris-io/shortid"
	"github.com/urfave/cli/v3"

	"github.com/blob42/marksync"
	"github.com/blob42/marksync/internal/store"
	bksync "github.com/blob42/marksync/pkg/sync"
)

func importCmd() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Aliases:   []string{"i"},
		Usage:     "synchronize the store with a bookmark file",
		ArgsUsage: "FILE|-",
		Description: `Parses FILE and makes the store mirror it: new urls are added,
changed bookmarks are updated and stored urls missing from FILE are deleted.`,
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "file", Config: cli.StringConfig{TrimSpace: true}},
		},
		Flags:  syncFlags(),
		Action: importAction,
	}
}

func planCmd() *cli.Command {
	return &cli.Command{
		Name:      "plan",
		Usage:     "show the operations an import would apply",
		ArgsUsage: "FILE|-",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "file", Config: cli.StringConfig{TrimSpace: true}},
		},
		Flags: []cli.Flag{
			formatFlag(),
			&cli.StringSliceFlag{Name: "compare", Usage: "`fields` compared to detect changed bookmarks"},
		},
		Action: planAction,
	}
}

func importAction(ctx context.Context, c *cli.Command) error {
	path, err := requireArg(c, "file")
	if err != nil {
		return err
	}

	coll, _, err := parseFile(c, path)
	if err != nil {
		return err
	}

	return syncCollection(ctx, c, coll)
}

func syncCollection(ctx context.Context, c *cli.Command, coll *marksync.Collection) error {
	engine, err := engineFromFlags(c)
	if err != nil {
		return err
	}

	h, err := store.Open(ctx)
	if err != nil {
		return err
	}
	defer h.Close()

	runID := shortid.MustGenerate()
	log.Info("import", "run", runID, "source", coll.SourceName, "backend", h.Backend)

	stats, err := h.Sync(ctx, engine, coll, c.Bool("tx"))

	var sfe *bksync.SyncFailedError
	if err == nil || errors.As(err, &sfe) {
		printStats(out(c), runID, stats, engine.DryRun)
	}
	return err
}

func planAction(ctx context.Context, c *cli.Command) error {
	path, err := requireArg(c, "file")
	if err != nil {
		return err
	}

	coll, _, err := parseFile(c, path)
	if err != nil {
		return err
	}

	engine, err := engineFromFlags(c)
	if err != nil {
		return err
	}

	h, err := store.Open(ctx)
	if err != nil {
		return err
	}
	defer h.Close()

	plan, err := engine.Plan(ctx, coll, h.Store)
	if err != nil {
		return err
	}

	w := out(c)
	for _, op := range plan.Ops {
		printOp(w, op)
	}
	printStats(w, "plan", plan.Stats(), true)

	return nil
}
