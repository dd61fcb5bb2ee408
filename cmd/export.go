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
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/blob42/marksync/internal/store"
	"github.com/blob42/marksync/internal/utils"
	"github.com/blob42/marksync/pkg/parsing"
	"github.com/blob42/marksync/pkg/tree"
)

func exportCmds() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "export the store to other formats",
		Commands: []*cli.Command{
			exportHTMLCmd(),
		},
	}
}

func exportHTMLCmd() *cli.Command {
	return &cli.Command{
		Name:        "html",
		Usage:       "export bookmarks to the Netscape bookmark format (HTML)",
		Description: `Writes all bookmarks with their folders in a file any browser can import.`,
		ArgsUsage:   "PATH|-",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "path", Config: cli.StringConfig{TrimSpace: true}},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "force", Usage: "overwrite an existing file"},
		},
		Action: exportToHTML,
	}
}

func exportToHTML(ctx context.Context, c *cli.Command) error {
	path, err := requireArg(c, "path")
	if err != nil {
		return err
	}

	if path != "-" {
		if path, err = utils.ExpandPath(path); err != nil {
			return err
		}
		exists, err := utils.CheckFileExists(path)
		if err != nil {
			return err
		}
		if exists && !c.Bool("force") {
			return fmt.Errorf("file %s already exists. Use --force to overwrite", path)
		}
	}

	h, err := store.Open(ctx)
	if err != nil {
		return err
	}
	defer h.Close()

	list, err := h.Store.Export(ctx)
	if err != nil {
		return err
	}

	coll := tree.Build(h.Backend, time.Now(), list)

	if path == "-" {
		return parsing.WriteHTML(out(c), coll.Root)
	}

	var buf bytes.Buffer
	if err = parsing.WriteHTML(&buf, coll.Root); err != nil {
		return err
	}
	if err = os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write to %s: %w", path, err)
	}

	log.Info("exported", "bookmarks", len(list), "path", path)
	return nil
}
