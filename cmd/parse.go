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

	"github.com/kr/pretty"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/blob42/marksync/pkg/tree"
)

func parseCmd() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "parse a bookmark file and print its tree",
		ArgsUsage: "FILE|-",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "file", Config: cli.StringConfig{TrimSpace: true}},
		},
		Flags: []cli.Flag{
			formatFlag(),
			&cli.BoolFlag{Name: "yaml", Usage: "dump the collection as yaml"},
			&cli.BoolFlag{Name: "debug-dump", Usage: "dump the go structures", Hidden: true},
		},
		Action: parseAction,
	}
}

func parseAction(_ context.Context, c *cli.Command) error {
	path, err := requireArg(c, "file")
	if err != nil {
		return err
	}

	coll, p, err := parseFile(c, path)
	if err != nil {
		return err
	}

	w := out(c)

	switch {
	case c.Bool("yaml"):
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(coll); err != nil {
			return err
		}
		return enc.Close()

	case c.Bool("debug-dump"):
		_, err = pretty.Fprintf(w, "%# v\n", coll)
		return err
	}

	if err = tree.PrintTree(w, coll.Root); err != nil {
		return err
	}
	fmt.Fprintln(w, p.Stats())

	return nil
}
