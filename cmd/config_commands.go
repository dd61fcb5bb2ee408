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
	"path/filepath"

	"github.com/kr/pretty"
	"github.com/urfave/cli/v3"

	"github.com/blob42/marksync/internal/utils"
	"github.com/blob42/marksync/pkg/config"
)

func configCmds() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "manage the config file",
		Commands: []*cli.Command{
			{
				Name:  "print",
				Usage: "print the effective configuration",
				Action: func(_ context.Context, c *cli.Command) error {
					_, err := pretty.Fprintf(out(c), "%# v\n", config.GetAll())
					return err
				},
			},
			{
				Name:      "init",
				Usage:     "write the effective configuration to PATH (a file or a directory), the --config path by default",
				ArgsUsage: "[PATH]",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path", Config: cli.StringConfig{TrimSpace: true}},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "force", Usage: "overwrite an existing file"},
				},
				Action: configInitAction,
			},
		},
	}
}

func configInitAction(_ context.Context, c *cli.Command) error {
	path := c.StringArg("path")
	if path == "" {
		path = config.ConfigFileFlag
	}

	path, err := utils.ExpandPath(path)
	if err != nil {
		return err
	}

	// a directory receives the default file name
	isDir, err := utils.CheckDirExists(path)
	if err != nil {
		return err
	}
	if isDir {
		path = filepath.Join(path, config.ConfigFileName)
	}

	exists, err := config.ConfigExists(path)
	if err != nil {
		return err
	}
	if exists && !c.Bool("force") {
		return fmt.Errorf("%s already exists. Use --force to overwrite", path)
	}

	if err = config.InitConfigFile(path); err != nil {
		return err
	}
	fmt.Fprintf(out(c), "config written to %s\n", path)
	return nil
}
