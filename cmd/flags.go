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

	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"

	"github.com/blob42/marksync/internal/utils"
	"github.com/blob42/marksync/pkg/config"
	"github.com/blob42/marksync/pkg/logging"
	bksync "github.com/blob42/marksync/pkg/sync"
)

func MainFlags() []cli.Flag {
	return []cli.Flag{
		logging.DebugFlag,

		&cli.BoolFlag{
			Name:    "silent",
			Aliases: []string{"S"},
			Usage:   "disable all log output",
			Action: func(_ context.Context, _ *cli.Command, val bool) error {
				if val {
					logging.SilentMode = true
					logging.SetLevel(logging.Silent)
				}
				return nil
			},
		},

		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Value:       config.DefaultConfPath(),
			Usage:       "config `path`",
			DefaultText: utils.Shorten(config.DefaultConfPath(), 48),
			Destination: &config.ConfigFileFlag,
		},

		&cli.StringFlag{
			Name:    "db",
			Usage:   "`path` of the sqlite store",
			Sources: cli.NewValueSourceChain(toml.TOML("database.path", altsrc.NewStringPtrSourcer(&config.ConfigFileFlag))),
		},
	}
}

// flags shared by the commands running a synchronization
func syncFlags() []cli.Flag {
	return []cli.Flag{
		formatFlag(),
		&cli.StringSliceFlag{
			Name:  "compare",
			Usage: "`fields` compared to detect changed bookmarks {title, url, icon}",
		},
		&cli.BoolFlag{
			Name:    "dry-run",
			Aliases: []string{"n"},
			Usage:   "only report what would change",
		},
		&cli.BoolFlag{
			Name:  "tx",
			Usage: "run the synchronization in a single transaction (sqlite only)",
		},
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "auto",
		Usage:   "input `format` {auto, html, csv, chrome}",
	}
}

// engineFromFlags returns the engine of the [sync] section with the flags
// applied on top
func engineFromFlags(c *cli.Command) (*bksync.Engine, error) {
	engine, err := bksync.Conf.Engine()
	if err != nil {
		return nil, err
	}

	if c.IsSet("compare") {
		fields, err := bksync.ParseFields(c.StringSlice("compare")...)
		if err != nil {
			return nil, err
		}
		engine.Fields = fields
	}

	if c.IsSet("dry-run") {
		engine.DryRun = c.Bool("dry-run")
	}

	return engine, nil
}
