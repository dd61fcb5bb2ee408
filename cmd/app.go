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

// Package cmd implements the marksync command line.
package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/blob42/marksync/internal/database"
	"github.com/blob42/marksync/pkg/build"
	"github.com/blob42/marksync/pkg/config"
	"github.com/blob42/marksync/pkg/logging"
)

var log = logging.GetLogger("CMD")

// NewApp returns the root command. Commands and flags are created on each
// call, a cli.Command keeps state once run.
func NewApp() *cli.Command {
	flags := MainFlags()
	flags = append(flags, config.SetupGlobalFlags()...)

	return &cli.Command{
		Name:                  "marksync",
		Usage:                 "Synchronize exported bookmark files with a bookmark store",
		Version:               build.Version(),
		Suggest:               true,
		EnableShellCompletion: true,
		Flags:                 flags,
		Before:                beforeHook,
		Commands: []*cli.Command{
			importCmd(),
			planCmd(),
			watchCmd(),
			parseCmd(),
			listCmd(),
			searchCmd(),
			annotateCmd(),
			exportCmds(),
			backupCmd(),
			configCmds(),
			versionCmd(),
		},
	}
}

// The order matters here:
//
// 1. load the config file, creating it with the defaults if missing
// 2. flags override the file values
// 3. conf ready hooks run once all options are final
func beforeHook(ctx context.Context, c *cli.Command) (context.Context, error) {
	if err := config.Init(config.ConfigFileFlag); err != nil {
		return ctx, err
	}

	if err := config.ApplyGlobalFlags(c); err != nil {
		return ctx, err
	}

	if c.IsSet("db") {
		database.Conf.Path = c.String("db")
	}

	if err := config.RunConfHooks(ctx, c); err != nil {
		return ctx, err
	}

	return ctx, nil
}

func out(c *cli.Command) io.Writer {
	return c.Root().Writer
}

func requireArg(c *cli.Command, name string) (string, error) {
	v := c.StringArg(name)
	if v == "" {
		return "", fmt.Errorf("missing argument <%s>", name)
	}
	return v, nil
}
