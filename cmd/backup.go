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

	"github.com/blob42/marksync/internal/store"
	"github.com/blob42/marksync/internal/utils"
)

func backupCmd() *cli.Command {
	return &cli.Command{
		Name:      "backup",
		Usage:     "copy the sqlite store to PATH",
		ArgsUsage: "PATH",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "path", Config: cli.StringConfig{TrimSpace: true}},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			arg, err := requireArg(c, "path")
			if err != nil {
				return err
			}
			path, err := utils.ExpandPath(arg)
			if err != nil {
				return err
			}

			h, err := store.Open(ctx)
			if err != nil {
				return err
			}
			defer h.Close()

			if h.DB == nil {
				return fmt.Errorf("backup is not supported by the %s backend", h.Backend)
			}

			if err = h.DB.BackupToDisk(ctx, path); err != nil {
				return err
			}
			fmt.Fprintf(out(c), "backup written to %s\n", path)
			return nil
		},
	}
}
