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
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/blob42/marksync"
	"github.com/blob42/marksync/internal/utils"
	"github.com/blob42/marksync/pkg/parsing"
)

// readInput reads path, "-" reads the standard input
func readInput(c *cli.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(c.Root().Reader)
	}

	expanded, err := utils.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(expanded)
}

func parseFile(c *cli.Command, path string) (*marksync.Collection, *parsing.Parser, error) {
	format, err := parsing.ParseFormat(c.String("format"))
	if err != nil {
		return nil, nil, err
	}

	raw, err := readInput(c, path)
	if err != nil {
		return nil, nil, err
	}

	source := filepath.Base(path)
	if path == "-" {
		source = "stdin"
	}

	p := parsing.New(parsing.WithSourceName(source), parsing.WithFormat(format))
	coll, err := p.Parse(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	return coll, p, nil
}
