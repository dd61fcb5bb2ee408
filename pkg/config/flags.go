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

package config

import (
	"fmt"
	"sort"

	"github.com/gobuffalo/flect"
	"github.com/urfave/cli/v3"
)

// Path of the config file, set from the --config flag
var ConfigFileFlag string

// SetupGlobalFlags returns a cli flag for every global option
func SetupGlobalFlags() []cli.Flag {
	log.Debugf("setting up global flags")
	flags := []cli.Flag{}
	global := configs[GlobalConfigName].Dump()

	for _, k := range sortedKeys(global) {
		optName := flect.Dasherize(k)

		switch val := global[k].(type) {
		case string:
			flags = append(flags, &cli.StringFlag{
				Category: "global",
				Name:     optName,
				Value:    val,
			})

		case int:
			flags = append(flags, &cli.IntFlag{
				Category: "global",
				Name:     optName,
				Value:    val,
			})

		case bool:
			flags = append(flags, &cli.BoolFlag{
				Category: "global",
				Name:     optName,
				Value:    val,
			})

		default:
			log.Warnf("unsupported type %T for global option %s", val, optName)
		}
	}

	return flags
}

// ApplyGlobalFlags copies the global flags set on the command line back into
// the global options. Flags have priority over the config file.
func ApplyGlobalFlags(cmd *cli.Command) error {
	global := configs[GlobalConfigName]
	for k := range global.Dump() {
		optName := flect.Dasherize(k)
		if !cmd.IsSet(optName) {
			continue
		}
		if err := global.Set(k, cmd.Value(optName)); err != nil {
			return fmt.Errorf("global option %s: %w", k, err)
		}
	}
	return nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
