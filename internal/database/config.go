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

package database

import (
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/blob42/marksync/internal/utils"
	"github.com/blob42/marksync/pkg/config"
)

// Config is the [database] section of the config file
type Config struct {
	// Path of the sqlite file, defaults to $XDG_DATA_HOME/marksync/marksync.sqlite
	Path string `toml:"path" mapstructure:"path"`

	// Hold a lock file while writing
	Lock bool `toml:"lock" mapstructure:"lock"`
}

var Conf = &Config{
	Lock: true,
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Length(0, 4096)),
	)
}

// DBPath returns the expanded database path
func (c *Config) DBPath() (string, error) {
	if c.Path != "" {
		return utils.ExpandPath(c.Path)
	}

	dir, err := utils.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DBFileName), nil
}

func init() {
	config.RegisterConfigurator("database", config.AsConfigurator(Conf))
}
