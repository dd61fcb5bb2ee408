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

package watch

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/blob42/marksync/pkg/config"
)

// Config is the [watch] section of the config file
type Config struct {
	// Quiet period after the last event before running an import
	Debounce time.Duration `toml:"debounce" mapstructure:"debounce"`
}

var Conf = &Config{
	Debounce: 500 * time.Millisecond,
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Debounce, validation.Min(10*time.Millisecond)),
	)
}

func init() {
	config.RegisterConfigurator("watch", config.AsConfigurator(Conf))
}
