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

package sync

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/blob42/marksync/pkg/config"
)

// Config is the [sync] section of the config file
type Config struct {
	// Fields compared to detect changed records
	CompareFields []string `toml:"compare_fields" mapstructure:"compare_fields"`

	// Only report what a sync would do
	DryRun bool `toml:"dry_run" mapstructure:"dry_run"`
}

var Conf = &Config{
	CompareFields: []string{string(FieldTitle)},
}

func (c *Config) Validate() error {
	known := make([]any, len(knownFields))
	for i, f := range knownFields {
		known[i] = string(f)
	}

	return validation.ValidateStruct(c,
		validation.Field(&c.CompareFields, validation.Each(validation.In(known...))),
	)
}

// Engine returns an engine set up from the config
func (c *Config) Engine() (*Engine, error) {
	fields, err := ParseFields(c.CompareFields...)
	if err != nil {
		return nil, err
	}
	return &Engine{Fields: fields, DryRun: c.DryRun}, nil
}

func init() {
	config.RegisterConfigurator("sync", config.AsConfigurator(Conf))
}
