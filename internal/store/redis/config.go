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

package redis

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/redis/go-redis/v9"

	"github.com/blob42/marksync/pkg/config"
)

// Config is the [redis] section of the config file
type Config struct {
	Addr     string `toml:"addr" mapstructure:"addr"`
	Username string `toml:"username" mapstructure:"username"`
	Password string `toml:"password" mapstructure:"password"`
	DB       int    `toml:"db" mapstructure:"db"`

	// Namespace of all keys
	Prefix string `toml:"prefix" mapstructure:"prefix"`

	ConnectTimeout time.Duration `toml:"connect_timeout" mapstructure:"connect_timeout"`
	RetryInterval  time.Duration `toml:"retry_interval" mapstructure:"retry_interval"`
	MaxWait        time.Duration `toml:"max_wait" mapstructure:"max_wait"`
	PingTimeout    time.Duration `toml:"ping_timeout" mapstructure:"ping_timeout"`
}

var Conf = &Config{
	Addr:           "localhost:6379",
	Prefix:         DefaultPrefix,
	ConnectTimeout: 30 * time.Second,
	RetryInterval:  time.Second,
	MaxWait:        10 * time.Second,
	PingTimeout:    2 * time.Second,
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Addr, validation.Required, is.DialString),
		validation.Field(&c.DB, validation.Min(0), validation.Max(15)),
		validation.Field(&c.Prefix, validation.Required),
		validation.Field(&c.ConnectTimeout, validation.Required),
		validation.Field(&c.RetryInterval, validation.Required),
		validation.Field(&c.MaxWait, validation.Required),
		validation.Field(&c.PingTimeout, validation.Required),
	)
}

func (c *Config) ConnectOptions() ConnectOptions {
	return ConnectOptions{
		Addr:           c.Addr,
		Username:       c.Username,
		Password:       c.Password,
		DB:             c.DB,
		ConnectTimeout: c.ConnectTimeout,
		RetryInterval:  c.RetryInterval,
		MaxWait:        c.MaxWait,
		PingTimeout:    c.PingTimeout,
		WarnThreshold:  3,
	}
}

// Open connects to the configured server and returns a store with the
// client that must be closed by the caller
func (c *Config) Open(ctx context.Context) (*Store, *redis.Client, error) {
	client, err := Connect(ctx, c.ConnectOptions())
	if err != nil {
		return nil, nil, err
	}
	return NewStore(client, c.Prefix), client, nil
}

func init() {
	config.RegisterConfigurator("redis", config.AsConfigurator(Conf))
}
