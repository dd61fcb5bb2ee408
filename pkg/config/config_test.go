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
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

type testConf struct {
	Name     string        `toml:"name" mapstructure:"name"`
	Interval time.Duration `toml:"interval" mapstructure:"interval"`
	Fields   []string      `toml:"fields" mapstructure:"fields"`
	Retries  int           `toml:"retries" mapstructure:"retries"`
}

func (c *testConf) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Fields, validation.Each(validation.In("a", "b"))),
	)
}

func register(t *testing.T) *testConf {
	t.Helper()
	conf := &testConf{Name: "default", Interval: time.Second, Fields: []string{"a"}}
	RegisterConfigurator("testconf", AsConfigurator(conf))
	t.Cleanup(func() { unregister("testconf", "extra") })
	return conf
}

func TestInitCreatesDefaultFile(t *testing.T) {
	conf := register(t)
	path := filepath.Join(t.TempDir(), "sub", ConfigFileName)

	require.NoError(t, Init(path))
	exists, err := ConfigExists(path)
	require.NoError(t, err)
	assert.True(t, exists)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[testconf]")
	assert.Contains(t, string(raw), `interval = "1s"`)

	// the written file loads back into the same values
	conf.Name = "changed"
	require.NoError(t, LoadFromTomlFile(path))
	assert.Equal(t, "default", conf.Name)
	assert.Equal(t, time.Second, conf.Interval)
}

func TestLoadFromTomlFile(t *testing.T) {
	conf := register(t)
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`
[testconf]
name = "from file"
interval = "1m30s"
fields = ["a", "b"]
retries = 3

[extra]
key = "value"
`), 0644))

	require.NoError(t, Init(path))
	assert.Equal(t, "from file", conf.Name)
	assert.Equal(t, 90*time.Second, conf.Interval)
	assert.Equal(t, []string{"a", "b"}, conf.Fields)
	assert.Equal(t, 3, conf.Retries)

	v, err := GetOpt("extra", "key")
	require.NoError(t, err)
	assert.Equal(t, "value", v)

	v, err = GetOpt("testconf", "Retries")
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

func TestInitValidates(t *testing.T) {
	register(t)
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`
[testconf]
name = "x"
fields = ["a", "zzz"]
`), 0644))

	err := Init(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "testconf")
}

func TestBadDuration(t *testing.T) {
	register(t)
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("[testconf]\ninterval = \"soon\"\n"), 0644))

	assert.Error(t, LoadFromTomlFile(path))
}

func TestAutoConfigurator(t *testing.T) {
	conf := &testConf{}
	ac := AsConfigurator(conf)

	require.NoError(t, ac.Set("Name", "x"))
	assert.Equal(t, "x", conf.Name)
	v, err := ac.Get("Name")
	require.NoError(t, err)
	assert.Equal(t, "x", v)

	assert.Error(t, ac.Set("Nope", 1))
	_, err = ac.Get("Nope")
	assert.Error(t, err)
	assert.Contains(t, ac.Dump(), "Interval")
}

func TestGlobalFlags(t *testing.T) {
	RegisterGlobalOption("test_backend", "sqlite")
	t.Cleanup(func() { delete(configs[GlobalConfigName].(Config), "test_backend") })

	flags := SetupGlobalFlags()
	var names []string
	for _, f := range flags {
		names = append(names, f.Names()...)
	}
	assert.Contains(t, names, "test-backend")

	cmd := &cli.Command{
		Name:  "test",
		Flags: flags,
		Action: func(_ context.Context, cmd *cli.Command) error {
			return ApplyGlobalFlags(cmd)
		},
	}
	require.NoError(t, cmd.Run(context.Background(), []string{"test", "--test-backend", "redis"}))

	v, err := GetGlobalOption("test_backend")
	require.NoError(t, err)
	assert.Equal(t, "redis", v)
}

func TestRunConfHooks(t *testing.T) {
	saved := ConfReadyHooks
	t.Cleanup(func() { ConfReadyHooks = saved })
	ConfReadyHooks = nil

	var calls int
	boom := errors.New("boom")
	RegisterConfReadyHooks(
		func(context.Context, *cli.Command) error { calls++; return nil },
		func(context.Context, *cli.Command) error { return boom },
		func(context.Context, *cli.Command) error { calls++; return nil },
	)

	err := RunConfHooks(context.Background(), &cli.Command{})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}
