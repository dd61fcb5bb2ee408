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

// Package config holds the configuration registry. Each package registers its
// options under its own section which maps to a table of the toml config
// file. Global options live under [global] and are exposed as cli flags.
package config

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/fatih/structs"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/mitchellh/mapstructure"
	"github.com/urfave/cli/v3"

	"github.com/blob42/marksync/pkg/logging"
)

type Hook func(ctx context.Context, cmd *cli.Command) error

var (
	log            = logging.GetLogger("CONF")
	ConfReadyHooks []Hook
	configs        = map[string]Configurator{
		GlobalConfigName: make(Config),
	}
)

const (
	GlobalConfigName = "global"
)

// A Configurator allows packages to set and access options which can be
// mapped to any output format (toml, cli flags, env variables ...)
type Configurator interface {
	Set(opt string, v any) error
	Get(opt string) (any, error)
	Dump() map[string]any
	MapFrom(any) error
}

// Config is a free form section
type Config map[string]any

func (c Config) Set(opt string, v any) error {
	c[opt] = v
	return nil
}

func (c Config) Get(opt string) (any, error) {
	v, ok := c[opt]
	if !ok {
		return nil, fmt.Errorf("%s option not defined", opt)
	}
	return v, nil
}

func (c Config) Dump() map[string]any {
	return c
}

// MapFrom merges the keys of a decoded toml table
func (c Config) MapFrom(src any) error {
	m, ok := src.(map[string]any)
	if !ok {
		return fmt.Errorf("cannot map %T into section", src)
	}
	for k, v := range m {
		c[k] = v
	}
	return nil
}

// AutoConfigurator exposes the fields of a struct pointer as options
type AutoConfigurator struct {
	c any
}

func (ac AutoConfigurator) Set(opt string, v any) error {
	f, ok := structs.New(ac.c).FieldOk(opt)
	if !ok {
		return fmt.Errorf("%s option not defined", opt)
	}
	return f.Set(v)
}

func (ac AutoConfigurator) Get(opt string) (any, error) {
	f, ok := structs.New(ac.c).FieldOk(opt)
	if !ok {
		return nil, fmt.Errorf("%s option not defined", opt)
	}
	return f.Value(), nil
}

func (ac AutoConfigurator) Dump() map[string]any {
	return structs.New(ac.c).Map()
}

func (ac AutoConfigurator) MapFrom(src any) error {
	log.Debugf("mapping %#v into %T", src, ac.c)
	dec, err := newDecoder(ac.c)
	if err != nil {
		return err
	}
	return dec.Decode(src)
}

func newDecoder(result any) (*mapstructure.Decoder, error) {
	conf := *mapDecoderConfig
	conf.Result = result
	return mapstructure.NewDecoder(&conf)
}

// AsConfigurator implements a default Configurator for a struct pointer.
// Use this to register package options.
func AsConfigurator(c any) Configurator {
	return AutoConfigurator{c}
}

// RegisterConfigurator registers c under the section name
func RegisterConfigurator(name string, c Configurator) {
	log.Debugf("registering configurator %s", name)
	configs[name] = c
}

// Register a global option ie. under [global] in toml file
func RegisterGlobalOption(key string, val any) {
	log.Debugf("registering global option %s = %v", key, val)
	_ = configs[GlobalConfigName].Set(key, val)
}

// GetGlobalOption returns the value of a global option
func GetGlobalOption(key string) (any, error) {
	return configs[GlobalConfigName].Get(key)
}

// GetOpt returns an option value given a section name and option name
func GetOpt(section string, opt string) (any, error) {
	if c, ok := configs[section]; ok {
		return c.Get(opt)
	}
	return nil, fmt.Errorf("section %s not found", section)
}

// Get returns the Configurator registered under name or nil
func Get(name string) Configurator {
	return configs[name]
}

// Sections returns the registered section names in order
func Sections() []string {
	res := make([]string, 0, len(configs))
	for k := range configs {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}

// GetAll returns all configs keyed by section
func GetAll() Config {
	result := make(Config)
	for k, c := range configs {
		if ac, ok := c.(AutoConfigurator); ok {
			result[k] = ac.c
		} else {
			result[k] = c
		}
	}
	return result
}

// Validate checks every section implementing validation.Validatable
func Validate() error {
	for _, name := range Sections() {
		var target any = configs[name]
		if ac, ok := target.(AutoConfigurator); ok {
			target = ac.c
		}
		v, ok := target.(validation.Validatable)
		if !ok {
			continue
		}
		if err := v.Validate(); err != nil {
			return fmt.Errorf("config [%s]: %w", name, err)
		}
	}
	return nil
}

// Hooks registered here are executed after the config has been loaded
func RegisterConfReadyHooks(hooks ...Hook) {
	ConfReadyHooks = append(ConfReadyHooks, hooks...)
}

// RunConfHooks runs all registered config hooks and stops at the first error
func RunConfHooks(ctx context.Context, cmd *cli.Command) error {
	log.Debug("running config hooks")
	for _, f := range ConfReadyHooks {
		if err := f(ctx, cmd); err != nil {
			return fmt.Errorf("config hook: %w", err)
		}
	}
	return nil
}

// unregister is used by tests
func unregister(names ...string) {
	for name := range configs {
		if slices.Contains(names, name) {
			delete(configs, name)
		}
	}
}
