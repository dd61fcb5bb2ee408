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
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/blob42/marksync/internal/utils"
)

const (
	ConfigFileName = "config.toml"
	ConfigDirName  = "marksync"
)

// ConfigDir returns the marksync directory under the user config dir
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not get config dir: %w", err)
	}
	if configDir == "" {
		return "", errors.New("could not get config dir")
	}

	return filepath.Join(configDir, ConfigDirName), nil
}

// DefaultConfPath returns the path of the config file used when none is given
func DefaultConfPath() string {
	dir, err := ConfigDir()
	if err != nil {
		log.Warn("using config file from current directory", "err", err)
		return ConfigFileName
	}
	return filepath.Join(dir, ConfigFileName)
}

func ConfigExists(path string) (bool, error) {
	return utils.CheckFileExists(path)
}

// InitConfigFile writes all registered options to a toml file at path
func InitConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create config dir: %w", err)
	}

	configFile, err := os.Create(path)
	if err != nil {
		return err
	}
	defer configFile.Close()

	allConf := GetAll()

	tomlEncoder := toml.NewEncoder(configFile)
	tomlEncoder.Indent = ""
	return tomlEncoder.Encode(&allConf)
}

// LoadFromTomlFile loads the toml file at path into the registered sections
func LoadFromTomlFile(path string) error {
	buffer := make(Config)
	_, err := toml.DecodeFile(path, &buffer)
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}

	for k, val := range buffer {
		if _, ok := configs[k]; !ok {
			log.Debugf("creating config section [%s]", k)
			configs[k] = make(Config)
		}
		if err = configs[k].MapFrom(val); err != nil {
			return fmt.Errorf("parsing config <%s>: %w", k, err)
		}
	}

	return nil
}

// Init loads the config file at path, creating it with the defaults when it
// does not exist, then validates the loaded options. An empty path uses
// DefaultConfPath.
func Init(path string) error {
	if path == "" {
		path = DefaultConfPath()
	}

	exists, err := ConfigExists(path)
	if err != nil {
		return err
	}

	if !exists {
		log.Info("creating default config", "path", path)
		if err = InitConfigFile(path); err != nil {
			return err
		}
	} else if err = LoadFromTomlFile(path); err != nil {
		return err
	}

	return Validate()
}
