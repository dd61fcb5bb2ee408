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

// Package store opens the bookmark Store selected in the configuration.
package store

import (
	"context"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/urfave/cli/v3"

	"github.com/blob42/marksync"
	"github.com/blob42/marksync/internal/database"
	"github.com/blob42/marksync/internal/store/redis"
	"github.com/blob42/marksync/pkg/config"
	"github.com/blob42/marksync/pkg/logging"
	bksync "github.com/blob42/marksync/pkg/sync"
)

var log = logging.GetLogger("STORE")

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"

	// global option overriding [store].backend, exposed as --store
	GlobalBackendOpt = "store"
)

var ErrNoTx = errors.New("backend does not support transactions")

// Config is the [store] section of the config file
type Config struct {
	Backend string `toml:"backend" mapstructure:"backend"`
}

var Conf = &Config{
	Backend: BackendSQLite,
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Backend, validation.Required, validation.In(BackendSQLite, BackendRedis)),
	)
}

// Handle is an opened backend
type Handle struct {
	Backend string
	Store   bksync.Store

	// set for the sqlite backend
	DB *database.DB

	closers []func() error
}

// Open opens the configured backend. The sqlite database is locked until
// Close when [database].lock is set.
func Open(ctx context.Context) (*Handle, error) {
	h := &Handle{Backend: Conf.Backend}

	switch Conf.Backend {
	case BackendSQLite:
		path, err := database.Conf.DBPath()
		if err != nil {
			return nil, err
		}

		if database.Conf.Lock {
			lock, err := database.LockFile(database.LockPath(path))
			if err != nil {
				return nil, err
			}
			h.closers = append(h.closers, lock.Unlock)
		}

		db, err := database.Open(ctx, path)
		if err != nil {
			h.Close()
			return nil, err
		}
		h.DB = db
		h.Store = db.Store()
		h.closers = append(h.closers, db.Close)

	case BackendRedis:
		st, client, err := redis.Conf.Open(ctx)
		if err != nil {
			return nil, err
		}
		h.Store = st
		h.closers = append(h.closers, client.Close)

	default:
		return nil, fmt.Errorf("unknown store backend %q", Conf.Backend)
	}

	log.Debug("opened store", "backend", h.Backend)
	return h, nil
}

// Sync runs engine against the store. With atomic set the run is wrapped in
// a transaction, only the sqlite backend supports it.
func (h *Handle) Sync(ctx context.Context, engine *bksync.Engine, c *marksync.Collection, atomic bool) (bksync.Stats, error) {
	if !atomic {
		return engine.Run(ctx, c, h.Store)
	}
	if h.DB == nil {
		return bksync.Stats{}, fmt.Errorf("%w: %s", ErrNoTx, h.Backend)
	}
	return h.DB.SyncTx(ctx, engine, c)
}

// Annotate writes the summary and tags of the record id
func (h *Handle) Annotate(ctx context.Context, id marksync.ID, summary string, tags []string) error {
	as, ok := h.Store.(marksync.AnnotationStore)
	if !ok {
		return fmt.Errorf("backend %s does not store annotations", h.Backend)
	}

	found, err := as.Annotate(ctx, id, summary, tags)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %s", bksync.ErrNotFound, id)
	}
	return nil
}

// Close releases the backend resources in reverse order
func (h *Handle) Close() error {
	var errs []error
	for i := len(h.closers) - 1; i >= 0; i-- {
		errs = append(errs, h.closers[i]())
	}
	h.closers = nil
	return errors.Join(errs...)
}

func applyGlobalBackend(_ context.Context, _ *cli.Command) error {
	v, err := config.GetGlobalOption(GlobalBackendOpt)
	if err != nil {
		return err
	}
	if backend, _ := v.(string); backend != "" {
		Conf.Backend = backend
	}
	return Conf.Validate()
}

func init() {
	config.RegisterConfigurator("store", config.AsConfigurator(Conf))
	config.RegisterGlobalOption(GlobalBackendOpt, "")
	config.RegisterConfReadyHooks(applyGlobalBackend)
}
