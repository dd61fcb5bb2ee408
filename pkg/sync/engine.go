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

// Package sync reconciles a parsed bookmark collection with a Store.
//
// A run flattens the collection, deduplicates it by url (last occurrence
// wins) and diffs it against the store export. Matched records are updated
// when one of the compare fields changed, unknown urls are added and stored
// records missing from the import are deleted. A run is not atomic: a store
// error stops the run and leaves the operations already applied in place.
// Wrap the store in a transaction to get all or nothing semantics.
package sync

import (
	"context"
	"errors"

	"github.com/blob42/marksync"
	"github.com/blob42/marksync/pkg/logging"
	"github.com/blob42/marksync/pkg/tree"
)

var log = logging.GetLogger("SYNC")

type Engine struct {
	// Fields compared to detect a changed record
	Fields []Field

	// Compute the plan without mutating the store
	DryRun bool
}

// Plan computes the operations reconciling store with c without applying
// them.
func (e *Engine) Plan(ctx context.Context, c *marksync.Collection, store Store) (*Plan, error) {
	next := tree.Dedupe(tree.Flatten(c))

	existing, err := store.Export(ctx)
	if err != nil {
		return nil, &SyncFailedError{
			Stats: Stats{TotalNew: len(next)},
			Err:   err,
		}
	}

	plan := Diff(next, existing, e.Fields)
	log.Debugf("plan for <%s>: %d ops over %d new and %d existing",
		c.SourceName, len(plan.Ops), plan.TotalNew, plan.TotalExisting)

	return plan, nil
}

// Run synchronizes store with c. On a store failure the returned stats count
// what was applied and the error is a *SyncFailedError.
func (e *Engine) Run(ctx context.Context, c *marksync.Collection, store Store) (Stats, error) {
	plan, err := e.Plan(ctx, c, store)
	if err != nil {
		var sfe *SyncFailedError
		if errors.As(err, &sfe) {
			return sfe.Stats, err
		}
		return Stats{}, err
	}

	if e.DryRun {
		log.Info("dry run", "source", c.SourceName, "stats", plan.Stats())
		return plan.Stats(), nil
	}

	return Apply(ctx, store, plan)
}

// Apply issues the operations of plan in order and stops at the first
// failure.
func Apply(ctx context.Context, store Store, plan *Plan) (Stats, error) {
	stats := Stats{
		TotalNew:      plan.TotalNew,
		TotalExisting: plan.TotalExisting,
	}

	for i := range plan.Ops {
		op := &plan.Ops[i]

		if err := ctx.Err(); err != nil {
			return stats, &SyncFailedError{Op: op, Stats: stats, Err: err}
		}

		if err := applyOp(ctx, store, op); err != nil {
			log.Error("store operation failed", "op", op, "err", err)
			return stats, &SyncFailedError{Op: op, Stats: stats, Err: err}
		}

		stats.count(op.Action)
	}

	log.Info("synchronized", "stats", stats)
	return stats, nil
}

func applyOp(ctx context.Context, store Store, op *Op) error {
	switch op.Action {
	case ActionAdd:
		id, err := store.Create(ctx, op.Bookmark)
		if err != nil {
			return err
		}
		op.ID = id
		op.Bookmark.ID = id
		log.Debug("added", "url", op.Bookmark.URL, "id", id)

	case ActionUpdate:
		ok, err := store.Update(ctx, op.ID, op.Bookmark)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
		if op.Previous != nil && op.Previous.Title != op.Bookmark.Title {
			log.Debug("title changed", "url", op.Bookmark.URL,
				"old", op.Previous.Title, "new", op.Bookmark.Title)
		}
		log.Debug("updated", "url", op.Bookmark.URL, "id", op.ID, "changed", op.Changed)

	case ActionDelete:
		ok, err := store.Delete(ctx, op.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
		log.Debug("deleted", "url", op.Bookmark.URL, "id", op.ID)
	}

	return nil
}

// Sync runs a synchronization of c into store comparing fields. With no
// fields only the title is compared.
func Sync(ctx context.Context, c *marksync.Collection, store Store, fields ...Field) (Stats, error) {
	e := &Engine{Fields: fields}
	return e.Run(ctx, c, store)
}
