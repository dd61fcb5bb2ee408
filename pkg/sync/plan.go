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
	"fmt"
	"strings"

	"github.com/blob42/marksync"
)

// Action is the mutation an Op applies to the store
type Action string

const (
	ActionAdd    Action = "add"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Op is a single store mutation.
type Op struct {
	Action Action

	// Store id of the record, empty for ActionAdd
	ID marksync.ID

	// Values written by add and update, the removed record for delete
	Bookmark *marksync.Bookmark

	// Stored record before an update
	Previous *marksync.Bookmark

	// Compare fields that triggered an update
	Changed []Field
}

func (op Op) String() string {
	switch op.Action {
	case ActionUpdate:
		changed := make([]string, len(op.Changed))
		for i, f := range op.Changed {
			changed[i] = string(f)
		}
		return fmt.Sprintf("%s %s [%s]", op.Action, op.Bookmark.URL, strings.Join(changed, ","))
	default:
		return fmt.Sprintf("%s %s", op.Action, op.Bookmark.URL)
	}
}

// Plan is the set of operations reconciling a store with an import.
type Plan struct {
	TotalNew      int
	TotalExisting int

	// Adds and updates in import order, followed by deletes in store order
	Ops []Op
}

func (p *Plan) Added() []Op {
	return p.filterByAction(ActionAdd)
}

func (p *Plan) Updated() []Op {
	return p.filterByAction(ActionUpdate)
}

func (p *Plan) Deleted() []Op {
	return p.filterByAction(ActionDelete)
}

// Empty returns true when applying the plan would not change the store
func (p *Plan) Empty() bool {
	return len(p.Ops) == 0
}

// Stats returns the stats of a complete application of the plan
func (p *Plan) Stats() Stats {
	s := Stats{
		TotalNew:      p.TotalNew,
		TotalExisting: p.TotalExisting,
	}
	for _, op := range p.Ops {
		s.count(op.Action)
	}
	return s
}

func (p *Plan) filterByAction(action Action) []Op {
	var res []Op
	for _, op := range p.Ops {
		if op.Action == action {
			res = append(res, op)
		}
	}
	return res
}

// Diff computes the operations turning existing into next. next must already
// be deduplicated by url. Records are matched by exact url, a matched record
// is updated when one of fields differs.
func Diff(next, existing []*marksync.Bookmark, fields []Field) *Plan {
	fields = normalizeFields(fields)

	plan := &Plan{
		TotalNew:      len(next),
		TotalExisting: len(existing),
	}

	existingByURL := make(map[string]*marksync.Bookmark, len(existing))
	for _, b := range existing {
		existingByURL[b.URL] = b
	}

	newURLs := make(map[string]struct{}, len(next))
	for _, b := range next {
		newURLs[b.URL] = struct{}{}
	}

	for _, b := range next {
		prev, ok := existingByURL[b.URL]
		if !ok {
			plan.Ops = append(plan.Ops, Op{
				Action:   ActionAdd,
				Bookmark: newRecord(b),
			})
			continue
		}

		changed := changedFields(fields, prev, b)
		if len(changed) == 0 {
			continue
		}

		plan.Ops = append(plan.Ops, Op{
			Action:   ActionUpdate,
			ID:       prev.ID,
			Bookmark: updatedRecord(prev, b),
			Previous: prev,
			Changed:  changed,
		})
	}

	for _, b := range existing {
		if _, ok := newURLs[b.URL]; !ok {
			plan.Ops = append(plan.Ops, Op{
				Action:   ActionDelete,
				ID:       b.ID,
				Bookmark: b,
			})
		}
	}

	return plan
}

// parsed fields only, annotations start empty
func newRecord(b *marksync.Bookmark) *marksync.Bookmark {
	return &marksync.Bookmark{
		Title:      b.Title,
		URL:        b.URL,
		Icon:       b.Icon,
		AddedAt:    b.AddedAt,
		FolderPath: b.FolderPath,
		Tags:       []string{},
	}
}

// overwrites the mutable fields of prev, annotations are kept as stored
func updatedRecord(prev, b *marksync.Bookmark) *marksync.Bookmark {
	rec := prev.Copy()
	rec.Title = b.Title
	rec.URL = b.URL
	rec.Icon = b.Icon
	rec.FolderPath = b.FolderPath
	return rec
}
