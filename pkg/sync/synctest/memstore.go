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

// Package synctest provides an in-memory Store and a behaviour suite shared by
// the Store implementations.
package synctest

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/blob42/marksync"
)

var ErrInjected = errors.New("injected store failure")

// MemStore is a Store keeping records in insertion order.
type MemStore struct {
	mu      sync.Mutex
	records []*marksync.Bookmark
	seq     int

	// When FailAfter >= 0, the mutating call following FailAfter successful
	// ones returns ErrInjected
	FailAfter int
	ExportErr error
	mutations int
}

func NewMemStore(seed ...*marksync.Bookmark) *MemStore {
	s := &MemStore{FailAfter: -1}
	for _, b := range seed {
		_, _ = s.Create(context.Background(), b)
	}
	s.mutations = 0
	return s
}

func (s *MemStore) fail() error {
	if s.FailAfter >= 0 && s.mutations >= s.FailAfter {
		return ErrInjected
	}
	s.mutations++
	return nil
}

func (s *MemStore) find(id marksync.ID) int {
	for i, b := range s.records {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func (s *MemStore) Export(_ context.Context) ([]*marksync.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ExportErr != nil {
		return nil, s.ExportErr
	}

	res := make([]*marksync.Bookmark, len(s.records))
	for i, b := range s.records {
		res[i] = b.Copy()
	}
	return res, nil
}

func (s *MemStore) Create(_ context.Context, b *marksync.Bookmark) (marksync.ID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fail(); err != nil {
		return "", err
	}

	s.seq++
	rec := b.Copy()
	rec.ID = marksync.ID(strconv.Itoa(s.seq))
	if rec.Tags == nil {
		rec.Tags = []string{}
	}
	s.records = append(s.records, rec)

	return rec.ID, nil
}

func (s *MemStore) Update(_ context.Context, id marksync.ID, b *marksync.Bookmark) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fail(); err != nil {
		return false, err
	}

	i := s.find(id)
	if i < 0 {
		return false, nil
	}

	rec := s.records[i]
	rec.Title = b.Title
	rec.URL = b.URL
	rec.Icon = b.Icon
	rec.FolderPath = b.FolderPath

	return true, nil
}

func (s *MemStore) Delete(_ context.Context, id marksync.ID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fail(); err != nil {
		return false, err
	}

	i := s.find(id)
	if i < 0 {
		return false, nil
	}
	s.records = append(s.records[:i], s.records[i+1:]...)

	return true, nil
}

func (s *MemStore) Annotate(_ context.Context, id marksync.ID, summary string, tags []string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.find(id)
	if i < 0 {
		return false, nil
	}
	s.records[i].Summary = summary
	s.records[i].Tags = append([]string{}, tags...)

	return true, nil
}

// Len returns the number of stored records
func (s *MemStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
