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
	"context"

	"github.com/blob42/marksync"
)

// Store is the persistence collaborator of the engine.
//
// Export returns the full persisted set with ids. Update must only write the
// title, url, icon and folder path of a record. Update and Delete return
// false when no record has the given id.
type Store interface {
	Export(ctx context.Context) ([]*marksync.Bookmark, error)
	Create(ctx context.Context, b *marksync.Bookmark) (marksync.ID, error)
	Update(ctx context.Context, id marksync.ID, b *marksync.Bookmark) (bool, error)
	Delete(ctx context.Context, id marksync.ID) (bool, error)
}
