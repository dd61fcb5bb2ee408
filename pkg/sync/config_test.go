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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	conf := &Config{CompareFields: []string{"title", "url", "icon"}}
	require.NoError(t, conf.Validate())

	conf.CompareFields = []string{"title", "summary"}
	assert.Error(t, conf.Validate())

	conf.CompareFields = nil
	assert.NoError(t, conf.Validate())
}

func TestConfigEngine(t *testing.T) {
	conf := &Config{CompareFields: []string{"url,icon"}, DryRun: true}
	e, err := conf.Engine()
	require.NoError(t, err)
	assert.Equal(t, []Field{FieldURL, FieldIcon}, e.Fields)
	assert.True(t, e.DryRun)

	conf = &Config{CompareFields: []string{"nope"}}
	_, err = conf.Engine()
	assert.Error(t, err)
}
