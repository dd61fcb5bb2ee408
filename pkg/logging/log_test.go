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

package logging

import (
	"bytes"
	"testing"

	log "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reset(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	SetOutput(buf)
	SetLevel(log.WarnLevel)
	t.Cleanup(func() {
		mu.Lock()
		loggerLevels = map[string]log.Level{}
		mu.Unlock()
		SetLevel(log.WarnLevel)
	})
	return buf
}

func TestGetLoggerIsCached(t *testing.T) {
	reset(t)
	a := GetLogger("Cache")
	b := GetLogger("cache")
	assert.Same(t, a, b)
	assert.Contains(t, listLoggers(), "cache")
}

func TestParseDebugLevels(t *testing.T) {
	buf := reset(t)
	parse := GetLogger("parse")
	sync := GetLogger("sync")

	require.NoError(t, ParseDebugLevels("error,sync=debug"))
	assert.Equal(t, log.ErrorLevel, parse.GetLevel())
	assert.Equal(t, log.DebugLevel, sync.GetLevel())

	sync.Debug("visible")
	parse.Warn("hidden")
	assert.Contains(t, buf.String(), "visible")
	assert.NotContains(t, buf.String(), "hidden")

	// global level does not override unit levels
	SetLevel(log.InfoLevel)
	assert.Equal(t, log.InfoLevel, parse.GetLevel())
	assert.Equal(t, log.DebugLevel, sync.GetLevel())

	// new loggers pick up their unit level
	SetUnitLevel("late", log.ErrorLevel)
	assert.Equal(t, log.ErrorLevel, GetLogger("late").GetLevel())
}

func TestParseDebugLevelsErrors(t *testing.T) {
	reset(t)

	assert.ErrorIs(t, ParseDebugLevels("loud"), ErrUnknownLevel)
	assert.ErrorIs(t, ParseDebugLevels("info,sync"), ErrParseSubLevel)
	assert.ErrorIs(t, ParseDebugLevels("info,sync=loud"), ErrUnknownLevel)
	assert.ErrorIs(t, ParseDebugLevels("list"), ErrHelpQuit)
}

func TestNoneSilencesUnit(t *testing.T) {
	buf := reset(t)
	lg := GetLogger("quiet")

	require.NoError(t, ParseDebugLevels("debug,quiet=none"))
	lg.Error("nothing")
	GetLogger("loud").Debug("something")

	assert.NotContains(t, buf.String(), "nothing")
	assert.Contains(t, buf.String(), "something")
}
