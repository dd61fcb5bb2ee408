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

// Package logging hands out per unit loggers. The level of every unit can be
// set globally or per unit from the --debug flag or the MARKSYNC_DEBUG
// environment variable, ie. MARKSYNC_DEBUG=info,sync=debug
package logging

import (
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	log "github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

const EnvDebug = "MARKSYNC_DEBUG"

const (
	Release = iota
	Dev
)

// Silent disables a logger
const Silent = log.Level(math.MaxInt32)

var (
	//RELEASE: Change to Release for release mode
	LoggingMode = Release

	// When set, loggers discard their output whatever their level
	SilentMode bool

	levels = map[string]log.Level{
		"debug": log.DebugLevel,
		"info":  log.InfoLevel,
		"warn":  log.WarnLevel,
		"error": log.ErrorLevel,
		"fatal": log.FatalLevel,
		"none":  Silent,
	}
	allLevels = []string{"debug", "info", "warn", "error", "fatal", "none"}

	mu           sync.Mutex
	output       io.Writer = os.Stderr
	globalLevel            = log.WarnLevel
	loggerLevels           = map[string]log.Level{}
	loggers                = map[string]*log.Logger{}

	logTextFaintStyle = lipgloss.NewStyle().Foreground(
		lipgloss.AdaptiveColor{Light: "240", Dark: "246"},
	)
	logLevelStyles = map[log.Level]lipgloss.Style{
		log.DebugLevel: levelStyle(log.DebugLevel, "63"),
		log.InfoLevel:  levelStyle(log.InfoLevel, "36"),
		log.WarnLevel:  levelStyle(log.WarnLevel, "178"),
		log.ErrorLevel: levelStyle(log.ErrorLevel, "204"),
		log.FatalLevel: levelStyle(log.FatalLevel, "134"),
	}
)

func levelStyle(lvl log.Level, color string) lipgloss.Style {
	return lipgloss.NewStyle().
		SetString(strings.ToUpper(lvl.String())).
		MaxWidth(4).
		Foreground(lipgloss.Color(color))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newLogger(unit string) *log.Logger {
	lg := log.NewWithOptions(output, log.Options{
		Prefix: fmt.Sprintf("[%.4s]", strings.ToUpper(unit)),
	})

	if LoggingMode == Dev {
		lg.SetTimeFormat(time.TimeOnly)
		lg.SetReportTimestamp(true)
		lg.SetReportCaller(true)
	}

	if isTerminal(output) {
		styles := log.DefaultStyles()
		styles.Levels = logLevelStyles
		styles.Prefix = logTextFaintStyle
		styles.Key = logTextFaintStyle
		lg.SetStyles(styles)
		lg.SetColorProfile(termenv.ANSI256)
	}

	return lg
}

func unitLevel(unit string) log.Level {
	if lvl, ok := loggerLevels[unit]; ok {
		return lvl
	}
	return globalLevel
}

func applyLevel(lg *log.Logger, lvl log.Level) {
	if SilentMode || lvl == Silent {
		lg.SetOutput(io.Discard)
		return
	}
	lg.SetOutput(output)
	lg.SetLevel(lvl)
}

// GetLogger returns the logger of unit, creating it on first use.
func GetLogger(unit string) *log.Logger {
	mu.Lock()
	defer mu.Unlock()

	unit = strings.ToLower(unit)
	if lg, ok := loggers[unit]; ok {
		return lg
	}

	lg := newLogger(unit)
	applyLevel(lg, unitLevel(unit))
	loggers[unit] = lg

	return lg
}

// SetLevel sets the level of all units without a unit level
func SetLevel(lvl log.Level) {
	mu.Lock()
	defer mu.Unlock()

	globalLevel = lvl
	for unit, lg := range loggers {
		applyLevel(lg, unitLevel(unit))
	}
}

func SetUnitLevel(unit string, lvl log.Level) {
	mu.Lock()
	defer mu.Unlock()

	unit = strings.ToLower(unit)
	loggerLevels[unit] = lvl
	if lg, ok := loggers[unit]; ok {
		applyLevel(lg, unitLevel(unit))
	}
}

// SetOutput redirects all loggers to w
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	output = w
	for unit, lg := range loggers {
		applyLevel(lg, unitLevel(unit))
	}
}

func listLoggers() []string {
	mu.Lock()
	defer mu.Unlock()

	res := make([]string, 0, len(loggers))
	for unit := range loggers {
		res = append(res, unit)
	}
	slices.Sort(res)
	return res
}

func init() {
	if env := os.Getenv(EnvDebug); env != "" && env != "list" {
		if err := ParseDebugLevels(env); err != nil {
			fmt.Fprintf(os.Stderr, "%s=%v: %v\n", EnvDebug, env, err)
		}
	}
}
