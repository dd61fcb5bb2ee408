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

// Package parsing turns exported bookmark files into a bookmark tree.
//
// Supported formats are the Netscape bookmark file written by every major
// browser, a flat csv export and the Chrome/Chromium json bookmark store.
package parsing

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/blob42/marksync"
	"github.com/blob42/marksync/pkg/logging"
)

var log = logging.GetLogger("PARSE")

type Format int

const (
	FormatAuto Format = iota
	FormatHTML
	FormatCSV
	FormatChrome
)

var formatNames = map[Format]string{
	FormatAuto:   "auto",
	FormatHTML:   "html",
	FormatCSV:    "csv",
	FormatChrome: "chrome",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// ParseFormat returns the format named s
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for f, name := range formatNames {
		if name == s {
			return f, nil
		}
	}

	// aliases
	switch s {
	case "netscape", "htm":
		return FormatHTML, nil
	case "json", "chromium":
		return FormatChrome, nil
	}

	return FormatAuto, fmt.Errorf("unknown format %q", s)
}

// DetectFormat guesses the format of a file from its name, then from its
// content. Unknown content is handled as html.
func DetectFormat(name string, raw []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		return FormatHTML
	case ".csv":
		return FormatCSV
	case ".json":
		return FormatChrome
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return FormatHTML
	}

	switch trimmed[0] {
	case '{':
		return FormatChrome
	case '<':
		return FormatHTML
	}

	firstLine, _, _ := bytes.Cut(trimmed, []byte("\n"))
	firstLine = bytes.ToLower(firstLine)
	if bytes.Contains(firstLine, []byte(",")) && bytes.Contains(firstLine, []byte("url")) {
		return FormatCSV
	}

	return FormatHTML
}

type Option func(*Parser)

// WithSourceName sets the source name of parsed collections. It is also used
// to detect the format.
func WithSourceName(name string) Option {
	return func(p *Parser) {
		p.source = name
	}
}

func WithFormat(f Format) Option {
	return func(p *Parser) {
		p.format = f
	}
}

// WithClock sets the clock used for the import time. Entries without a valid
// creation date are stamped with the import time.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		p.now = now
	}
}

// Parser holds the options of a parse run and the counters of the last run.
type Parser struct {
	Counter

	format Format
	source string
	now    func() time.Time
}

func New(opts ...Option) *Parser {
	p := &Parser{
		format: FormatAuto,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Parse builds a complete bookmark tree from raw. On error no collection is
// returned.
func (p *Parser) Parse(raw []byte) (*marksync.Collection, error) {
	var c *marksync.Collection
	var err error

	start := time.Now()
	p.ResetCount()

	format := p.format
	if format == FormatAuto {
		format = DetectFormat(p.source, raw)
	}

	importedAt := p.now()

	switch format {
	case FormatHTML:
		c, err = p.parseHTML(raw, importedAt)
	case FormatCSV:
		c, err = p.parseCSV(raw, importedAt)
	case FormatChrome:
		c, err = p.parseChrome(raw, importedAt)
	default:
		return nil, fmt.Errorf("parsing %s: unsupported format %s", p.source, format)
	}

	if err != nil {
		return nil, err
	}

	p.SetLastParseRuntime(time.Since(start))
	log.Debugf("parsed <%s> as %s: %s", p.source, format, p.Stats())

	return c, nil
}

// Parse parses raw with the default options
func Parse(raw []byte) (*marksync.Collection, error) {
	return New().Parse(raw)
}

// parseEpoch reads a unix timestamp in seconds, def is returned when s is
// not a valid integer.
func parseEpoch(s string, def time.Time) time.Time {
	sec, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return def
	}
	return time.Unix(sec, 0).UTC()
}
