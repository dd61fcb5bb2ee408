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

package parsing

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/blob42/marksync"
	"github.com/blob42/marksync/pkg/tree"
)

// Default column layout of csv exports
var csvColumns = []string{"title", "url", "icon", "add_date", "folder"}

type csvLayout map[string]int

func defaultLayout() csvLayout {
	l := make(csvLayout, len(csvColumns))
	for i, col := range csvColumns {
		l[col] = i
	}
	return l
}

// headerLayout returns the layout described by a header row or nil if row is
// not a header.
func headerLayout(row []string) csvLayout {
	l := make(csvLayout)
	for i, col := range row {
		col = strings.ToLower(strings.TrimSpace(col))
		if col == "folder_path" {
			col = "folder"
		}
		l[col] = i
	}

	if _, ok := l["url"]; !ok {
		return nil
	}
	return l
}

func (l csvLayout) get(row []string, col string) string {
	i, ok := l[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseCSV reads one bookmark per row. Rows keep their order, the folder
// column is the folder path of the entry and the folders it names are created
// empty.
func (p *Parser) parseCSV(raw []byte, importedAt time.Time) (*marksync.Collection, error) {
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var layout csvLayout
	var entries []*marksync.Bookmark

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(raw, err)
		}

		if layout == nil {
			if layout = headerLayout(row); layout != nil {
				continue
			}
			layout = defaultLayout()
		}

		title, url := layout.get(row, "title"), layout.get(row, "url")
		if title == "" || url == "" {
			log.Debug("skipping csv row", "row", row)
			p.IncSkipCount()
			continue
		}

		entries = append(entries, &marksync.Bookmark{
			Title:      title,
			URL:        url,
			Icon:       layout.get(row, "icon"),
			AddedAt:    parseEpoch(layout.get(row, "add_date"), importedAt),
			FolderPath: layout.get(row, "folder"),
		})
		p.IncURLCount()
	}

	c := tree.BuildFlat(p.source, importedAt, entries)
	folders, _ := tree.Count(c.Root)
	p.AddFolderCount(uint(folders))

	return c, nil
}

func csvError(raw []byte, err error) error {
	merr := malformed(FormatCSV, nil, err)

	var perr *csv.ParseError
	if errors.As(err, &perr) {
		merr.Line = perr.Line
		merr.Column = perr.Column
		merr.Err = perr.Err

		lines := strings.Split(string(raw), "\n")
		if perr.Line > 0 && perr.Line <= len(lines) {
			merr.Fragment = fragment([]byte(lines[perr.Line-1]))
		}
	}

	return merr
}
