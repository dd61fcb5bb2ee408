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
	"errors"
	"strconv"
	"time"

	"github.com/buger/jsonparser"

	"github.com/blob42/marksync"
)

// Chrome stores timestamps as microseconds since 1601-01-01 UTC
const webkitEpochOffset = 11644473600

var chromeRoots = []string{"bookmark_bar", "other", "synced"}

var errNoRoots = errors.New("missing bookmark roots")

var chromeNodePaths = [][]string{
	{"type"},
	{"name"},
	{"url"},
	{"date_added"},
	{"children"},
}

type rawChromeNode struct {
	nType     string
	name      string
	url       string
	dateAdded string
	children  []byte
}

func parseChromeNode(data []byte) *rawChromeNode {
	node := new(rawChromeNode)

	jsonparser.EachKey(data, func(idx int, value []byte, vt jsonparser.ValueType, err error) {
		if err != nil {
			log.Error("error parsing chrome node", "err", err)
			return
		}

		switch idx {
		case 0:
			node.nType = string(value)
		case 1:
			node.name, _ = jsonparser.ParseString(value)
		case 2:
			node.url, _ = jsonparser.ParseString(value)
		case 3:
			node.dateAdded = string(value)
		case 4:
			if vt == jsonparser.Array {
				node.children = value
			}
		}
	}, chromeNodePaths...)

	return node
}

func (p *Parser) parseChrome(raw []byte, importedAt time.Time) (*marksync.Collection, error) {
	roots, vt, _, err := jsonparser.Get(raw, "roots")
	if err != nil {
		if errors.Is(err, jsonparser.KeyPathNotFoundError) {
			err = errNoRoots
		}
		return nil, malformed(FormatChrome, raw, err)
	}
	if vt != jsonparser.Object {
		return nil, malformed(FormatChrome, raw, errNoRoots)
	}

	c := marksync.NewCollection(p.source, importedAt)

	for _, key := range chromeRoots {
		data, _, _, err := jsonparser.Get(roots, key)
		if err != nil {
			continue
		}

		if err = p.walkChromeNode(data, c.Root, importedAt); err != nil {
			return nil, malformed(FormatChrome, data, err)
		}
	}

	return c, nil
}

func (p *Parser) walkChromeNode(data []byte, parent *marksync.Folder, now time.Time) error {
	node := parseChromeNode(data)

	switch node.nType {
	case "url":
		if node.url == "" || node.name == "" {
			p.IncSkipCount()
			return nil
		}

		parent.AddEntry(&marksync.Bookmark{
			Title:   node.name,
			URL:     node.url,
			AddedAt: webkitTime(node.dateAdded, now),
		})
		p.IncURLCount()

	case "folder":
		folder := parent.AddFolder(node.name)
		p.IncFolderCount()

		if node.children == nil {
			return nil
		}

		var childErr error
		_, err := jsonparser.ArrayEach(node.children, func(value []byte, _ jsonparser.ValueType, _ int, err error) {
			if childErr != nil {
				return
			}
			if err != nil {
				childErr = err
				return
			}
			childErr = p.walkChromeNode(value, folder, now)
		})
		if err != nil {
			return err
		}
		return childErr

	default:
		log.Debugf("unknown chrome node type <%s>", node.nType)
	}

	return nil
}

func webkitTime(s string, def time.Time) time.Time {
	usec, err := strconv.ParseInt(s, 10, 64)
	if err != nil || usec <= 0 {
		return def
	}

	return time.Unix(usec/1e6-webkitEpochOffset, (usec%1e6)*1e3).UTC()
}
