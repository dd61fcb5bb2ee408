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
	"errors"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/blob42/marksync"
)

const headingSelector = "h1,h2,h3,h4,h5,h6"

var errNoList = errors.New("no bookmark list or link found")

// Netscape bookmark files nest folders as <DT><H3>name</H3><DL>...</DL> and
// bookmarks as <DT><A HREF="...">title</A>.
func (p *Parser) parseHTML(raw []byte, importedAt time.Time) (*marksync.Collection, error) {
	c := marksync.NewCollection(p.source, importedAt)

	if len(bytes.TrimSpace(raw)) == 0 {
		return c, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, malformed(FormatHTML, raw, err)
	}

	// the first list in document order is the outermost one
	rootList := doc.Find("dl").First()
	if rootList.Length() == 0 {
		// links outside of any list are root entries
		links := doc.Find("a[href]")
		if links.Length() == 0 {
			return nil, malformed(FormatHTML, raw, errNoList)
		}
		links.Each(func(_ int, link *goquery.Selection) {
			p.addLink(link, c.Root, importedAt)
		})
		return c, nil
	}

	p.walkList(rootList, c.Root, importedAt)

	return c, nil
}

func (p *Parser) walkList(list *goquery.Selection, folder *marksync.Folder, now time.Time) {
	list.Children().Each(func(_ int, item *goquery.Selection) {
		switch goquery.NodeName(item) {
		case "dt":
			p.parseItem(item, folder, now)

		// list that is not wrapped in an item
		case "dl":
			p.walkSubList(item, folder, now)
		}
	})
}

func (p *Parser) parseItem(item *goquery.Selection, folder *marksync.Folder, now time.Time) {
	if link := item.ChildrenFiltered("a").First(); link.Length() > 0 {
		p.addLink(link, folder, now)
	}

	item.ChildrenFiltered("dl").Each(func(_ int, sub *goquery.Selection) {
		p.walkSubList(sub, folder, now)
	})
}

func (p *Parser) walkSubList(list *goquery.Selection, parent *marksync.Folder, now time.Time) {
	folder := parent.AddFolder(headingBefore(list))
	p.IncFolderCount()
	p.walkList(list, folder, now)
}

func (p *Parser) addLink(link *goquery.Selection, folder *marksync.Folder, now time.Time) {
	href := link.AttrOr("href", "")
	title := strings.TrimSpace(link.Text())

	if strings.TrimSpace(href) == "" || title == "" {
		log.Debug("skipping link", "folder", folder.Path, "href", href, "title", title)
		p.IncSkipCount()
		return
	}

	icon := link.AttrOr("icon", "")
	if icon == "" {
		icon = link.AttrOr("icon_uri", "")
	}

	folder.AddEntry(&marksync.Bookmark{
		Title:   title,
		URL:     href,
		Icon:    icon,
		AddedAt: parseEpoch(link.AttrOr("add_date", ""), now),
	})
	p.IncURLCount()
}

// headingBefore returns the text of the nearest heading preceding list. An
// empty string is returned when another list or bookmark comes first.
func headingBefore(list *goquery.Selection) string {
	for s := list.Prev(); s.Length() > 0; s = s.Prev() {
		if s.Is(headingSelector) {
			return strings.TrimSpace(s.Text())
		}

		switch goquery.NodeName(s) {
		case "dl":
			return ""
		case "dt":
			// <DT><H3>name</H3></DT><DL>
			h := s.ChildrenFiltered(headingSelector).Last()
			if h.Length() > 0 && s.ChildrenFiltered("dl").Length() == 0 {
				return strings.TrimSpace(h.Text())
			}
			return ""
		}
	}

	return ""
}
