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
	"fmt"
	"strings"
)

var ErrMalformedInput = errors.New("malformed bookmark input")

// MalformedInputError is returned when a document has no recognizable
// bookmark structure. Line and Column are -1 when the position is unknown.
type MalformedInputError struct {
	Format   Format
	Line     int
	Column   int
	Fragment string
	Err      error
}

func (e *MalformedInputError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s", ErrMalformedInput, e.Format)

	if e.Line >= 0 {
		fmt.Fprintf(&sb, " line %d", e.Line)
		if e.Column >= 0 {
			fmt.Fprintf(&sb, " col %d", e.Column)
		}
	}

	if e.Err != nil {
		fmt.Fprintf(&sb, ": %s", e.Err)
	}

	if e.Fragment != "" {
		fmt.Fprintf(&sb, " near %q", e.Fragment)
	}

	return sb.String()
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

func malformed(f Format, raw []byte, err error) *MalformedInputError {
	return &MalformedInputError{
		Format:   f,
		Line:     -1,
		Column:   -1,
		Fragment: fragment(raw),
		Err:      err,
	}
}

const fragmentLen = 48

func fragment(raw []byte) string {
	s := strings.Join(strings.Fields(string(raw)), " ")
	if len(s) > fragmentLen {
		return s[:fragmentLen] + "..."
	}
	return s
}
