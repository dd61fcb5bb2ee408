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

// Package build exposes the version information stamped in the binary.
package build

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Set with -ldflags "-X github.com/blob42/marksync/pkg/build.Describe=..."
var (
	// Output of git describe: latest tag, commits since, short hash and dirty
	// marker
	Describe string

	CommitHash string

	// Comma separated build tags
	RawTags string

	GoVersion string

	// Module version when installed with go install
	PackageVersion = "devel"
)

// Version returns the describe string when available, the module version
// otherwise.
func Version() string {
	if Describe == "" {
		return PackageVersion
	}

	commit := CommitHash
	if len(commit) > 8 {
		commit = commit[:8]
	}
	return fmt.Sprintf("%s commit=%s", Describe, commit)
}

// Tags returns the build tags compiled into the executable
func Tags() []string {
	if RawTags == "" {
		return []string{}
	}
	return strings.Split(RawTags, ",")
}

// Info is a multi line summary printed by the version command
func Info() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "marksync %s\n", Version())
	if GoVersion != "" {
		fmt.Fprintf(&sb, "go: %s\n", GoVersion)
	}
	if tags := Tags(); len(tags) > 0 {
		fmt.Fprintf(&sb, "tags: %s\n", strings.Join(tags, " "))
	}
	return sb.String()
}

func readBuildInfo(info *debug.BuildInfo) {
	GoVersion = info.GoVersion
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			CommitHash = setting.Value
		case "-tags":
			RawTags = setting.Value
		}
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		PackageVersion = info.Main.Version
	}
}

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		readBuildInfo(info)
	}
}
