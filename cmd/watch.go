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

package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/blob42/marksync/internal/utils"
	"github.com/blob42/marksync/pkg/watch"
)

func watchCmd() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "import FILE every time it changes",
		ArgsUsage: "FILE",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "file", Config: cli.StringConfig{TrimSpace: true}},
		},
		Flags: append(syncFlags(), &cli.DurationFlag{
			Name:  "debounce",
			Usage: "quiet `period` after the last change before importing",
		}),
		Action: watchAction,
	}
}

// fileImporter runs an import of its file when the content changed
type fileImporter struct {
	ctx     context.Context
	cmd     *cli.Command
	path    string
	desc    *watch.WatchDescriptor
	tracker *watch.ContentTracker
}

func (fi *fileImporter) Watch() *watch.WatchDescriptor {
	return fi.desc
}

func (fi *fileImporter) Run() {
	changed, err := fi.tracker.Changed(fi.path)
	if err != nil {
		// the file may be replaced by a rename, the next event will catch it
		log.Warn("reading watched file", "path", fi.path, "err", err)
		return
	}
	if !changed {
		log.Debug("content unchanged", "path", fi.path)
		return
	}

	coll, _, err := parseFile(fi.cmd, fi.path)
	if err != nil {
		log.Error("parse", "path", fi.path, "err", err)
		fi.tracker.Forget(fi.path)
		return
	}

	if err = syncCollection(fi.ctx, fi.cmd, coll); err != nil {
		log.Error("import", "path", fi.path, "err", err)
		fi.tracker.Forget(fi.path)
	}
}

func watchAction(ctx context.Context, c *cli.Command) error {
	arg, err := requireArg(c, "file")
	if err != nil {
		return err
	}

	path, err := utils.ExpandPath(arg)
	if err != nil {
		return err
	}

	debounce := watch.Conf.Debounce
	if c.IsSet("debounce") {
		debounce = c.Duration("debounce")
	}

	desc, err := watch.NewWatcherWithReducer("import", 16, watch.FileWatch(path))
	if err != nil {
		return err
	}
	defer desc.Close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fi := &fileImporter{
		ctx:     ctx,
		cmd:     c,
		path:    path,
		desc:    desc,
		tracker: watch.NewContentTracker(),
	}

	// initial import
	fi.Run()

	done := make(chan struct{})
	go func() {
		watch.ReduceEvents(debounce, fi)
		close(done)
	}()

	log.Info("watching", "path", path, "debounce", debounce)
	watch.WatchLoop(ctx, fi)
	<-done

	return nil
}
