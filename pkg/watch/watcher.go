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

// Package watch runs a Runner when watched files change on disk.
package watch

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/blob42/marksync/pkg/logging"
)

var log = logging.GetLogger("WATCH")

type WatchRunner interface {
	Watcher
	Runner
}

// Watcher is implemented by units that want to be notified of changes on
// their files.
type Watcher interface {
	Watch() *WatchDescriptor
}

type Runner interface {
	Run()
}

// Wrapper around fsnotify watcher
type WatchDescriptor struct {
	ID      string
	W       *fsnotify.Watcher
	Watches []*Watch

	// events forwarded to the reducer
	eventsChan chan fsnotify.Event
}

func (w *WatchDescriptor) hasReducer() bool {
	return w.eventsChan != nil
}

// Close stops the underlying fsnotify watcher
func (w *WatchDescriptor) Close() error {
	return w.W.Close()
}

// Watch is a filesystem object that can be watched for changes.
type Watch struct {
	Path       string        // Path to watch for events
	EventTypes []fsnotify.Op // events to watch for
	EventNames []string      // event names to watch for (file/dir names)
}

// FileWatch watches a single file. The parent directory is watched so that
// editors replacing the file with a rename are still seen.
func FileWatch(path string) *Watch {
	path = filepath.Clean(path)
	return &Watch{
		Path:       filepath.Dir(path),
		EventTypes: []fsnotify.Op{fsnotify.Write, fsnotify.Create, fsnotify.Rename},
		EventNames: []string{path},
	}
}

func (w *Watch) matches(ev fsnotify.Event) bool {
	for _, op := range w.EventTypes {
		if !ev.Op.Has(op) {
			continue
		}
		for _, name := range w.EventNames {
			if filepath.Clean(ev.Name) == name {
				return true
			}
		}
	}
	return false
}

func NewWatcher(name string, watches ...*Watch) (*WatchDescriptor, error) {
	fswatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watcher := &WatchDescriptor{
		ID:      name,
		W:       fswatcher,
		Watches: watches,
	}

	for _, v := range watches {
		if err = watcher.W.Add(v.Path); err != nil {
			fswatcher.Close()
			return nil, err
		}
		log.Debugf("<%s> watching %s", name, v.Path)
	}

	return watcher, nil
}

// NewWatcherWithReducer creates a watcher whose events go through
// ReduceEvents instead of triggering Run directly
func NewWatcherWithReducer(name string, reducerLen int, watches ...*Watch) (*WatchDescriptor, error) {
	w, err := NewWatcher(name, watches...)
	if err != nil {
		return nil, err
	}
	w.eventsChan = make(chan fsnotify.Event, reducerLen)

	return w, nil
}

// WatchLoop dispatches the events of w until ctx is done. Without a reducer
// Run is called from the loop itself so runs never overlap.
func WatchLoop(ctx context.Context, w WatchRunner) {
	watcher := w.Watch()
	log.Debugf("<%s> started watcher", watcher.ID)

	for {
		select {
		case <-ctx.Done():
			log.Debugf("<%s> stopping watcher", watcher.ID)
			if watcher.hasReducer() {
				close(watcher.eventsChan)
			}
			return

		case event, ok := <-watcher.W.Events:
			if !ok {
				return
			}

			for _, watched := range watcher.Watches {
				if !watched.matches(event) {
					continue
				}

				if watcher.hasReducer() {
					select {
					case watcher.eventsChan <- event:
					default:
						// reducer already has pending events
					}
				} else {
					w.Run()
				}
				break
			}

		case err, ok := <-watcher.W.Errors:
			if !ok {
				return
			}
			log.Error("watcher", "id", watcher.ID, "err", err)
		}
	}
}
