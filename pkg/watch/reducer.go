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

package watch

import "time"

// ReduceEvents calls Run once events stop arriving for interval. It returns
// when the events channel is closed by WatchLoop.
func ReduceEvents(interval time.Duration, w WatchRunner) {
	watch := w.Watch()
	log.Debugf("starting reducer service for %s", watch.ID)

	eventsIn := watch.eventsChan
	timer := time.NewTimer(interval)
	timer.Stop()
	pending := 0

	for {
		select {
		case _, ok := <-eventsIn:
			if !ok {
				timer.Stop()
				log.Debugf("events channel closed for %s", watch.ID)
				return
			}
			timer.Reset(interval)
			pending++

		case <-timer.C:
			if pending > 0 {
				log.Debug("reduced events", "id", watch.ID, "events", pending)
				w.Run()
				pending = 0
			}
		}
	}
}
