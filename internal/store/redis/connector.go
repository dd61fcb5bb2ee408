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

package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectOptions defines the redis connection and its retry policy
type ConnectOptions struct {
	Addr     string
	Username string
	Password string
	DB       int

	// Total time allowed for connection attempts
	ConnectTimeout time.Duration

	// Initial wait between attempts, doubled after each failure up to MaxWait
	RetryInterval time.Duration
	MaxWait       time.Duration

	// Timeout of a single ping
	PingTimeout time.Duration

	// Attempts logged as warnings before switching to errors
	WarnThreshold int
}

func (opts ConnectOptions) validate() error {
	if opts.Addr == "" {
		return fmt.Errorf("redis address is required")
	}
	if opts.ConnectTimeout <= 0 {
		return fmt.Errorf("ConnectTimeout must be > 0, got %v", opts.ConnectTimeout)
	}
	if opts.RetryInterval <= 0 {
		return fmt.Errorf("RetryInterval must be > 0, got %v", opts.RetryInterval)
	}
	if opts.MaxWait <= 0 {
		return fmt.Errorf("MaxWait must be > 0, got %v", opts.MaxWait)
	}
	if opts.PingTimeout <= 0 {
		return fmt.Errorf("PingTimeout must be > 0, got %v", opts.PingTimeout)
	}
	if opts.WarnThreshold < 0 {
		return fmt.Errorf("WarnThreshold must be >= 0, got %d", opts.WarnThreshold)
	}
	return nil
}

// Connect creates a redis client and pings it until it answers or
// ConnectTimeout is reached. The wait between attempts grows exponentially.
func Connect(ctx context.Context, opts ConnectOptions) (*redis.Client, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Username: opts.Username,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := waitReady(ctx, client, opts); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}

func waitReady(ctx context.Context, client *redis.Client, opts ConnectOptions) error {
	ctx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
	defer cancel()

	log.Info("connecting to redis", "addr", opts.Addr, "timeout", opts.ConnectTimeout)

	start := time.Now()
	wait := opts.RetryInterval

	for attempt := 1; ; attempt++ {
		pingCtx, pingCancel := context.WithTimeout(ctx, opts.PingTimeout)
		err := client.Ping(pingCtx).Err()
		pingCancel()

		if err == nil {
			if attempt > 1 {
				log.Warn("connected to redis after retry", "addr", opts.Addr,
					"attempts", attempt, "elapsed", time.Since(start))
			} else {
				log.Info("connected to redis", "addr", opts.Addr)
			}
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Error("redis unavailable", "addr", opts.Addr, "attempts", attempt, "err", err)
			return fmt.Errorf("redis unavailable at %s after %d attempts (timeout: %v): %w",
				opts.Addr, attempt, opts.ConnectTimeout, err)

		case <-timer.C:
			if attempt <= opts.WarnThreshold {
				log.Warn("redis connection failed, retrying", "addr", opts.Addr,
					"attempt", attempt, "next_retry_in", wait, "err", err)
			} else {
				log.Error("redis still unavailable", "addr", opts.Addr,
					"attempt", attempt, "next_retry_in", wait, "err", err)
			}

			wait *= 2
			if wait > opts.MaxWait {
				wait = opts.MaxWait
			}
		}
	}
}
