// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package retry retries an operation with doubling waits.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Func is a retryable operation. It must respect ctx.
type Func func(ctx context.Context) error

type config struct {
	attempts int
	delay    time.Duration
	maxDelay time.Duration
	onRetry  func(attempt int, err error)
}

type Option func(*config)

// Attempts sets the total number of calls, at least 1. Default 3.
func Attempts(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.attempts = n
		}
	}
}

// Delay sets the wait after the first failure. Default 500ms.
func Delay(d time.Duration) Option {
	return func(c *config) {
		c.delay = d
	}
}

// MaxDelay caps the wait between attempts. Default 10s.
func MaxDelay(d time.Duration) Option {
	return func(c *config) {
		c.maxDelay = d
	}
}

// OnRetry is called after each failed attempt that will be retried.
func OnRetry(fn func(attempt int, err error)) Option {
	return func(c *config) {
		c.onRetry = fn
	}
}

// Do calls fn until it succeeds, the attempts are used up or ctx is done.
// The wait doubles after every failure.
func Do(ctx context.Context, fn Func, opts ...Option) error {
	c := &config{
		attempts: 3,
		delay:    500 * time.Millisecond,
		maxDelay: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}

	var lastErr error
	wait := c.delay
	for attempt := 1; attempt <= c.attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return joinCtx(err, lastErr)
		}
		if lastErr = fn(ctx); lastErr == nil {
			return nil
		}
		if attempt == c.attempts {
			break
		}
		if c.onRetry != nil {
			c.onRetry(attempt, lastErr)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return joinCtx(ctx.Err(), lastErr)
		case <-timer.C:
		}
		wait *= 2
		if c.maxDelay > 0 && wait > c.maxDelay {
			wait = c.maxDelay
		}
	}
	return fmt.Errorf("after %d attempts: %w", c.attempts, lastErr)
}

func joinCtx(ctxErr, lastErr error) error {
	if lastErr == nil {
		return ctxErr
	}
	return fmt.Errorf("%w (last error: %v)", ctxErr, lastErr)
}
