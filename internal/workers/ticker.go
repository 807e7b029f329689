// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval is used by [Ticker] when a non-positive interval is given.
const DefaultInterval = 5 * time.Minute

// Ticker is a [Worker] that calls a task on a fixed interval.
type Ticker struct {
	interval  time.Duration
	immediate bool
	task      func(ctx context.Context)

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTicker creates a Ticker that calls task every interval. If interval is
// zero or negative it defaults to [DefaultInterval]. The ticker is idle until
// Start is called.
func NewTicker(interval time.Duration, task func(ctx context.Context)) *Ticker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Ticker{interval: interval, task: task}
}

// Immediately makes the ticker run the task once right after Start instead
// of waiting for the first tick.
func (t *Ticker) Immediately() *Ticker {
	t.immediate = true
	return t
}

// Interval returns the period between two task runs.
func (t *Ticker) Interval() time.Duration {
	return t.interval
}

// Start implements [Worker]. It stops any previous run first, so calling
// Start twice restarts the ticker.
func (t *Ticker) Start(ctx context.Context) {
	t.Stop()

	t.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.wg.Add(1)
	t.mu.Unlock()

	go func() {
		defer t.wg.Done()

		if t.immediate {
			t.task(jobCtx)
		}

		tick := time.NewTicker(t.interval)
		defer tick.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-tick.C:
				t.task(jobCtx)
			}
		}
	}()
}

// Stop implements [Worker].
func (t *Ticker) Stop() {
	t.mu.Lock()
	cancel := t.cancel
	t.cancel = nil
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	t.wg.Wait()
}
