/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package ticker drives anything that needs to run on a fixed period for as
// long as the engine is up: the worker-pool resize pass (once per
// adjustThreadInterval) and the scheduler's one-second pulse.
package ticker

import (
	"context"
	"sync"
	"time"
)

const minInterval = 1 * time.Millisecond

// Func is invoked on every tick; tck is the underlying time.Ticker so the
// callback can Reset it if it needs to change its own period.
type Func func(ctx context.Context, tck *time.Ticker) error

// Ticker runs Func on a fixed period inside its own goroutine until Stop or
// the parent context ends.
type Ticker interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Restart(ctx context.Context) error
	IsRunning() bool
	Uptime() time.Duration
}

type ticker struct {
	mu        sync.Mutex
	d         time.Duration
	fn        Func
	cancel    context.CancelFunc
	done      chan struct{}
	running   bool
	startedAt time.Time
}

// New builds a Ticker with period d (clamped up to minInterval) calling fn
// on every tick.
func New(d time.Duration, fn Func) Ticker {
	if d < minInterval {
		d = minInterval
	}
	return &ticker{d: d, fn: fn}
}

func (t *ticker) Start(ctx context.Context) error {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return nil
	}

	cctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	t.cancel = cancel
	t.done = done
	t.running = true
	t.startedAt = time.Now()

	d := t.d
	fn := t.fn
	t.mu.Unlock()

	go func() {
		defer close(done)

		tk := time.NewTicker(d)
		defer tk.Stop()

		for {
			select {
			case <-cctx.Done():
				return
			case <-tk.C:
				if fn != nil {
					_ = fn(cctx, tk)
				}
			}
		}
	}()

	return nil
}

func (t *ticker) Stop(ctx context.Context) error {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return nil
	}
	cancel := t.cancel
	done := t.done
	t.running = false
	t.mu.Unlock()

	cancel()
	<-done
	return nil
}

func (t *ticker) Restart(ctx context.Context) error {
	if err := t.Stop(ctx); err != nil {
		return err
	}
	return t.Start(ctx)
}

func (t *ticker) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

func (t *ticker) Uptime() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return 0
	}
	return time.Since(t.startedAt)
}
