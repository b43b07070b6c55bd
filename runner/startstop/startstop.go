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

// Package startstop wraps a start/stop function pair as a single managed
// goroutine, the shape the assistor pool and the daemon/maintenance thread
// both need.
package startstop

import (
	"context"
	"sync"
	"time"
)

type Func func(ctx context.Context) error

// StartStop runs one long-lived goroutine whose body is start, cancelling
// it (and waiting for it to return) when Stop is called or Start is called
// again.
type StartStop interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	IsRunning() bool
	Uptime() time.Duration
}

type runner struct {
	mu        sync.Mutex
	start     Func
	stop      Func
	cancel    context.CancelFunc
	done      chan struct{}
	running   bool
	startedAt time.Time
}

// New builds a StartStop around start/stop. Either may be nil; a nil start
// is treated as an immediate no-op return, a nil stop as nothing extra to
// run beyond cancelling start's context.
func New(start, stop Func) StartStop {
	return &runner{start: start, stop: stop}
}

func (r *runner) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		if err := r.Stop(ctx); err != nil {
			return err
		}
		r.mu.Lock()
	}

	cctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	r.cancel = cancel
	r.done = done
	r.running = true
	r.startedAt = time.Now()

	start := r.start
	r.mu.Unlock()

	go func() {
		defer close(done)
		if start != nil {
			_ = start(cctx)
		}
	}()

	return nil
}

func (r *runner) Stop(ctx context.Context) error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return nil
	}

	cancel := r.cancel
	done := r.done
	stop := r.stop
	r.running = false
	r.mu.Unlock()

	var stopErr error
	if stop != nil {
		stopErr = stop(ctx)
	}

	cancel()
	<-done

	return stopErr
}

func (r *runner) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

func (r *runner) Uptime() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return 0
	}
	return time.Since(r.startedAt)
}
