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

package lifecycle

import (
	"context"
	"time"

	"github.com/haoxingeng/ise-sub000/business"
	liblog "github.com/haoxingeng/ise-sub000/logger"
	libss "github.com/haoxingeng/ise-sub000/runner/startstop"
)

// assistorRetryDelay paces repeated AssistorThreadExecute calls so a
// business object that returns immediately doesn't spin a CPU — assistor
// threads run a business-supplied loop body until told to stop.
const assistorRetryDelay = 200 * time.Millisecond

// AssistorPool runs count independent assistor threads, each repeatedly
// calling biz.AssistorThreadExecute(ctx, index) until the pool is stopped.
// It satisfies config.Component so the lifecycle's Manager can sequence it
// alongside the UDP/TCP servers.
type AssistorPool struct {
	count int
	biz   business.Business
	log   liblog.Logger

	runners []libss.StartStop
}

// NewAssistorPool builds (but does not start) count assistor threads.
func NewAssistorPool(count int, biz business.Business, log liblog.Logger) *AssistorPool {
	if count < 0 {
		count = 0
	}
	return &AssistorPool{count: count, biz: biz, log: log}
}

func (p *AssistorPool) Name() string { return "assistor-pool" }

func (p *AssistorPool) Start(ctx context.Context) error {
	p.runners = make([]libss.StartStop, p.count)
	for i := 0; i < p.count; i++ {
		idx := i
		r := libss.New(
			func(rctx context.Context) error { return p.loop(rctx, idx) },
			func(context.Context) error { return nil },
		)
		p.runners[i] = r
		_ = r.Start(ctx)
	}
	return nil
}

func (p *AssistorPool) loop(ctx context.Context, idx int) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if err := p.biz.AssistorThreadExecute(ctx, idx); err != nil && p.log != nil {
			p.log.Warning("assistor thread execution failed", liblog.Fields{"index": idx, "error": err.Error()})
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(assistorRetryDelay):
		}
	}
}

// Reload is a no-op: assistor threads have no reloadable state of their own.
func (p *AssistorPool) Reload(ctx context.Context) error { return nil }

func (p *AssistorPool) Stop(ctx context.Context) error {
	for _, r := range p.runners {
		_ = r.Stop(ctx)
	}
	return nil
}
