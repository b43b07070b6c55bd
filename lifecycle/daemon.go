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
	libtck "github.com/haoxingeng/ise-sub000/runner/ticker"
)

// DaemonThread calls biz.DaemonThreadExecute once a second with a running
// count of elapsed seconds — the one place host-load sampling and other
// once-a-second bookkeeping belongs. It satisfies config.Component.
type DaemonThread struct {
	biz    business.Business
	log    liblog.Logger
	tick   libtck.Ticker
	count  int64
	onTick func(ctx context.Context, seconds int64)
}

func NewDaemonThread(biz business.Business, log liblog.Logger) *DaemonThread {
	d := &DaemonThread{biz: biz, log: log}
	d.tick = libtck.New(time.Second, func(ctx context.Context, _ *time.Ticker) error {
		d.count++
		if err := d.biz.DaemonThreadExecute(ctx, d.count); err != nil && d.log != nil {
			d.log.Warning("daemon thread execution failed", liblog.Fields{"seconds": d.count, "error": err.Error()})
		}
		if d.onTick != nil {
			d.onTick(ctx, d.count)
		}
		return nil
	})
	return d
}

// SetOnTick attaches an extra callback run after biz.DaemonThreadExecute on
// every tick — the host-load/metrics sampling hook monitor.Sampler wires in,
// kept optional so this package never needs to import monitor.
func (d *DaemonThread) SetOnTick(fn func(ctx context.Context, seconds int64)) {
	d.onTick = fn
}

func (d *DaemonThread) Name() string                       { return "daemon-thread" }
func (d *DaemonThread) Start(ctx context.Context) error     { return d.tick.Start(ctx) }
func (d *DaemonThread) Reload(ctx context.Context) error    { return nil }
func (d *DaemonThread) Stop(ctx context.Context) error      { return d.tick.Stop(ctx) }
