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
	"fmt"
	"os"
	"time"

	"github.com/haoxingeng/ise-sub000/business"
	libcfg "github.com/haoxingeng/ise-sub000/config"
	liberr "github.com/haoxingeng/ise-sub000/errors"
	liblog "github.com/haoxingeng/ise-sub000/logger"
	libtck "github.com/haoxingeng/ise-sub000/runner/ticker"
	"github.com/haoxingeng/ise-sub000/scheduler"
	"github.com/haoxingeng/ise-sub000/socket/server/tcp"
	"github.com/haoxingeng/ise-sub000/socket/server/udp"
)

// Controller drives the whole engine process: the eleven-step initialize
// sequence, the periodic run loop, and reverse-order finalize.
// Everything that fits the Start/Reload/Stop shape is registered on a
// config.Manager; the pieces that don't (the single-instance lock,
// daemonizing, signal handling, the OOM reserve block) are the controller's
// own direct responsibility.
type Controller struct {
	opt libcfg.Options
	biz business.Business
	log liblog.Logger

	mgr  *libcfg.Manager
	lock *InstanceLock

	udpSrv  *udp.Server
	tcpSrvs []*tcp.Server
	sched   *scheduler.Scheduler
	daemon  *DaemonThread

	adjust     libtck.Ticker
	stopSigs   func()
	shutdownCh chan struct{}

	state stateBox
}

// New builds a Controller. Call Initialize, then Run, then Finalize.
func New(opt libcfg.Options, biz business.Business, log liblog.Logger) *Controller {
	return &Controller{opt: opt, biz: biz, log: log, shutdownCh: make(chan struct{}, 1)}
}

func (c *Controller) State() State { return c.state.get() }

// UDPServer returns the constructed UDP server, or nil if Options'
// ServerType didn't enable it. Only meaningful after Initialize.
func (c *Controller) UDPServer() *udp.Server { return c.udpSrv }

// TCPServers returns the constructed TCP servers in registration order, or
// nil if ServerType didn't enable TCP. Only meaningful after Initialize.
func (c *Controller) TCPServers() []*tcp.Server { return c.tcpSrvs }

// DaemonThread returns the once-a-second system thread so a caller (the
// cmd binary, typically) can attach a monitor.Sampler hook before Run.
func (c *Controller) DaemonThread() *DaemonThread { return c.daemon }

// Initialize runs the eleven-step startup sequence:
// refcount-style network init (implicit in Go's net package, nothing to do),
// executable path resolution, business option population, single-instance
// lock, daemonize, signal handlers, OOM reserve, component construction,
// component Start, business Initialize, and DoStartupState(AfterStart).
func (c *Controller) Initialize(ctx context.Context) liberr.Error {
	c.state.set(StateInitializing)

	reserveOOMBlock()

	if _, err := os.Executable(); err != nil && c.log != nil {
		c.log.Warning("could not resolve executable path", liblog.Fields{"error": err.Error()})
	}

	c.biz.InitIseOptions(&c.opt)
	if err := libcfg.Validate(&c.opt); err != nil {
		c.state.set(StateFailed)
		c.biz.DoStartupState(business.StartFail)
		return err
	}

	if !c.opt.AllowMultiInstance {
		lock, err := AcquireInstanceLock("")
		if err != nil {
			c.state.set(StateFailed)
			c.biz.DoStartupState(business.StartFail)
			return err
		}
		c.lock = lock
	}

	if c.opt.IsDaemon {
		if err := daemonize(); err != nil {
			c.state.set(StateFailed)
			c.biz.DoStartupState(business.StartFail)
			return err
		}
	}

	c.stopSigs = installSignalHandlers(
		func() { c.requestShutdown() },
		func(sig os.Signal) {
			releaseOOMReserve()
			if c.log != nil {
				c.log.Fatal("fatal signal received", liblog.Fields{"signal": sig.String()})
			}
			os.Exit(1)
		},
		func(sig os.Signal) {
			if c.log != nil {
				c.log.Info("user signal received", liblog.Fields{"signal": sig.String()})
			}
		},
	)

	c.mgr = libcfg.NewManager(ctx, c.opt)
	c.mgr.RegisterDefaultLogger(c.log)

	if c.opt.ServerType.Has(libcfg.ServerUDP) {
		srv, err := udp.New(c.opt, c.biz, c.log)
		if err != nil {
			c.state.set(StateFailed)
			c.biz.DoStartupState(business.StartFail)
			return liberr.Network("failed to construct udp server", err)
		}
		c.udpSrv = srv
		c.mgr.Register(&udpComponent{srv: srv})
	}

	if c.opt.ServerType.Has(libcfg.ServerTCP) {
		for i := 0; i < c.opt.TcpServerCount; i++ {
			srv, err := tcp.New(c.opt.TcpServers[i].Port, c.biz, c.log)
			if err != nil {
				c.state.set(StateFailed)
				c.biz.DoStartupState(business.StartFail)
				return liberr.Network(fmt.Sprintf("failed to construct tcp server %d", i), err)
			}
			c.tcpSrvs = append(c.tcpSrvs, srv)
			c.mgr.Register(&tcpComponent{name: fmt.Sprintf("tcp-server-%d", i), srv: srv})
		}
	}

	c.sched = scheduler.New()
	c.mgr.Register(&schedulerComponent{s: c.sched})

	c.mgr.Register(NewAssistorPool(c.opt.AssistorThreadCount, c.biz, c.log))
	c.daemon = NewDaemonThread(c.biz, c.log)
	c.mgr.Register(c.daemon)

	if err := c.mgr.Start(); err != nil {
		c.state.set(StateFailed)
		c.biz.DoStartupState(business.StartFail)
		return err
	}

	if err := c.biz.Initialize(ctx); err != nil {
		c.state.set(StateFailed)
		c.biz.DoStartupState(business.StartFail)
		return liberr.Thread("business Initialize failed", err)
	}

	c.adjust = libtck.New(c.opt.AdjustThreadInterval.Time(), func(context.Context, *time.Ticker) error {
		if c.udpSrv != nil {
			c.udpSrv.AdjustThreadCount()
		}
		return nil
	})
	_ = c.adjust.Start(ctx)

	c.state.set(StateRunning)
	c.biz.DoStartupState(business.AfterStart)
	return nil
}

func (c *Controller) requestShutdown() {
	select {
	case c.shutdownCh <- struct{}{}:
	default:
	}
}

// Run blocks until the parent context is cancelled or a shutdown signal
// arrives. The periodic adjustThreadCount pass runs on its own ticker;
// this just waits, otherwise idle until told to stop.
func (c *Controller) Run(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-c.shutdownCh:
	}
}

// Finalize tears the controller down in reverse order, continuing past any
// single step's failure so the rest still run.
func (c *Controller) Finalize(ctx context.Context) liberr.Error {
	c.state.set(StateFinalizing)

	out := liberr.Thread("finalize", nil)
	any := false

	if c.adjust != nil {
		_ = c.adjust.Stop(ctx)
	}

	if err := c.biz.Finalize(ctx); err != nil {
		any = true
		out.Add(liberr.Thread("business Finalize failed", err))
	}

	if c.mgr != nil {
		if err := c.mgr.Stop(); err != nil {
			any = true
			out.Add(err)
		}
	}

	if c.stopSigs != nil {
		c.stopSigs()
	}

	if err := c.lock.Release(); err != nil {
		any = true
		out.Add(liberr.File("failed to release single-instance lock", err))
	}

	releaseOOMReserve()
	c.state.set(StateStopped)

	if any {
		return out
	}
	return nil
}

// --- component adapters: wrap a concrete server into config.Component ---

type udpComponent struct{ srv *udp.Server }

func (w *udpComponent) Name() string                    { return "udp-server" }
func (w *udpComponent) Start(ctx context.Context) error  { return w.srv.Start(ctx) }
func (w *udpComponent) Reload(ctx context.Context) error { return nil }
func (w *udpComponent) Stop(ctx context.Context) error   { return w.srv.Stop(ctx) }

type tcpComponent struct {
	name string
	srv  *tcp.Server
}

func (w *tcpComponent) Name() string                    { return w.name }
func (w *tcpComponent) Start(ctx context.Context) error  { return w.srv.Start(ctx) }
func (w *tcpComponent) Reload(ctx context.Context) error { return nil }
func (w *tcpComponent) Stop(ctx context.Context) error   { return w.srv.Stop(ctx) }

type schedulerComponent struct{ s *scheduler.Scheduler }

func (w *schedulerComponent) Name() string                    { return "scheduler" }
func (w *schedulerComponent) Start(ctx context.Context) error  { return w.s.Start(ctx) }
func (w *schedulerComponent) Reload(ctx context.Context) error { return nil }
func (w *schedulerComponent) Stop(ctx context.Context) error   { return w.s.Stop(ctx) }
