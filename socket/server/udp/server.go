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

package udp

import (
	"context"

	"github.com/haoxingeng/ise-sub000/business"
	libcfg "github.com/haoxingeng/ise-sub000/config"
	liblog "github.com/haoxingeng/ise-sub000/logger"
	"github.com/haoxingeng/ise-sub000/socket/group"
	"github.com/haoxingeng/ise-sub000/socket/queue"
)

// Server wires one Listener and one Pool per configured group, the
// concrete binding that group.Group's classifier index routes into.
type Server struct {
	listener *Listener
	groups   []*group.Group
	pools    []*Pool
	opt      libcfg.Options
}

// New builds the queues, pools and groups from opt, then binds a Listener
// across them all. Each pool starts its minimum worker goroutines as it is
// built; the listener does not read until Start.
func New(opt libcfg.Options, biz business.Business, log liblog.Logger) (*Server, error) {
	groups := make([]*group.Group, opt.UdpRequestGroupCount)
	pools := make([]*Pool, opt.UdpRequestGroupCount)

	for i := 0; i < opt.UdpRequestGroupCount; i++ {
		g := opt.UdpGroups[i]
		q := queue.New(g.RequestQueueCapacity, opt.UdpRequestEffWaitTime.Time())
		p := NewPool(i, q, biz, g.MinWorkerThreads, g.MaxWorkerThreads,
			opt.UdpRequestQueueAlertLine, opt.UdpWorkerThreadTimeOut.Time(), log)
		pools[i] = p
		groups[i] = group.New(i, q, p)
	}

	ln, err := NewListener(opt.UdpServerPort, biz, groups, log)
	if err != nil {
		return nil, err
	}

	return &Server{listener: ln, groups: groups, pools: pools, opt: opt}, nil
}

// Start launches the listener pool's reader goroutines.
func (s *Server) Start(ctx context.Context) error {
	s.listener.Start(ctx, s.opt.UdpListenerThreadCount)
	return nil
}

// Stop closes the listener socket and shuts down every group's pool. It does
// not wait for the workers to exit, and packets still queued are not
// dispatched.
func (s *Server) Stop(ctx context.Context) error {
	s.listener.Stop()
	for _, p := range s.pools {
		p.Shutdown()
	}
	return nil
}

// AdjustThreadCount runs every group's pool-sizing pass, the call the
// lifecycle controller's periodic loop drives.
func (s *Server) AdjustThreadCount() {
	for _, g := range s.groups {
		g.Pool.AdjustThreadCount()
	}
}

// Groups exposes the bound groups, mainly so monitoring can read queue
// depth and pool size per group.
func (s *Server) Groups() []*group.Group { return s.groups }
