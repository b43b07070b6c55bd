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

package tcp

import (
	"context"
	"errors"
	"net"
	"strconv"
	"sync"

	"github.com/haoxingeng/ise-sub000/business"
	liblog "github.com/haoxingeng/ise-sub000/logger"
)

// recvBufSize is the per-read scratch buffer a connection's recv loop reuses
// across OnTcpRecvComplete calls.
const recvBufSize = 4 * 1024

// Server is one configured TCP listener: a single accept-loop goroutine
// handing each new connection to the business object, then spawning a
// dedicated recv-loop goroutine per connection: one listening socket, one
// accept goroutine.
type Server struct {
	port int
	biz  business.Business
	log  liblog.Logger

	ln net.Listener

	mu    sync.Mutex
	conns map[string]*Connection

	wg sync.WaitGroup
}

// New binds a TCP listener on port. It does not start accepting yet.
func New(port int, biz business.Business, log liblog.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", addrFor(port))
	if err != nil {
		return nil, err
	}
	return &Server{port: port, biz: biz, log: log, ln: ln, conns: make(map[string]*Connection)}, nil
}

func addrFor(port int) string {
	if port <= 0 {
		return ":0"
	}
	return net.JoinHostPort("", strconv.Itoa(port))
}

// Addr reports the bound listener address.
func (s *Server) Addr() net.Addr { return s.ln.Addr() }

// Start launches the accept loop.
func (s *Server) Start(ctx context.Context) error {
	s.wg.Add(1)
	go s.acceptLoop(ctx)
	return nil
}

// Stop closes the listener (unblocking Accept) and every open connection,
// then waits for their goroutines to exit.
func (s *Server) Stop(ctx context.Context) error {
	_ = s.ln.Close()

	s.mu.Lock()
	for _, c := range s.conns {
		c.Disconnect()
	}
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}

// ConnectionCount reports how many connections are currently tracked.
func (s *Server) ConnectionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

func (s *Server) acceptLoop(ctx context.Context) {
	defer s.wg.Done()

	for {
		raw, err := s.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			if s.log != nil {
				s.log.Warning("tcp accept failed", liblog.Fields{"port": s.port, "error": err.Error()})
			}
			continue
		}

		c := newConnection(ctx, raw)

		s.mu.Lock()
		s.conns[c.ID()] = c
		s.mu.Unlock()

		s.biz.OnTcpConnect(c)

		s.wg.Add(1)
		go s.recvLoop(ctx, c)
	}
}

// recvLoop owns one connection's lifetime end to end: it reads until the
// peer closes, the socket errors, or Disconnect is called elsewhere, then
// removes the connection from the server's bookkeeping and fires
// OnTcpDisconnect exactly once.
func (s *Server) recvLoop(ctx context.Context, c *Connection) {
	defer s.wg.Done()
	defer s.finish(c)

	buf := make([]byte, recvBufSize)
	for {
		if c.IsDisconnected() {
			return
		}

		n, err := c.Recv(ctx, buf, true, 0)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			return
		}
		if n == 0 {
			continue
		}

		data := make([]byte, n)
		copy(data, buf[:n])
		s.biz.OnTcpRecvComplete(c, data, nil)
	}
}

func (s *Server) finish(c *Connection) {
	c.Disconnect()

	s.mu.Lock()
	delete(s.conns, c.ID())
	s.mu.Unlock()

	s.biz.OnTcpDisconnect(c)
}
