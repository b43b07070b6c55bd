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

// Package tcp is the TCP half of the engine: one listener per configured
// server accepting connections, and a Connection wrapper offering
// synchronous and asynchronous send/recv with an idempotent disconnect and
// an opaque per-connection context.
package tcp

import (
	"context"
	"errors"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	libatm "github.com/haoxingeng/ise-sub000/atomic"
	"github.com/haoxingeng/ise-sub000/business"
	libctx "github.com/haoxingeng/ise-sub000/context"
)

// sliceWait bounds how long one Send/Recv poll waits on the socket before
// re-checking for disconnection, the Go analogue of a repeated sub-250ms
// select() loop.
const sliceWait = 250 * time.Millisecond

// Connection wraps one accepted net.Conn with the business-facing surface:
// identity, sync/async send/recv, idempotent disconnect, a keep-alive flag
// and an opaque per-connection context for the business object's own
// bookkeeping.
type Connection struct {
	id   string
	conn net.Conn

	disconnected libatm.Flag
	keepAlive    atomic.Bool

	store libctx.Config[string]

	mu sync.Mutex
}

func newConnection(parent context.Context, conn net.Conn) *Connection {
	return &Connection{
		id:    uuid.NewString(),
		conn:  conn,
		store: libctx.New[string](parent),
	}
}

func (c *Connection) ID() string           { return c.id }
func (c *Connection) RemoteAddr() string    { return c.conn.RemoteAddr().String() }
func (c *Connection) LocalAddr() string     { return c.conn.LocalAddr().String() }
func (c *Connection) Context() context.Context { return c.store }

func (c *Connection) Store(key string, val any)    { c.store.Store(key, val) }
func (c *Connection) Load(key string) (any, bool)  { return c.store.Load(key) }

func (c *Connection) SetKeepAlive(v bool) { c.keepAlive.Store(v) }
func (c *Connection) KeepAlive() bool     { return c.keepAlive.Load() }

func (c *Connection) IsDisconnected() bool { return c.disconnected.Get() }

// Disconnect is safe to call more than once and from more than one
// goroutine; only the first caller actually closes the socket.
func (c *Connection) Disconnect() {
	if !c.disconnected.CompareAndSwap(false, true) {
		return
	}
	_ = c.conn.Close()
}

// Send writes buf to the connection. If sync is true it blocks (subject to
// timeoutMs, 0 meaning no deadline) until the write completes or fails, and
// returns whatever the write returned, error included.
//
// If sync is false, this is one send attempt against a short internal
// deadline slice so a stuck peer doesn't wedge the caller indefinitely — the
// engine has no separate writer-thread event loop the way epoll-driven
// designs do, so "asynchronous" here means "bounded", not "queued" — see
// DESIGN.md. In that case a would-block/timeout is not a failure: it reports
// (0, nil) so the caller can retry later. Any other write error disconnects
// the peer and reports (-1, err).
//
// On a connection that is already disconnected, Send reports
// (-1, net.ErrClosed) if sync is false and (0, net.ErrClosed) if it is true.
func (c *Connection) Send(ctx context.Context, buf []byte, sync bool, timeoutMs int) (int, error) {
	if c.IsDisconnected() {
		if !sync {
			return -1, net.ErrClosed
		}
		return 0, net.ErrClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	deadline := c.deadlineFor(sync, timeoutMs)
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return 0, err
	}
	n, err := c.conn.Write(buf)
	if err == nil {
		return n, nil
	}

	if sync {
		return n, err
	}

	if isTimeout(err) {
		return 0, nil
	}

	c.Disconnect()
	return -1, err
}

// isTimeout reports whether err is a deadline-exceeded / would-block style
// error from the net package, as opposed to a hard connection failure.
func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// Recv reads into buf under the same sync/async deadline rule Send uses.
func (c *Connection) Recv(ctx context.Context, buf []byte, sync bool, timeoutMs int) (int, error) {
	if c.IsDisconnected() {
		return 0, net.ErrClosed
	}

	deadline := c.deadlineFor(sync, timeoutMs)
	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return 0, err
	}
	return c.conn.Read(buf)
}

func (c *Connection) deadlineFor(sync bool, timeoutMs int) time.Time {
	if sync && timeoutMs <= 0 {
		return time.Time{}
	}
	if timeoutMs > 0 {
		return time.Now().Add(time.Duration(timeoutMs) * time.Millisecond)
	}
	return time.Now().Add(sliceWait)
}

func (c *Connection) String() string {
	return "conn[" + c.id + "]"
}

var _ business.Connection = (*Connection)(nil)
