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

// Package primitive wraps the raw non-blocking socket operations the
// listener and connection layers build on: mode toggling, sockopt access
// and the asynchronous TCP connect state machine.
package primitive

import (
	"context"
	"net"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// ConnectState is where an asynchronous connect currently stands.
type ConnectState uint8

const (
	Connecting ConnectState = iota
	Connected
	Failed
)

// SetNonBlocking toggles O_NONBLOCK on the raw fd backing conn, the
// portable equivalent of the original's ioctlsocket(FIONBIO)/fcntl dance.
func SetNonBlocking(conn syscall.Conn, nonBlocking bool) error {
	raw, err := conn.SyscallConn()
	if err != nil {
		return err
	}

	var opErr error
	err = raw.Control(func(fd uintptr) {
		opErr = unix.SetNonblock(int(fd), nonBlocking)
	})
	if err != nil {
		return err
	}
	return opErr
}

// SetSockOptInt wraps setsockopt for the handful of integer options the
// engine needs (SO_REUSEADDR, SO_RCVBUF, SO_SNDBUF...).
func SetSockOptInt(conn syscall.Conn, level, opt, value int) error {
	raw, err := conn.SyscallConn()
	if err != nil {
		return err
	}

	var opErr error
	err = raw.Control(func(fd uintptr) {
		opErr = unix.SetsockoptInt(int(fd), level, opt, value)
	})
	if err != nil {
		return err
	}
	return opErr
}

// GetSockOptInt wraps getsockopt, used to read SO_ERROR after a
// non-blocking connect becomes writable.
func GetSockOptInt(conn syscall.Conn, level, opt int) (int, error) {
	raw, err := conn.SyscallConn()
	if err != nil {
		return 0, err
	}

	var value int
	var opErr error
	err = raw.Control(func(fd uintptr) {
		value, opErr = unix.GetsockoptInt(int(fd), level, opt)
	})
	if err != nil {
		return 0, err
	}
	return value, opErr
}

// DialAsync issues a non-blocking connect and polls it to completion or
// deadline, reporting the terminal ConnectState: issue non-blocking
// connect, then select up to a deadline, distinguishing
// CONNECTING/CONNECTED/FAILED. net.Dialer already performs this dance
// internally; DialAsync exposes the three states a caller needs without
// re-implementing raw connect()/select() on top of it.
func DialAsync(ctx context.Context, network, addr string, deadline time.Duration) (net.Conn, ConnectState, error) {
	d := net.Dialer{}

	dctx := ctx
	var cancel context.CancelFunc
	if deadline > 0 {
		dctx, cancel = context.WithTimeout(ctx, deadline)
		defer cancel()
	}

	conn, err := d.DialContext(dctx, network, addr)
	if err != nil {
		if dctx.Err() != nil {
			return nil, Connecting, err
		}
		return nil, Failed, err
	}

	return conn, Connected, nil
}
