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

// Package echobiz is the engine's demo business object: a line-oriented TCP
// echo service. Every connected peer gets its bytes echoed back verbatim;
// sending "bye" disconnects it.
package echobiz

import (
	"bytes"
	"context"
	"strings"

	"github.com/haoxingeng/ise-sub000/business"
	libcfg "github.com/haoxingeng/ise-sub000/config"
	liblog "github.com/haoxingeng/ise-sub000/logger"
	"github.com/haoxingeng/ise-sub000/version"
)

// Business is the echo demo's business object. It embeds business.Base so
// it only needs to override the TCP hooks and the startup/version plumbing
// the original echo.cpp/echo.h sample overrides.
type Business struct {
	business.Base

	Log  liblog.Logger
	Ver  version.Version
	Port int
}

func New(log liblog.Logger, ver version.Version, port int) *Business {
	return &Business{Log: log, Ver: ver, Port: port}
}

func (b *Business) GetAppVersion() string { return b.Ver.String() }
func (b *Business) GetAppHelp() string    { return b.Ver.Help() }

func (b *Business) Initialize(ctx context.Context) error { return nil }

func (b *Business) Finalize(ctx context.Context) error {
	if b.Log != nil {
		b.Log.Info("echo server stopped", nil)
	}
	return nil
}

func (b *Business) DoStartupState(state business.StartupState) {
	if b.Log == nil {
		return
	}
	switch state {
	case business.AfterStart:
		b.Log.Info("echo server started", nil)
	case business.StartFail:
		b.Log.Error("failed to start echo server", nil)
	}
}

// InitIseOptions sets a single TCP server on b.Port and leaves UDP disabled,
// the Go shape of the original's initIseOptions (ST_TCP, one server, one
// event-loop-worth of goroutines per connection instead of libevent loops).
func (b *Business) InitIseOptions(opt *libcfg.Options) {
	opt.ServerType = libcfg.ServerTCP
	opt.TcpServerCount = 1
	opt.TcpServers = []libcfg.TcpServerOptions{{Port: b.Port}}
	opt.TcpEventLoopCount = 1
}

func (b *Business) OnTcpConnect(conn business.Connection) {
	if b.Log != nil {
		b.Log.Info("connection accepted", liblog.Fields{"conn": conn.ID(), "peer": conn.RemoteAddr()})
	}
}

func (b *Business) OnTcpDisconnect(conn business.Connection) {
	if b.Log != nil {
		b.Log.Info("connection closed", liblog.Fields{"conn": conn.ID(), "peer": conn.RemoteAddr()})
	}
}

func (b *Business) OnTcpRecvComplete(conn business.Connection, data []byte, ctx any) {
	msg := strings.TrimSpace(string(bytes.TrimRight(data, "\r\n")))
	if b.Log != nil {
		b.Log.Debug("received message", liblog.Fields{"conn": conn.ID(), "message": msg})
	}

	if msg == "bye" {
		conn.Disconnect()
		return
	}

	if _, err := conn.Send(context.Background(), data, false, 0); err != nil && b.Log != nil {
		b.Log.Warning("echo write failed", liblog.Fields{"conn": conn.ID(), "error": err.Error()})
	}
}

func (b *Business) OnTcpSendComplete(conn business.Connection, ctx any) {
	if b.Log != nil {
		b.Log.Debug("send complete", liblog.Fields{"conn": conn.ID()})
	}
}

var _ business.Business = (*Business)(nil)
