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

// Package business is the plugin surface the engine calls into. Rather than
// a base class with virtual methods and empty default bodies, application
// code satisfies the Business interface directly, and Base gives it the same
// "override only what you need" ergonomics through embedding.
package business

import (
	"context"

	libcfg "github.com/haoxingeng/ise-sub000/config"
	"github.com/haoxingeng/ise-sub000/socket/packet"
)

// StartupState mirrors the three points doStartupState can be called at.
type StartupState uint8

const (
	BeforeStart StartupState = iota
	AfterStart
	StartFail
)

func (s StartupState) String() string {
	switch s {
	case BeforeStart:
		return "BEFORE_START"
	case AfterStart:
		return "AFTER_START"
	case StartFail:
		return "START_FAIL"
	default:
		return "UNKNOWN"
	}
}

// Worker is the minimal view of a UDP worker the business needs when
// DispatchUdpPacket is called; socket/server/udp.Worker implements it.
// Keeping this here (instead of importing socket/server/udp) is what lets
// socket/server/udp import business without a cycle.
type Worker interface {
	GroupIndex() int
	WorkerIndex() int
}

// Connection is the minimal view of a TCP connection the business needs;
// socket/server/tcp.Connection implements it. Same cycle-avoidance as Worker.
type Connection interface {
	ID() string
	RemoteAddr() string
	LocalAddr() string
	Send(ctx context.Context, buf []byte, sync bool, timeoutMs int) (int, error)
	Recv(ctx context.Context, buf []byte, sync bool, timeoutMs int) (int, error)
	Disconnect()
	IsDisconnected() bool
	Context() context.Context
	Store(key string, val any)
	Load(key string) (any, bool)
}

// Business is the full plugin surface the engine drives.
type Business interface {
	Initialize(ctx context.Context) error
	Finalize(ctx context.Context) error
	ParseArguments(args []string) bool

	GetAppVersion() string
	GetAppHelp() string

	DoStartupState(state StartupState)
	InitIseOptions(opt *libcfg.Options)

	// ClassifyUdpPacket returns the destination group index for a packet,
	// or -1 to drop it. The default (via Base) is group 0.
	ClassifyUdpPacket(data []byte) int
	DispatchUdpPacket(worker Worker, groupIndex int, p *packet.UdpPacket)

	OnTcpConnect(conn Connection)
	OnTcpDisconnect(conn Connection)
	OnTcpRecvComplete(conn Connection, data []byte, ctx any)
	OnTcpSendComplete(conn Connection, ctx any)

	AssistorThreadExecute(ctx context.Context, assistorIndex int) error
	DaemonThreadExecute(ctx context.Context, secondCount int64) error
}

// Base gives every method of Business a no-op/sane-default body, the same
// role IseBusiness's empty virtuals played — embed it and override only the
// hooks a particular service cares about.
type Base struct{}

func (Base) Initialize(ctx context.Context) error { return nil }
func (Base) Finalize(ctx context.Context) error   { return nil }
func (Base) ParseArguments(args []string) bool    { return true }

func (Base) GetAppVersion() string { return "1.0.0.0" }
func (Base) GetAppHelp() string    { return "" }

func (Base) DoStartupState(state StartupState)       {}
func (Base) InitIseOptions(opt *libcfg.Options)       {}

func (Base) ClassifyUdpPacket(data []byte) int { return 0 }
func (Base) DispatchUdpPacket(worker Worker, groupIndex int, p *packet.UdpPacket) {}

func (Base) OnTcpConnect(conn Connection)                        {}
func (Base) OnTcpDisconnect(conn Connection)                      {}
func (Base) OnTcpRecvComplete(conn Connection, data []byte, ctx any) {}
func (Base) OnTcpSendComplete(conn Connection, ctx any)           {}

func (Base) AssistorThreadExecute(ctx context.Context, assistorIndex int) error { return nil }
func (Base) DaemonThreadExecute(ctx context.Context, secondCount int64) error   { return nil }

var _ Business = Base{}
