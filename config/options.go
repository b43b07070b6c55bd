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

// Package config holds Options, the viper-backed loader that decodes and
// validates them, and the Manager that sequences the engine's components
// through Start/Reload/Stop the way the lifecycle controller needs.
package config

import (
	"fmt"

	libdur "github.com/haoxingeng/ise-sub000/duration"
)

// ServerType is the bitmask of enabled transports.
type ServerType uint8

const (
	ServerUDP ServerType = 1 << iota
	ServerTCP
)

func (s ServerType) Has(t ServerType) bool { return s&t != 0 }

// GroupOptions is one UDP group's share of Options.
type GroupOptions struct {
	RequestQueueCapacity int `mapstructure:"requestQueueCapacity" validate:"gte=1"`
	MinWorkerThreads     int `mapstructure:"minWorkerThreads" validate:"gte=1"`
	MaxWorkerThreads     int `mapstructure:"maxWorkerThreads" validate:"gtefield=MinWorkerThreads"`
}

// TcpServerOptions is one TCP listener's share of Options.
type TcpServerOptions struct {
	Port int `mapstructure:"port" validate:"gte=1,lte=65535"`
}

// Options holds every tunable the engine reads at startup.
type Options struct {
	LogFileName     string `mapstructure:"logFileName"`
	LogNewFileDaily bool   `mapstructure:"logNewFileDaily"`

	IsDaemon          bool `mapstructure:"isDaemon"`
	AllowMultiInstance bool `mapstructure:"allowMultiInstance"`

	ServerType ServerType `mapstructure:"serverType"`

	AdjustThreadInterval libdur.Duration `mapstructure:"adjustThreadInterval"`
	AssistorThreadCount  int             `mapstructure:"assistorThreadCount" validate:"gte=0"`

	UdpServerPort           int             `mapstructure:"udpServerPort"`
	UdpListenerThreadCount  int             `mapstructure:"udpListenerThreadCount" validate:"gte=1"`
	UdpRequestGroupCount    int             `mapstructure:"udpRequestGroupCount" validate:"gte=1"`
	UdpGroups               []GroupOptions  `mapstructure:"udpGroups" validate:"dive"`
	UdpRequestEffWaitTime   libdur.Duration `mapstructure:"udpRequestEffWaitTime"`
	UdpWorkerThreadTimeOut  libdur.Duration `mapstructure:"udpWorkerThreadTimeOut"`
	UdpRequestQueueAlertLine int            `mapstructure:"udpRequestQueueAlertLine" validate:"gte=1"`

	TcpServerCount    int                `mapstructure:"tcpServerCount" validate:"gte=0"`
	TcpServers        []TcpServerOptions `mapstructure:"tcpServers" validate:"dive"`
	TcpEventLoopCount int                `mapstructure:"tcpEventLoopCount" validate:"gte=1"`
}

// Default returns sane defaults, then Clamp applies the clamping rules on
// top of whatever a loaded file overrides.
func Default() Options {
	return Options{
		AdjustThreadInterval:     libdur.Seconds(5),
		AssistorThreadCount:      0,
		UdpListenerThreadCount:   1,
		UdpRequestGroupCount:     1,
		UdpGroups:                []GroupOptions{{RequestQueueCapacity: 1000, MinWorkerThreads: 1, MaxWorkerThreads: 4}},
		UdpRequestEffWaitTime:    libdur.Seconds(5),
		UdpWorkerThreadTimeOut:   0,
		UdpRequestQueueAlertLine: 800,
		TcpEventLoopCount:        1,
	}
}

// Clamp enforces the "floor at 1" rules that are sensible to clamp silently
// rather than reject outright.
func (o *Options) Clamp() {
	if o.AdjustThreadInterval.Time() < 0 {
		o.AdjustThreadInterval = libdur.Seconds(1)
	}
	if o.AdjustThreadInterval == 0 {
		o.AdjustThreadInterval = libdur.Seconds(5)
	}
	if o.UdpListenerThreadCount < 1 {
		o.UdpListenerThreadCount = 1
	}
	if o.UdpRequestGroupCount < 1 {
		o.UdpRequestGroupCount = 1
	}
	if o.TcpEventLoopCount < 1 {
		o.TcpEventLoopCount = 1
	}
	for i := range o.UdpGroups {
		g := &o.UdpGroups[i]
		if g.RequestQueueCapacity < 1 {
			g.RequestQueueCapacity = 1
		}
		if g.MinWorkerThreads < 1 {
			g.MinWorkerThreads = 1
		}
		if g.MaxWorkerThreads < g.MinWorkerThreads {
			g.MaxWorkerThreads = g.MinWorkerThreads
		}
	}
}

func (g GroupOptions) String() string {
	return fmt.Sprintf("cap=%d min=%d max=%d", g.RequestQueueCapacity, g.MinWorkerThreads, g.MaxWorkerThreads)
}
