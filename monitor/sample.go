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

package monitor

import (
	"fmt"

	"github.com/haoxingeng/ise-sub000/socket/server/tcp"
	"github.com/haoxingeng/ise-sub000/socket/server/udp"
)

// poolDetail is the subset of *udp.Pool's surface the sampler needs beyond
// what group.Pool already promises; satisfied by the concrete pool type
// handed back from udp.Server.Groups()[i].Pool.
type poolDetail interface {
	ActiveCount() int
	IdleCount() int
	ZombieKills() int64
}

// SampleUDP refreshes queue depth, worker and zombie-kill gauges/counters
// for every group of srv. Safe to call on a nil *Metrics or nil srv.
func (m *Metrics) SampleUDP(srv *udp.Server) {
	if m == nil || srv == nil {
		return
	}
	for _, g := range srv.Groups() {
		label := fmt.Sprintf("%d", g.Index)
		m.QueueDepth.WithLabelValues(label).Set(float64(g.Queue.Len()))

		_, dropped, expired := g.Queue.Stats()
		m.PacketsDropped.WithLabelValues(label).Set(float64(dropped))
		m.PacketsExpired.WithLabelValues(label).Set(float64(expired))

		if pd, ok := g.Pool.(poolDetail); ok {
			m.WorkersActive.WithLabelValues(label).Set(float64(pd.ActiveCount()))
			m.WorkersIdle.WithLabelValues(label).Set(float64(pd.IdleCount()))
			m.ZombieKills.WithLabelValues(label).Set(float64(pd.ZombieKills()))
		}
	}
}

// SampleTCP refreshes the connection-count gauge for one named TCP server.
// Safe to call on a nil *Metrics or nil srv.
func (m *Metrics) SampleTCP(name string, srv *tcp.Server) {
	if m == nil || srv == nil {
		return
	}
	m.TcpConnections.WithLabelValues(name).Set(float64(srv.ConnectionCount()))
}
