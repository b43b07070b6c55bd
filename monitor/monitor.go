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

// Package monitor exposes the engine's runtime shape as Prometheus gauges
// and counters (queue depth, worker counts, TCP connections, zombie kills)
// and samples host load for the daemon thread — an ambient observability
// layer that sits outside the core pipeline itself.
package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is the full set of gauges/counters the engine updates as it runs.
// A nil *Metrics is valid everywhere it's used (all methods below are
// nil-receiver safe), so wiring it in is optional.
type Metrics struct {
	QueueDepth     *prometheus.GaugeVec
	WorkersActive  *prometheus.GaugeVec
	WorkersIdle    *prometheus.GaugeVec
	ZombieKills    *prometheus.GaugeVec
	TcpConnections *prometheus.GaugeVec
	PacketsDropped *prometheus.GaugeVec
	PacketsExpired *prometheus.GaugeVec
}

// New registers every metric against reg (use prometheus.NewRegistry() in
// tests to avoid colliding with the default registry across test runs).
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		QueueDepth: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ise_udp_queue_depth",
			Help: "Current number of packets queued per UDP group.",
		}, []string{"group"}),
		WorkersActive: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ise_udp_workers_active",
			Help: "Worker goroutines currently tracked per UDP group.",
		}, []string{"group"}),
		WorkersIdle: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ise_udp_workers_idle",
			Help: "Worker goroutines currently idle per UDP group.",
		}, []string{"group"}),
		ZombieKills: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ise_udp_worker_zombie_kills",
			Help: "Cumulative workers reclaimed after ignoring a terminate request past the deadline, per group.",
		}, []string{"group"}),
		TcpConnections: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ise_tcp_connections",
			Help: "Currently open TCP connections per server.",
		}, []string{"server"}),
		PacketsDropped: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ise_udp_packets_dropped",
			Help: "Cumulative packets discarded by backpressure (queue full), per group.",
		}, []string{"group"}),
		PacketsExpired: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ise_udp_packets_expired",
			Help: "Cumulative packets discarded on dequeue for exceeding max wait, per group.",
		}, []string{"group"}),
	}
}
