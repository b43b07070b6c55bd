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
	"context"
	"fmt"

	"github.com/haoxingeng/ise-sub000/lifecycle"
	"github.com/prometheus/client_golang/prometheus"
)

// Sampler bundles the engine-shape metrics and the host-load gauges and
// refreshes both from the controller's own once-a-second system thread, so
// no extra goroutine or ticker is needed.
type Sampler struct {
	Metrics *Metrics
	Host    *HostGauges
}

// Attach builds a Sampler registered against reg and sets a callback on
// ctrl's daemon thread tick, so every second it refreshes host load plus
// every UDP group's queue/worker gauges and every TCP server's connection
// count. Call before ctrl.Run.
func Attach(reg prometheus.Registerer, ctrl *lifecycle.Controller) *Sampler {
	s := &Sampler{Metrics: New(reg), Host: NewHostGauges(reg)}

	d := ctrl.DaemonThread()
	if d == nil {
		return s
	}
	d.SetOnTick(func(ctx context.Context, seconds int64) {
		s.Host.Sample()
		s.Metrics.SampleUDP(ctrl.UDPServer())
		for i, t := range ctrl.TCPServers() {
			s.Metrics.SampleTCP(fmt.Sprintf("tcp-server-%d", i), t)
		}
	})
	return s
}
