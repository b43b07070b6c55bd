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

package monitor_test

import (
	"net/netip"
	"testing"

	"github.com/haoxingeng/ise-sub000/business"
	libcfg "github.com/haoxingeng/ise-sub000/config"
	"github.com/haoxingeng/ise-sub000/monitor"
	"github.com/haoxingeng/ise-sub000/socket/packet"
	"github.com/haoxingeng/ise-sub000/socket/server/udp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestMonitor(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "monitor Suite")
}

func gaugeValue(g prometheus.Gauge) float64 {
	var m dto.Metric
	Expect(g.Write(&m)).To(Succeed())
	return m.GetGauge().GetValue()
}

func vecValue(v *prometheus.GaugeVec, label string) float64 {
	return gaugeValue(v.WithLabelValues(label))
}

var _ = Describe("Metrics.SampleUDP", func() {
	It("reports queue depth and worker counts for a server's groups", func() {
		reg := prometheus.NewRegistry()
		m := monitor.New(reg)

		srv, err := udp.New(libcfg.Default(), business.Base{}, nil)
		Expect(err).NotTo(HaveOccurred())

		q := srv.Groups()[0].Queue
		q.Enqueue(packet.New([]byte("hi"), netip.MustParseAddrPort("127.0.0.1:1"), 0))

		m.SampleUDP(srv)

		Expect(vecValue(m.QueueDepth, "0")).To(Equal(1.0))
		Expect(vecValue(m.WorkersActive, "0")).To(BeNumerically(">=", 1))
	})
})

var _ = Describe("HostGauges.Sample", func() {
	It("populates host gauges without error", func() {
		reg := prometheus.NewRegistry()
		h := monitor.NewHostGauges(reg)
		h.Sample()
		Expect(gaugeValue(h.MemUsedPct)).To(BeNumerically(">=", 0))
	})
})
