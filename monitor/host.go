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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

// HostGauges are the host-load gauges the once-a-second daemon thread
// refreshes — a resource-sampling role a production deployment of this
// engine would want even though the bare maintenance tick doesn't need it.
type HostGauges struct {
	CPUPercent prometheus.Gauge
	LoadAvg1   prometheus.Gauge
	MemUsedPct prometheus.Gauge
}

func NewHostGauges(reg prometheus.Registerer) *HostGauges {
	f := promauto.With(reg)
	return &HostGauges{
		CPUPercent: f.NewGauge(prometheus.GaugeOpts{
			Name: "ise_host_cpu_percent",
			Help: "Host-wide CPU utilization percentage, sampled once a second.",
		}),
		LoadAvg1: f.NewGauge(prometheus.GaugeOpts{
			Name: "ise_host_load1",
			Help: "1-minute load average.",
		}),
		MemUsedPct: f.NewGauge(prometheus.GaugeOpts{
			Name: "ise_host_mem_used_percent",
			Help: "Used memory percentage.",
		}),
	}
}

// Sample refreshes the host gauges. Each sub-sample is best-effort: a
// failure (e.g. unsupported platform) logs nothing and just skips that
// gauge, since this runs once a second on the daemon thread and a single
// metric being stale is not worth failing the tick over.
func (h *HostGauges) Sample() {
	if h == nil {
		return
	}
	if pct, err := cpu.Percent(0, false); err == nil && len(pct) > 0 {
		h.CPUPercent.Set(pct[0])
	}
	if avg, err := load.Avg(); err == nil {
		h.LoadAvg1.Set(avg.Load1)
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		h.MemUsedPct.Set(vm.UsedPercent)
	}
}
