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

// Package packet holds the unit of work the UDP pipeline moves from listener
// to queue to worker.
package packet

import (
	"net/netip"
	"time"
)

// UdpPacket owns one datagram's payload plus the metadata the classifier and
// queue need. Ownership is single-writer: the listener builds it, the queue
// holds it, the worker consumes it and lets it go — nothing retains a
// pointer to one past that handoff.
type UdpPacket struct {
	Data          []byte
	RecvTimestamp time.Time
	Peer          netip.AddrPort
	GroupIndex    int
}

// New copies buf (the listener's reused stack buffer) into a fresh
// heap-owned slice, matching the original's "packet is created by the
// listener" ownership rule — the listener's receive buffer is reused on the
// next iteration, so the packet can never alias it.
func New(buf []byte, peer netip.AddrPort, groupIndex int) *UdpPacket {
	data := make([]byte, len(buf))
	copy(data, buf)
	return &UdpPacket{
		Data:          data,
		RecvTimestamp: time.Now(),
		Peer:          peer,
		GroupIndex:    groupIndex,
	}
}

// Age reports how long ago the packet was received.
func (p *UdpPacket) Age() time.Duration {
	return time.Since(p.RecvTimestamp)
}
