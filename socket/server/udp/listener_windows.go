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

//go:build windows

package udp

import (
	"net"

	"golang.org/x/sys/windows"
)

const sioUDPConnReset = windows.IOC_IN | windows.IOC_VENDOR | 12

// suppressICMPUnreachablePlatform issues SIO_UDP_CONNRESET so a later
// recvfrom on this unconnected socket doesn't fail with WSAECONNRESET just
// because an earlier send provoked an ICMP port-unreachable from some
// unrelated peer.
// Best-effort: if the syscall can't be reached, the listener still runs,
// it just tolerates the occasional spurious read error via neterr.Temporary.
func suppressICMPUnreachablePlatform(conn *net.UDPConn) {
	raw, err := conn.SyscallConn()
	if err != nil {
		return
	}
	_ = raw.Control(func(fd uintptr) {
		in := byte(0) // bNewBehavior = FALSE
		var bytesReturned uint32
		_ = windows.WSAIoctl(windows.Handle(fd), sioUDPConnReset,
			&in, 1, nil, 0, &bytesReturned, nil, 0)
	})
}
