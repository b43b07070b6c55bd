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

package udp

import (
	"context"
	"errors"
	"net"
	"runtime"
	"sync"

	"github.com/haoxingeng/ise-sub000/business"
	liblog "github.com/haoxingeng/ise-sub000/logger"
	"github.com/haoxingeng/ise-sub000/socket/group"
	"github.com/haoxingeng/ise-sub000/socket/neterr"
	"github.com/haoxingeng/ise-sub000/socket/packet"
	"golang.org/x/sys/unix"
)

// recvBufSize is the per-read scratch buffer, an 8 KiB stack buffer;
// packet.New copies out of it immediately.
const recvBufSize = 8 * 1024

// ListenerPriority is the OS thread priority hint applied to each listener
// goroutine, using the same setpriority/SetThreadPriority approach as a
// dedicated listener thread would. Best-effort: failures are ignored.
const ListenerPriority = -5

// Listener owns one UDP socket and a pool of goroutines reading from it
// concurrently — several reader goroutines sharing one socket. Each
// goroutine classifies every packet it reads via the business object and
// routes it to the matching Group's queue.
type Listener struct {
	conn   *net.UDPConn
	biz    business.Business
	groups []*group.Group
	log    liblog.Logger

	wg sync.WaitGroup
}

// NewListener binds a UDP socket on port and wires it to groups, indexed by
// the classifier's return value.
func NewListener(port int, biz business.Business, groups []*group.Group, log liblog.Logger) (*Listener, error) {
	conn, err := net.ListenUDP("udp", &net.UDPAddr{Port: port})
	if err != nil {
		return nil, err
	}

	suppressICMPUnreachable(conn)

	return &Listener{conn: conn, biz: biz, groups: groups, log: log}, nil
}

// Start launches threadCount reader goroutines, all sharing the one socket,
// the way multiple threads calling recvfrom() on the same fd would.
func (l *Listener) Start(ctx context.Context, threadCount int) {
	if threadCount < 1 {
		threadCount = 1
	}
	for i := 0; i < threadCount; i++ {
		l.wg.Add(1)
		go l.readLoop(ctx)
	}
}

// LocalAddr reports the bound socket's address, mainly so tests and the
// lifecycle's startup log can see which port an ephemeral bind picked.
func (l *Listener) LocalAddr() net.Addr { return l.conn.LocalAddr() }

// Stop closes the socket, which unblocks every reader goroutine's pending
// read, then waits for them all to exit.
func (l *Listener) Stop() {
	_ = l.conn.Close()
	l.wg.Wait()
}

func (l *Listener) readLoop(ctx context.Context) {
	defer l.wg.Done()

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	setListenerPriority()

	buf := make([]byte, recvBufSize)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		n, peerAddr, err := l.conn.ReadFromUDPAddrPort(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			if neterr.Temporary(err) {
				continue
			}
			if l.log != nil {
				l.log.Error("udp listener read failed, thread exiting", liblog.Fields{"error": neterr.Message(err)})
			}
			return
		}
		if n <= 0 {
			continue
		}

		idx := l.biz.ClassifyUdpPacket(buf[:n])
		if idx < 0 || idx >= len(l.groups) {
			continue
		}

		p := packet.New(buf[:n], peerAddr, idx)
		l.groups[idx].Queue.Enqueue(p)
	}
}

// setListenerPriority applies ListenerPriority as a best-effort hint; a
// failure (e.g. insufficient privilege) is not fatal to the listener.
func setListenerPriority() {
	_ = unix.Setpriority(unix.PRIO_PROCESS, 0, ListenerPriority)
}

// suppressICMPUnreachable quiets the original's Windows-only
// WSAIoctl(SIO_UDP_CONNRESET) workaround, which stops a prior send's ICMP
// port-unreachable from aborting a later recvfrom on the same unconnected
// UDP socket. It is a no-op everywhere but Windows, see listener_windows.go.
func suppressICMPUnreachable(conn *net.UDPConn) {
	suppressICMPUnreachablePlatform(conn)
}
