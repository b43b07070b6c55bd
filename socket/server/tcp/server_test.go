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

package tcp_test

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/haoxingeng/ise-sub000/business"
	"github.com/haoxingeng/ise-sub000/socket/server/tcp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestTcp(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "tcp Suite")
}

type recordingBusiness struct {
	business.Base

	mu        sync.Mutex
	connected int
	disconn   int
	received  [][]byte
}

func (b *recordingBusiness) OnTcpConnect(c business.Connection) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.connected++
}

func (b *recordingBusiness) OnTcpDisconnect(c business.Connection) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.disconn++
}

func (b *recordingBusiness) OnTcpRecvComplete(c business.Connection, data []byte, ctx any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	b.received = append(b.received, cp)
	_, _ = c.Send(context.Background(), data, true, 0)
}

func (b *recordingBusiness) snapshot() (connected, disconn, recvCount int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.connected, b.disconn, len(b.received)
}

var _ = Describe("Server", func() {
	It("fires OnTcpConnect and echoes received data back", func() {
		biz := &recordingBusiness{}
		srv, err := tcp.New(0, biz, nil)
		Expect(err).ToNot(HaveOccurred())
		defer srv.Stop(context.Background())

		Expect(srv.Start(context.Background())).To(Succeed())

		conn, err := net.Dial("tcp", srv.Addr().String())
		Expect(err).ToNot(HaveOccurred())
		defer conn.Close()

		Eventually(func() int { c, _, _ := biz.snapshot(); return c }).Should(Equal(1))

		_, err = conn.Write([]byte("ping"))
		Expect(err).ToNot(HaveOccurred())

		buf := make([]byte, 16)
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		n, err := conn.Read(buf)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(buf[:n])).To(Equal("ping"))
	})

	It("fires OnTcpDisconnect when the peer closes", func() {
		biz := &recordingBusiness{}
		srv, err := tcp.New(0, biz, nil)
		Expect(err).ToNot(HaveOccurred())
		defer srv.Stop(context.Background())
		Expect(srv.Start(context.Background())).To(Succeed())

		conn, err := net.Dial("tcp", srv.Addr().String())
		Expect(err).ToNot(HaveOccurred())

		Eventually(func() int { c, _, _ := biz.snapshot(); return c }).Should(Equal(1))
		conn.Close()

		Eventually(func() int { _, d, _ := biz.snapshot(); return d }).Should(Equal(1))
	})

	It("tracks connection count and drops to zero on Stop", func() {
		biz := &recordingBusiness{}
		srv, err := tcp.New(0, biz, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(srv.Start(context.Background())).To(Succeed())

		conn, err := net.Dial("tcp", srv.Addr().String())
		Expect(err).ToNot(HaveOccurred())
		defer conn.Close()

		Eventually(srv.ConnectionCount).Should(Equal(1))

		Expect(srv.Stop(context.Background())).To(Succeed())
		Expect(srv.ConnectionCount()).To(Equal(0))
	})
})
