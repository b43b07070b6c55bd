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

	"github.com/haoxingeng/ise-sub000/business"
	"github.com/haoxingeng/ise-sub000/socket/server/tcp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type capturingBusiness struct {
	business.Base
	captured business.Connection
}

func (b *capturingBusiness) OnTcpConnect(c business.Connection) { b.captured = c }

var _ = Describe("Connection", func() {
	It("round-trips an opaque per-connection context store and disconnects idempotently", func() {
		biz := &capturingBusiness{}
		srv, err := tcp.New(0, biz, nil)
		Expect(err).ToNot(HaveOccurred())
		defer srv.Stop(context.Background())
		Expect(srv.Start(context.Background())).To(Succeed())

		conn, err := net.Dial("tcp", srv.Addr().String())
		Expect(err).ToNot(HaveOccurred())
		defer conn.Close()

		Eventually(func() business.Connection { return biz.captured }).ShouldNot(BeNil())

		captured := biz.captured
		captured.Store("k", "v")
		v, ok := captured.Load("k")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("v"))

		Expect(captured.IsDisconnected()).To(BeFalse())
		captured.Disconnect()
		captured.Disconnect() // idempotent, must not panic
		Expect(captured.IsDisconnected()).To(BeTrue())
	})

	It("disconnects and reports -1 on a hard async write error, after the peer is gone", func() {
		biz := &capturingBusiness{}
		srv, err := tcp.New(0, biz, nil)
		Expect(err).ToNot(HaveOccurred())
		defer srv.Stop(context.Background())
		Expect(srv.Start(context.Background())).To(Succeed())

		conn, err := net.Dial("tcp", srv.Addr().String())
		Expect(err).ToNot(HaveOccurred())

		Eventually(func() business.Connection { return biz.captured }).ShouldNot(BeNil())
		captured := biz.captured

		// Force the peer to reset the connection instead of closing cleanly,
		// so the server's next write fails hard rather than just draining
		// into a closed-but-buffered socket.
		if tc, ok := conn.(*net.TCPConn); ok {
			_ = tc.SetLinger(0)
		}
		Expect(conn.Close()).To(Succeed())

		Eventually(func() int {
			n, _ := captured.Send(context.Background(), []byte("x"), false, 0)
			return n
		}).Should(BeNumerically("==", -1))

		Expect(captured.IsDisconnected()).To(BeTrue())
	})
})
