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

package udp_test

import (
	"context"
	"net"

	"github.com/haoxingeng/ise-sub000/business"
	"github.com/haoxingeng/ise-sub000/socket/group"
	"github.com/haoxingeng/ise-sub000/socket/queue"
	"github.com/haoxingeng/ise-sub000/socket/server/udp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Listener", func() {
	It("routes a received datagram into the classified group's queue", func() {
		q0 := queue.New(10, 0)
		q1 := queue.New(10, 0)
		g0 := group.New(0, q0, nil)
		g1 := group.New(1, q1, nil)

		biz := &classifyOnly{}
		ln, err := udp.NewListener(0, biz, []*group.Group{g0, g1}, nil)
		Expect(err).ToNot(HaveOccurred())
		defer ln.Stop()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		ln.Start(ctx, 1)

		addr := ln.LocalAddr()
		conn, err := net.Dial("udp", addr.String())
		Expect(err).ToNot(HaveOccurred())
		defer conn.Close()

		_, err = conn.Write([]byte("hello world"))
		Expect(err).ToNot(HaveOccurred())

		Eventually(func() int { return q1.Len() }).Should(Equal(1))
		Expect(q0.Len()).To(Equal(0))
	})
})

type classifyOnly struct{ business.Base }

func (classifyOnly) ClassifyUdpPacket(data []byte) int {
	if len(data) < 4 {
		return 0
	}
	return 1
}
