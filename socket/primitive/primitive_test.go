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

package primitive_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/haoxingeng/ise-sub000/socket/primitive"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestPrimitive(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "primitive Suite")
}

var _ = Describe("SetNonBlocking", func() {
	It("toggles non-blocking mode on a UDP socket without error", func() {
		conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0})
		Expect(err).ToNot(HaveOccurred())
		defer conn.Close()

		Expect(primitive.SetNonBlocking(conn, true)).To(Succeed())
	})
})

var _ = Describe("DialAsync", func() {
	It("connects to a listening TCP server", func() {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).ToNot(HaveOccurred())
		defer ln.Close()

		go func() {
			c, _ := ln.Accept()
			if c != nil {
				defer c.Close()
			}
		}()

		conn, state, err := primitive.DialAsync(context.Background(), "tcp", ln.Addr().String(), time.Second)
		Expect(err).ToNot(HaveOccurred())
		Expect(state).To(Equal(primitive.Connected))
		defer conn.Close()
	})

	It("reports Failed when nothing is listening", func() {
		_, state, err := primitive.DialAsync(context.Background(), "tcp", "127.0.0.1:1", 200*time.Millisecond)
		Expect(err).To(HaveOccurred())
		Expect(state).To(Equal(primitive.Failed))
	})
})
