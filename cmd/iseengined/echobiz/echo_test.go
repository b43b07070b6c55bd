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

package echobiz_test

import (
	"context"
	"testing"

	"github.com/haoxingeng/ise-sub000/cmd/iseengined/echobiz"
	libcfg "github.com/haoxingeng/ise-sub000/config"
	"github.com/haoxingeng/ise-sub000/version"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestEchoBiz(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "echobiz Suite")
}

// fakeConn is a minimal business.Connection double so the demo business
// object can be exercised without a real socket.
type fakeConn struct {
	id         string
	sent       [][]byte
	disconnect bool
}

func (c *fakeConn) ID() string         { return c.id }
func (c *fakeConn) RemoteAddr() string { return "127.0.0.1:5555" }
func (c *fakeConn) LocalAddr() string  { return "127.0.0.1:12345" }
func (c *fakeConn) Send(ctx context.Context, buf []byte, sync bool, timeoutMs int) (int, error) {
	c.sent = append(c.sent, append([]byte(nil), buf...))
	return len(buf), nil
}
func (c *fakeConn) Recv(ctx context.Context, buf []byte, sync bool, timeoutMs int) (int, error) {
	return 0, nil
}
func (c *fakeConn) Disconnect()                       { c.disconnect = true }
func (c *fakeConn) IsDisconnected() bool               { return c.disconnect }
func (c *fakeConn) Context() context.Context          { return context.Background() }
func (c *fakeConn) Store(key string, val any)         {}
func (c *fakeConn) Load(key string) (any, bool)       { return nil, false }

var _ = Describe("echobiz.Business", func() {
	It("echoes back whatever it receives", func() {
		b := echobiz.New(nil, version.Version{}, 12345)
		c := &fakeConn{id: "c1"}

		b.OnTcpRecvComplete(c, []byte("hello\r\n"), nil)

		Expect(c.sent).To(HaveLen(1))
		Expect(c.disconnect).To(BeFalse())
	})

	It("disconnects the peer on a bye message", func() {
		b := echobiz.New(nil, version.Version{}, 12345)
		c := &fakeConn{id: "c2"}

		b.OnTcpRecvComplete(c, []byte("bye\n"), nil)

		Expect(c.sent).To(BeEmpty())
		Expect(c.disconnect).To(BeTrue())
	})

	It("wires a single TCP server at the configured port into the options", func() {
		b := echobiz.New(nil, version.Version{}, 7777)
		opt := libcfg.Default()
		b.InitIseOptions(&opt)

		Expect(opt.TcpServerCount).To(Equal(1))
		Expect(opt.TcpServers).To(HaveLen(1))
		Expect(opt.TcpServers[0].Port).To(Equal(7777))
	})
})
