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

package neterr_test

import (
	"fmt"
	"testing"

	"github.com/haoxingeng/ise-sub000/socket/neterr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/sys/unix"
)

func TestNetErr(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "neterr Suite")
}

var _ = Describe("Lookup", func() {
	It("maps ECONNRESET to its portable id", func() {
		Expect(neterr.Lookup(unix.ECONNRESET)).To(Equal(neterr.ECONNRESET))
	})

	It("maps EAGAIN to EWOULDBLOCK", func() {
		Expect(neterr.Lookup(unix.EAGAIN)).To(Equal(neterr.EWOULDBLOCK))
	})

	It("falls back to EUNKNOWN for a non-errno error", func() {
		Expect(neterr.Lookup(fmt.Errorf("not an errno"))).To(Equal(neterr.EUNKNOWN))
	})

	It("treats EINTR and EAGAIN as temporary", func() {
		Expect(neterr.Temporary(unix.EINTR)).To(BeTrue())
		Expect(neterr.Temporary(unix.EAGAIN)).To(BeTrue())
		Expect(neterr.Temporary(unix.ECONNRESET)).To(BeFalse())
	})

	It("renders a greppable message", func() {
		msg := neterr.Message(unix.ECONNRESET)
		Expect(msg).To(ContainSubstring("ECONNRESET"))
	})
})
