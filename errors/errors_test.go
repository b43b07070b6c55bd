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

package errors_test

import (
	"testing"

	liberr "github.com/haoxingeng/ise-sub000/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestErrors(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "errors Suite")
}

var _ = Describe("Error creation", func() {
	It("carries its kind in the message", func() {
		e := liberr.Network("dial failed", nil)
		Expect(e.Kind()).To(Equal(liberr.KindNetwork))
		Expect(e.Error()).To(ContainSubstring("NetworkError"))
	})

	It("captures a trace location", func() {
		e := liberr.Config("bad option", nil)
		Expect(e.Trace()).To(ContainSubstring("errors_test.go"))
	})

	It("wraps an underlying cause", func() {
		cause := liberr.Thread("join timed out", nil)
		e := liberr.New(liberr.KindThread, "worker pool shutdown", cause)
		Expect(e.Unwrap()).To(Equal(cause))
		Expect(e.Error()).To(ContainSubstring("join timed out"))
	})

	It("collects parents without losing the first failure", func() {
		e := liberr.File("finalize", nil)
		e.Add(liberr.Network("udp close", nil), liberr.Thread("join", nil))
		Expect(e.Parents()).To(HaveLen(2))
	})

	It("reports IsKind through the parent chain", func() {
		e := liberr.File("finalize", nil)
		e.Add(liberr.Network("udp close", nil))
		Expect(liberr.IsKind(e, liberr.KindNetwork)).To(BeTrue())
	})
})
