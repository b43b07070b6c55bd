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

package console_test

import (
	"bytes"
	"testing"

	libcsl "github.com/haoxingeng/ise-sub000/console"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestConsole(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "console Suite")
}

var _ = Describe("Console", func() {
	It("writes the banner to the configured output", func() {
		buf := &bytes.Buffer{}
		libcsl.SetOutput(buf)
		defer libcsl.SetOutput(nil)

		libcsl.Banner("iseengined", "1.0.0", "abc123", "MIT")
		Expect(buf.String()).To(ContainSubstring("iseengined"))
		Expect(buf.String()).To(ContainSubstring("MIT"))
	})

	It("pads strings to the requested width", func() {
		Expect(libcsl.PadRight("ab", 5, '.')).To(Equal("ab..."))
		Expect(libcsl.PadRight("abcdef", 3, '.')).To(Equal("abcdef"))
	})
})
