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

package version_test

import (
	"testing"
	"time"

	libver "github.com/haoxingeng/ise-sub000/version"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestVersion(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "version Suite")
}

var _ = Describe("Version", func() {
	It("falls back to now() on an invalid date", func() {
		before := time.Now()
		v := libver.New(libver.LicenseMIT, "ise", "engine", "not-a-date", "abc", "v1", "me")
		Expect(v.Date).To(BeTemporally(">=", before))
	})

	It("formats a version string", func() {
		v := libver.New(libver.LicenseMIT, "ise", "engine", time.Now().Format(time.RFC3339), "abc123", "v1.0.0", "me")
		Expect(v.String()).To(ContainSubstring("v1.0.0"))
		Expect(v.String()).To(ContainSubstring("abc123"))
	})

	It("formats help text with license and author", func() {
		v := libver.New(libver.LicenseMIT, "ise", "engine", time.Now().Format(time.RFC3339), "abc123", "v1.0.0", "me")
		Expect(v.Help()).To(ContainSubstring("MIT"))
		Expect(v.Help()).To(ContainSubstring("me"))
	})
})
