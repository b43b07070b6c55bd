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

package logger_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	liblog "github.com/haoxingeng/ise-sub000/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestLogger(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "logger Suite")
}

var _ = Describe("Logger", func() {
	It("writes to the configured output", func() {
		l := liblog.New()
		buf := &bytes.Buffer{}
		l.SetOutput(buf)

		l.Info("worker %d started", nil, 3)
		Expect(buf.String()).To(ContainSubstring("worker 3 started"))
	})

	It("merges fields from WithFields", func() {
		l := liblog.New()
		buf := &bytes.Buffer{}
		l.SetOutput(buf)

		l.WithFields(liblog.Fields{"group": 1}).Info("packet dropped", nil)
		Expect(buf.String()).To(ContainSubstring("group=1"))
	})

	It("writes through a rotating file sink", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "engine.log")

		l, err := liblog.NewFile(path, true)
		Expect(err).ToNot(HaveOccurred())
		defer l.Close()

		l.Info("started", nil)

		matches, _ := filepath.Glob(path + ".*")
		Expect(matches).ToNot(BeEmpty())

		_, statErr := os.Stat(matches[0])
		Expect(statErr).ToNot(HaveOccurred())
	})
})
