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

package ticker_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/haoxingeng/ise-sub000/runner/ticker"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestTicker(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ticker Suite")
}

var _ = Describe("Ticker", func() {
	It("is not running before Start", func() {
		tk := ticker.New(10*time.Millisecond, nil)
		Expect(tk.IsRunning()).To(BeFalse())
		Expect(tk.Uptime()).To(BeZero())
	})

	It("invokes fn on every tick until stopped", func() {
		var count int32
		tk := ticker.New(10*time.Millisecond, func(ctx context.Context, t *time.Ticker) error {
			atomic.AddInt32(&count, 1)
			return nil
		})

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		Expect(tk.Start(ctx)).To(Succeed())
		Expect(tk.IsRunning()).To(BeTrue())

		Eventually(func() int32 { return atomic.LoadInt32(&count) }, time.Second).Should(BeNumerically(">=", 2))

		Expect(tk.Stop(ctx)).To(Succeed())
		Expect(tk.IsRunning()).To(BeFalse())
	})

	It("stops ticking when the parent context is cancelled", func() {
		var count int32
		ctx, cancel := context.WithCancel(context.Background())

		tk := ticker.New(5*time.Millisecond, func(ctx context.Context, t *time.Ticker) error {
			atomic.AddInt32(&count, 1)
			return nil
		})

		Expect(tk.Start(ctx)).To(Succeed())
		Eventually(func() int32 { return atomic.LoadInt32(&count) }).Should(BeNumerically(">=", 1))

		cancel()
		time.Sleep(20 * time.Millisecond)
		frozen := atomic.LoadInt32(&count)
		time.Sleep(20 * time.Millisecond)
		Expect(atomic.LoadInt32(&count)).To(Equal(frozen))
	})

	It("restarts cleanly", func() {
		tk := ticker.New(5*time.Millisecond, func(ctx context.Context, t *time.Ticker) error { return nil })
		ctx := context.Background()

		Expect(tk.Start(ctx)).To(Succeed())
		Expect(tk.Restart(ctx)).To(Succeed())
		Expect(tk.IsRunning()).To(BeTrue())
		Expect(tk.Stop(ctx)).To(Succeed())
	})
})
