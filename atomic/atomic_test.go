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

package atomic_test

import (
	"sync"
	"testing"

	libatm "github.com/haoxingeng/ise-sub000/atomic"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAtomic(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "atomic Suite")
}

var _ = Describe("Counter", func() {
	It("adds concurrently without losing updates", func() {
		c := &libatm.Counter{}
		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				c.Inc()
			}()
		}
		wg.Wait()
		Expect(c.Load()).To(Equal(int64(100)))
	})
})

var _ = Describe("Flag", func() {
	It("only lets one CompareAndSwap succeed", func() {
		f := &libatm.Flag{}
		ok1 := f.CompareAndSwap(false, true)
		ok2 := f.CompareAndSwap(false, true)
		Expect(ok1).To(BeTrue())
		Expect(ok2).To(BeFalse())
		Expect(f.Get()).To(BeTrue())
	})
})

var _ = Describe("Map", func() {
	It("stores and ranges typed keys", func() {
		m := libatm.NewMap[string]()
		m.Store("a", 1)
		m.Store("b", 2)

		v, ok := m.Load("a")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(1))

		Expect(m.Len()).To(Equal(2))

		m.Delete("a")
		Expect(m.Len()).To(Equal(1))
	})
})
