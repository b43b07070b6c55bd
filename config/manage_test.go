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

package config_test

import (
	"context"

	libcfg "github.com/haoxingeng/ise-sub000/config"
	liberr "github.com/haoxingeng/ise-sub000/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type fakeComponent struct {
	name         string
	failStart    bool
	startCalled  bool
	stopCalled   bool
	reloadCalled bool
	order        *[]string
}

func (f *fakeComponent) Name() string { return f.name }
func (f *fakeComponent) Start(ctx context.Context) error {
	f.startCalled = true
	*f.order = append(*f.order, "start:"+f.name)
	if f.failStart {
		return liberr.Thread("boom", nil)
	}
	return nil
}
func (f *fakeComponent) Reload(ctx context.Context) error {
	f.reloadCalled = true
	return nil
}
func (f *fakeComponent) Stop(ctx context.Context) error {
	f.stopCalled = true
	*f.order = append(*f.order, "stop:"+f.name)
	return nil
}

var _ = Describe("Manager", func() {
	It("starts components in registration order and stops in reverse", func() {
		var order []string
		m := libcfg.NewManager(context.Background(), libcfg.Default())

		a := &fakeComponent{name: "udp", order: &order}
		b := &fakeComponent{name: "tcp", order: &order}
		m.Register(a)
		m.Register(b)

		Expect(m.Start()).To(BeNil())
		Expect(order).To(Equal([]string{"start:udp", "start:tcp"}))

		Expect(m.Stop()).To(BeNil())
		Expect(order).To(Equal([]string{"start:udp", "start:tcp", "stop:tcp", "stop:udp"}))
	})

	It("collects every component's start error instead of stopping at the first", func() {
		var order []string
		m := libcfg.NewManager(context.Background(), libcfg.Default())

		a := &fakeComponent{name: "udp", order: &order, failStart: true}
		b := &fakeComponent{name: "tcp", order: &order, failStart: true}
		m.Register(a)
		m.Register(b)

		err := m.Start()
		Expect(err).ToNot(BeNil())
		Expect(a.startCalled).To(BeTrue())
		Expect(b.startCalled).To(BeTrue())
	})

	It("runs registered before/after hooks", func() {
		m := libcfg.NewManager(context.Background(), libcfg.Default())

		var seen []string
		m.RegisterFuncStartBefore(func() liberr.Error {
			seen = append(seen, "before")
			return nil
		})
		m.RegisterFuncStartAfter(func() liberr.Error {
			seen = append(seen, "after")
			return nil
		})

		Expect(m.Start()).To(BeNil())
		Expect(seen).To(Equal([]string{"before", "after"}))
	})
})
