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

// Package context wraps a context.Context with a concurrent key/value store.
// The engine uses it twice: as the opaque per-connection context a
// TcpConnection carries, set by the business object, and as the lifecycle
// controller's process-wide state object — globals represented explicitly
// instead of as package-level state, with explicit init/shutdown.
package context

import (
	"context"
	"time"

	libatm "github.com/haoxingeng/ise-sub000/atomic"
)

// Config is a context.Context plus a typed concurrent map of key T to any
// value. It satisfies context.Context so it can be passed to anything that
// expects one, while also letting a caller Store/Load arbitrary business
// state without a second synchronization primitive.
type Config[T comparable] interface {
	context.Context

	Store(key T, val any)
	Load(key T) (val any, ok bool)
	Delete(key T)
	Clean()
	Walk(fct func(key T, val any) bool)

	// GetContext returns the underlying context.Context (e.g. to pass to a
	// function that must not see the Store/Load surface).
	GetContext() context.Context
	// WithCancel derives a child Config holding a copy of the current
	// entries (later stores on either side are not shared) and a new
	// cancellable context.Context.
	WithCancel() (Config[T], context.CancelFunc)
}

type cfg[T comparable] struct {
	x context.Context
	m *libatm.Map[T]
}

// New builds a Config rooted at parent (context.Background() if nil).
func New[T comparable](parent context.Context) Config[T] {
	if parent == nil {
		parent = context.Background()
	}
	return &cfg[T]{x: parent, m: libatm.NewMap[T]()}
}

func (c *cfg[T]) Deadline() (deadline time.Time, ok bool) { return c.x.Deadline() }
func (c *cfg[T]) Done() <-chan struct{}                   { return c.x.Done() }
func (c *cfg[T]) Err() error                              { return c.x.Err() }

func (c *cfg[T]) Value(key any) any {
	if k, ok := key.(T); ok {
		if v, found := c.m.Load(k); found {
			return v
		}
	}
	return c.x.Value(key)
}

func (c *cfg[T]) Store(key T, val any)  { c.m.Store(key, val) }
func (c *cfg[T]) Load(key T) (any, bool) { return c.m.Load(key) }
func (c *cfg[T]) Delete(key T)          { c.m.Delete(key) }
func (c *cfg[T]) Clean()                { c.m.Clean() }

func (c *cfg[T]) Walk(fct func(key T, val any) bool) {
	c.m.Range(fct)
}

func (c *cfg[T]) GetContext() context.Context { return c.x }

func (c *cfg[T]) WithCancel() (Config[T], context.CancelFunc) {
	x, cnl := context.WithCancel(c.x)
	n := &cfg[T]{x: x, m: libatm.NewMap[T]()}
	c.m.Range(func(k T, v any) bool {
		n.m.Store(k, v)
		return true
	})
	return n, cnl
}
