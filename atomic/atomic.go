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

// Package atomic collects the small thread-safe primitives the engine's
// pools and counters are built from: a generic concurrent map (used for
// per-connection context and group/task registries) and a handful of typed
// atomic counters.
package atomic

import (
	"sync"
	"sync/atomic"
)

// Map is a thin generic wrapper over sync.Map.
type Map[K comparable] struct {
	m sync.Map
}

func NewMap[K comparable]() *Map[K] {
	return &Map[K]{}
}

func (m *Map[K]) Load(key K) (value any, ok bool)        { return m.m.Load(key) }
func (m *Map[K]) Store(key K, value any)                 { m.m.Store(key, value) }
func (m *Map[K]) Delete(key K)                           { m.m.Delete(key) }
func (m *Map[K]) LoadAndDelete(key K) (value any, loaded bool) { return m.m.LoadAndDelete(key) }
func (m *Map[K]) LoadOrStore(key K, value any) (actual any, loaded bool) {
	return m.m.LoadOrStore(key, value)
}
func (m *Map[K]) Range(f func(key K, value any) bool) {
	m.m.Range(func(k, v any) bool {
		kk, ok := k.(K)
		if !ok {
			return true
		}
		return f(kk, v)
	})
}
func (m *Map[K]) Clean() {
	m.m.Range(func(k, _ any) bool {
		m.m.Delete(k)
		return true
	})
}
func (m *Map[K]) Len() int {
	n := 0
	m.m.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Counter is a typed int64 counter used for queue depth, open connections,
// active/idle worker counts, and similar pool bookkeeping.
type Counter struct {
	v int64
}

func (c *Counter) Add(delta int64) int64    { return atomic.AddInt64(&c.v, delta) }
func (c *Counter) Inc() int64               { return c.Add(1) }
func (c *Counter) Dec() int64               { return c.Add(-1) }
func (c *Counter) Load() int64              { return atomic.LoadInt64(&c.v) }
func (c *Counter) Store(v int64)            { atomic.StoreInt64(&c.v, v) }
func (c *Counter) CompareAndSwap(old, new int64) bool {
	return atomic.CompareAndSwapInt64(&c.v, old, new)
}

// Flag is a typed atomic boolean, used for the per-worker "terminate" flag
// and the per-connection "isDisconnected" flag.
type Flag struct {
	v int32
}

func (f *Flag) Set(b bool) {
	if b {
		atomic.StoreInt32(&f.v, 1)
	} else {
		atomic.StoreInt32(&f.v, 0)
	}
}
func (f *Flag) Get() bool { return atomic.LoadInt32(&f.v) != 0 }

// CompareAndSwap transitions the flag from old to new and reports whether it
// performed the transition; used to make disconnect idempotent.
func (f *Flag) CompareAndSwap(old, new bool) bool {
	var o, n int32
	if old {
		o = 1
	}
	if new {
		n = 1
	}
	return atomic.CompareAndSwapInt32(&f.v, o, n)
}
