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

// Package group pairs one request queue with one worker pool under a stable
// index. The pool type itself lives in
// socket/server/udp, since it needs the business callback and the worker
// bookkeeping the listener pool doesn't care about; Group is just the
// keyed binding the classifier routes into.
package group

import "github.com/haoxingeng/ise-sub000/socket/queue"

// Pool is the subset of the UDP worker pool a Group needs to hold; defined
// here (rather than importing socket/server/udp) to avoid a cycle, since the
// pool needs the queue at construction time.
type Pool interface {
	AdjustThreadCount()
	Shutdown()
	ActiveCount() int
}

// Group is one classifier destination: a queue and the pool draining it.
// Its Index is assigned once at construction and never changes for the
// life of the server.
type Group struct {
	Index int
	Queue *queue.Queue
	Pool  Pool
}

// New binds index to q and p for the life of the server.
func New(index int, q *queue.Queue, p Pool) *Group {
	return &Group{Index: index, Queue: q, Pool: p}
}
