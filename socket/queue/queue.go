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

// Package queue is the bounded per-group FIFO packets sit in between the
// UDP listener and the worker pool.
package queue

import (
	"container/list"
	"sync"
	"time"

	"github.com/haoxingeng/ise-sub000/socket/packet"
)

// Queue is a per-group bounded FIFO of *packet.UdpPacket with drop-head
// backpressure and age-based eviction on dequeue.
type Queue struct {
	mu       sync.Mutex
	cond     *sync.Cond
	items    *list.List
	capacity int
	maxWait  time.Duration
	closed   bool

	dropped  int64
	expired  int64
	enqueued int64
}

// New builds a Queue bounded to capacity packets, discarding on dequeue any
// packet older than maxWait.
func New(capacity int, maxWait time.Duration) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	q := &Queue{
		items:    list.New(),
		capacity: capacity,
		maxWait:  maxWait,
	}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Enqueue pushes p onto the tail. If the queue is already at capacity, the
// head (oldest) packet is discarded first so count stays unchanged — a
// "drop oldest then push" policy; a "drop newest" variant would simply
// refuse p instead, see DropNewest.
func (q *Queue) Enqueue(p *packet.UdpPacket) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	if q.items.Len() >= q.capacity {
		q.items.Remove(q.items.Front())
		q.dropped++
	}

	q.items.PushBack(p)
	q.enqueued++
	q.cond.Signal()
}

// DropNewest is the alternative backpressure policy: when full, the new
// packet is the one discarded and the queue is left untouched.
func (q *Queue) DropNewest(p *packet.UdpPacket) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	if q.items.Len() >= q.capacity {
		q.dropped++
		return
	}

	q.items.PushBack(p)
	q.enqueued++
	q.cond.Signal()
}

// Dequeue blocks until a packet is available or the queue is closed. It
// silently discards packets older than maxWait and keeps looking.
// Returns nil, false once the queue is closed and drained.
func (q *Queue) Dequeue() (*packet.UdpPacket, bool) {
	return q.DequeueUnless(nil)
}

// DequeueUnless is Dequeue with an extra exit door: stop is consulted every
// time the waiter is woken with nothing to dequeue, so a caller with its own
// shutdown signal — a worker's terminate flag, woken via a bare
// WakeupWaiting call that carries no item — can give up instead of
// re-entering Wait forever. A nil stop behaves exactly like Dequeue.
// Returns nil, false once the queue is closed and drained, or once stop
// reports true.
func (q *Queue) DequeueUnless(stop func() bool) (*packet.UdpPacket, bool) {
	if stop == nil {
		stop = func() bool { return false }
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	for {
		for q.items.Len() == 0 && !q.closed && !stop() {
			q.cond.Wait()
		}

		if q.items.Len() == 0 {
			if q.closed || stop() {
				return nil, false
			}
		}

		e := q.items.Front()
		q.items.Remove(e)
		p := e.Value.(*packet.UdpPacket)

		if q.maxWait > 0 && p.Age() > q.maxWait {
			q.expired++
			continue
		}

		return p, true
	}
}

// WakeupWaiting wakes every blocked dequeuer without closing the queue when
// n > 0, so the ones whose stop function now reports true return (the
// caller flags at most n of them) and the rest wait again; used by the
// worker pool to shrink and by shutdown to unblock every worker at once.
func (q *Queue) WakeupWaiting(n int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if n > 0 {
		q.cond.Broadcast()
	}
}

// Clear discards every queued packet without closing the queue.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items.Init()
}

// Close marks the queue as shutting down and wakes every blocked dequeuer;
// they observe empty-and-closed and return false.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cond.Broadcast()
}

// Len reports the current queue depth.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Len()
}

// Stats returns the lifetime counters used by the alert-line check and by
// monitoring.
func (q *Queue) Stats() (enqueued, dropped, expired int64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.enqueued, q.dropped, q.expired
}
