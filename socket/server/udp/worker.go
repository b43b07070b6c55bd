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

package udp

import (
	"fmt"

	libatm "github.com/haoxingeng/ise-sub000/atomic"
	"github.com/haoxingeng/ise-sub000/business"
	"github.com/haoxingeng/ise-sub000/socket/queue"
)

// Worker pulls packets off one group's queue and hands each to the business
// object. It implements business.Worker (so the callback can identify who's
// calling) entirely through plain fields — there's no goroutine type to
// speak of in Go, just the loop function spawned by the pool.
type Worker struct {
	groupIndex int
	index      uint64

	queue *queue.Queue
	biz   business.Business

	timeout   TimeoutChecker
	terminate libatm.Flag

	done chan struct{}
}

func newWorker(groupIndex int, index uint64, q *queue.Queue, biz business.Business) *Worker {
	return &Worker{
		groupIndex: groupIndex,
		index:      index,
		queue:      q,
		biz:        biz,
		done:       make(chan struct{}),
	}
}

func (w *Worker) GroupIndex() int  { return w.groupIndex }
func (w *Worker) WorkerIndex() int { return int(w.index) }

func (w *Worker) String() string {
	return fmt.Sprintf("udp-worker[group=%d index=%d]", w.groupIndex, w.index)
}

// idle reports whether the worker is currently blocked in Dequeue rather
// than inside a business callback — the signal adjustThreadCount needs to
// tell a shrink candidate from a busy one.
func (w *Worker) idle() bool { return !w.timeout.IsStarted() }

// requestTerminate asks the worker to exit after its current (or next)
// dequeue instead of looping again. WakeupWaiting is what actually breaks
// it out of a blocking Dequeue when it's idle.
func (w *Worker) requestTerminate() { w.terminate.Set(true) }

func (w *Worker) terminating() bool { return w.terminate.Get() }

// exited reports whether run has already returned, so the pool can drop a
// terminated worker from its bookkeeping as soon as its goroutine is
// actually gone instead of waiting for the zombie-reclaim deadline.
func (w *Worker) exited() bool {
	select {
	case <-w.done:
		return true
	default:
		return false
	}
}

// run is the worker's whole lifetime: dequeue, dispatch, repeat, until the
// queue closes or termination is requested.
// A panicking business callback is caught here, logged by the caller via
// onPanic, and the packet is simply dropped — the worker keeps running.
func (w *Worker) run(onPanic func(w *Worker, r any)) {
	defer close(w.done)

	for {
		if w.terminating() {
			return
		}

		p, ok := w.queue.DequeueUnless(w.terminating)
		if !ok {
			return
		}

		w.timeout.Enter()
		func() {
			defer func() {
				if r := recover(); r != nil && onPanic != nil {
					onPanic(w, r)
				}
			}()
			w.biz.DispatchUdpPacket(w, w.groupIndex, p)
		}()
		w.timeout.Leave()
	}
}
