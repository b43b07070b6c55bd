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

// Package udp is the UDP half of the engine: a listener pool that turns
// datagrams into packet.UdpPacket and enqueues them by group, and a worker
// pool per group that drains its queue into the business object.
package udp

import (
	"sync"
	"time"

	libatm "github.com/haoxingeng/ise-sub000/atomic"
	"github.com/haoxingeng/ise-sub000/business"
	liblog "github.com/haoxingeng/ise-sub000/logger"
	"github.com/haoxingeng/ise-sub000/socket/queue"
	"golang.org/x/sync/semaphore"
)

// MaxThreadTermSecs bounds how long a worker is given to notice its
// terminate flag before the pool gives up waiting on it and reclaims its
// bookkeeping slot. Go has no way to
// force a goroutine to stop; past this deadline the pool simply stops
// counting the worker towards the pool size and logs loudly — the
// goroutine itself exits whenever its current Dequeue/dispatch returns.
const MaxThreadTermSecs = 30 * time.Second

// Pool is one group's worker pool: it implements group.Pool so the
// classifier-facing Group can drive it without importing this package.
type Pool struct {
	mu sync.Mutex

	groupIndex int
	queue      *queue.Queue
	biz        business.Business
	log        liblog.Logger

	min, max   int
	alertLine  int
	workerTO   time.Duration

	nextID      libatm.Counter
	workers     map[uint64]*worker
	zombieKills libatm.Counter

	// sem bounds the number of worker goroutines actually in flight to max,
	// independent of p.workers bookkeeping — it is only released once a
	// worker's run loop truly returns, so it stays correct even while a
	// zombie worker (step 5) has already been dropped from p.workers but its
	// goroutine hasn't exited yet.
	sem *semaphore.Weighted

	beforeKill func(w *Worker)
}

type worker struct {
	w             *Worker
	termRequested time.Time
}

// NewPool builds a worker pool bounded to [min,max] workers for one group,
// and starts it at min workers.
func NewPool(groupIndex int, q *queue.Queue, biz business.Business, min, max, alertLine int, workerTO time.Duration, log liblog.Logger) *Pool {
	if min < 1 {
		min = 1
	}
	if max < min {
		max = min
	}

	p := &Pool{
		groupIndex: groupIndex,
		queue:      q,
		biz:        biz,
		log:        log,
		min:        min,
		max:        max,
		alertLine:  alertLine,
		workerTO:   workerTO,
		workers:    make(map[uint64]*worker),
		sem:        semaphore.NewWeighted(int64(max)),
	}

	for i := 0; i < min; i++ {
		p.spawn()
	}
	return p
}

func (p *Pool) spawn() {
	if !p.sem.TryAcquire(1) {
		return
	}

	id := uint64(p.nextID.Inc())
	w := newWorker(p.groupIndex, id, p.queue, p.biz)
	p.workers[id] = &worker{w: w}

	go func() {
		defer p.sem.Release(1)
		w.run(func(w *Worker, r any) {
			if p.log != nil {
				p.log.Error("udp worker panic", liblog.Fields{"group": w.GroupIndex(), "worker": w.WorkerIndex()}, r)
			}
		})
	}()
}

// ActiveCount reports how many workers are currently tracked, whether idle
// or busy — what the original calls the pool's thread count.
func (p *Pool) ActiveCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.workers)
}

// IdleCount reports how many tracked workers are currently idle (not mid
// dispatch and not already asked to terminate).
func (p *Pool) IdleCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	idle := 0
	for _, e := range p.workers {
		if e.w.idle() && !e.w.terminating() {
			idle++
		}
	}
	return idle
}

// ZombieKills reports how many workers have been reclaimed after ignoring
// a terminate request past MaxThreadTermSecs.
func (p *Pool) ZombieKills() int64 {
	return p.zombieKills.Load()
}

// AdjustThreadCount runs the pool-sizing pass: drop bookkeeping for workers
// that have already exited, count idle workers, grow on backlog, request
// shrink of surplus idle workers, flag workers stuck past the timeout, and
// reclaim zombies whose terminate request has gone unheeded too long.
func (p *Pool) AdjustThreadCount() {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Step 1: a worker that has already returned (its terminate request was
	// honored) is dropped immediately instead of waiting for the zombie
	// deadline — that deadline only exists to catch a worker that is truly
	// stuck, not every ordinary shrink.
	for id, e := range p.workers {
		if e.w.exited() {
			delete(p.workers, id)
		}
	}

	idle := 0
	for _, e := range p.workers {
		if e.w.idle() && !e.w.terminating() {
			idle++
		}
	}

	// Step 2: grow on backlog when nobody is idle to absorb it.
	if p.queue.Len() > p.alertLine && idle == 0 && len(p.workers) < p.max {
		grow := len(p.workers) / 4
		if grow < 1 {
			grow = 1
		}
		if len(p.workers)+grow > p.max {
			grow = p.max - len(p.workers)
		}
		for i := 0; i < grow; i++ {
			p.spawn()
		}
	}

	// Step 3: shrink surplus idle workers, always keeping at least min.
	if idle > 1 && len(p.workers) > p.min {
		shrink := idle - 1
		if len(p.workers)-shrink < p.min {
			shrink = len(p.workers) - p.min
		}
		requested := 0
		for _, e := range p.workers {
			if requested >= shrink {
				break
			}
			if e.w.idle() && !e.w.terminating() {
				e.w.requestTerminate()
				e.termRequested = time.Now()
				requested++
			}
		}
		p.queue.WakeupWaiting(requested)
	}

	// Step 4: flag workers whose current dispatch has run past the
	// configured timeout.
	if p.workerTO > 0 {
		for _, e := range p.workers {
			if e.w.timeout.Check(p.workerTO) && !e.w.terminating() {
				e.w.requestTerminate()
				e.termRequested = time.Now()
				if p.log != nil {
					p.log.Warning("udp worker exceeded timeout", liblog.Fields{"group": p.groupIndex, "worker": e.w.WorkerIndex()})
				}
			}
		}
	}

	// Step 5: reclaim workers whose terminate request has gone unheeded
	// for too long. The goroutine itself is left to exit on its own; the
	// pool just stops accounting for it.
	for id, e := range p.workers {
		if e.termRequested.IsZero() || time.Since(e.termRequested) < MaxThreadTermSecs {
			continue
		}
		if p.beforeKill != nil {
			p.beforeKill(e.w)
		}
		if p.log != nil {
			p.log.Error("udp worker did not exit in time, reclaiming", liblog.Fields{"group": p.groupIndex, "worker": e.w.WorkerIndex()})
		}
		p.zombieKills.Inc()
		delete(p.workers, id)
	}
}

// Shutdown requests every worker terminate and wakes them all; it does not
// block waiting for their goroutines to exit.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	n := len(p.workers)
	for _, e := range p.workers {
		e.w.requestTerminate()
	}
	p.mu.Unlock()

	p.queue.Close()
	p.queue.WakeupWaiting(n)
}
