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

// Package scheduler fires user callbacks aligned to calendar boundaries:
// hourly, daily, weekly, monthly or yearly, with a configurable offset into
// the period and a tolerance band for the very first fire.
package scheduler

import (
	"context"
	"sync"
	"time"

	libatm "github.com/haoxingeng/ise-sub000/atomic"
	libtck "github.com/haoxingeng/ise-sub000/runner/ticker"
)

// Kind is the calendar boundary a task is aligned to.
type Kind uint8

const (
	Hourly Kind = iota
	Daily
	Weekly
	Monthly
	Yearly
)

// FirstFireTolerance is how far past offsetSeconds a task may still fire on
// its very first evaluation, so a process restarted just after a boundary
// doesn't wait a full period. Kept as a constant here rather than an Options
// field, since nothing else in the options surface needs per-task tuning —
// see DESIGN.md.
const FirstFireTolerance = 10 * time.Second

// TriggerFunc is invoked when a task fires.
type TriggerFunc func(taskID uint64)

type task struct {
	id            uint64
	kind          Kind
	offset        time.Duration
	lastFire      time.Time
	onTrigger     TriggerFunc
}

// Scheduler holds the task list and the 1 s ticker that evaluates it.
type Scheduler struct {
	mu      sync.Mutex
	tasks   []*task
	nextID  libatm.Counter
	tick    libtck.Ticker
}

// New builds an idle Scheduler; call Start to begin the 1 s evaluation loop.
func New() *Scheduler {
	s := &Scheduler{}
	s.tick = libtck.New(time.Second, func(ctx context.Context, _ *time.Ticker) error {
		s.processAll(time.Now())
		return nil
	})
	return s
}

func (s *Scheduler) Start(ctx context.Context) error { return s.tick.Start(ctx) }
func (s *Scheduler) Stop(ctx context.Context) error  { return s.tick.Stop(ctx) }

// AddTask registers a task and returns its id, unique and >= 1.
func (s *Scheduler) AddTask(kind Kind, offset time.Duration, fn TriggerFunc) uint64 {
	id := uint64(s.nextID.Inc())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, &task{id: id, kind: kind, offset: offset, onTrigger: fn})

	return id
}

// RemoveTask deletes a task by id. Returns false if it wasn't found — in
// particular, calling RemoveTask twice with the same id returns false the
// second time.
func (s *Scheduler) RemoveTask(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.tasks {
		if t.id == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Clear drops every registered task.
func (s *Scheduler) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = nil
}

func (s *Scheduler) processAll(now time.Time) {
	s.ProcessAt(now)
}

// ProcessAt runs one evaluation pass against an explicit time instead of
// time.Now, the way Start's ticker does every second. Exported so tests can
// drive boundary conditions deterministically instead of waiting on the
// wall clock.
func (s *Scheduler) ProcessAt(now time.Time) {
	s.mu.Lock()
	tasks := append([]*task(nil), s.tasks...)
	s.mu.Unlock()

	for _, t := range tasks {
		t.process(now)
	}
}

// process computes elapsed-since-period-start for the task's kind, compares
// the relevant calendar unit against the last fire, and decides whether to
// trigger.
func (t *task) process(now time.Time) {
	elapsed, boundaryChanged := t.elapsed(now)
	if !boundaryChanged {
		return
	}

	var trigger bool
	if t.lastFire.IsZero() {
		trigger = elapsed >= t.offset && elapsed <= t.offset+FirstFireTolerance
	} else {
		trigger = elapsed >= t.offset
	}

	if trigger {
		t.lastFire = now
		if t.onTrigger != nil {
			t.onTrigger(t.id)
		}
	}
}

// elapsed returns the seconds elapsed since the start of the current period
// for t.kind, and whether the calendar unit that bounds that period differs
// from the one at t.lastFire (i.e. a new period has begun since we last
// looked). A zero lastFire means "never fired", which always counts as
// changed.
func (t *task) elapsed(now time.Time) (time.Duration, bool) {
	y, mo, d := now.Date()
	h, mi, se := now.Clock()
	wd := int(now.Weekday())
	yd := now.YearDay()

	var last time.Time
	if !t.lastFire.IsZero() {
		last = t.lastFire
	}

	switch t.kind {
	case Hourly:
		elapsed := time.Duration(mi*60+se) * time.Second
		changed := last.IsZero() || last.Hour() != h || !sameDay(last, now)
		return elapsed, changed

	case Daily:
		elapsed := time.Duration(h*3600+mi*60+se) * time.Second
		changed := last.IsZero() || !sameDay(last, now)
		return elapsed, changed

	case Weekly:
		elapsed := time.Duration(wd*86400+h*3600+mi*60+se) * time.Second
		weekStart := func(t time.Time) time.Time {
			ty, tm, td := t.Date()
			return time.Date(ty, tm, td-int(t.Weekday()), 0, 0, 0, 0, t.Location())
		}
		changed := last.IsZero() || !weekStart(last).Equal(weekStart(now))
		return elapsed, changed

	case Monthly:
		elapsed := time.Duration(d*86400+h*3600+mi*60+se) * time.Second
		_, lm, _ := last.Date()
		changed := last.IsZero() || lm != mo || last.Year() != y
		return elapsed, changed

	case Yearly:
		elapsed := time.Duration(yd*86400+h*3600+mi*60+se) * time.Second
		changed := last.IsZero() || last.Year() != y
		return elapsed, changed

	default:
		return 0, false
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
