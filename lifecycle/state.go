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

// Package lifecycle drives the engine process end to end: the eleven-step
// initialize sequence, the periodic run loop, and reverse-order finalize.
// It owns the pieces a config.Manager doesn't know about by itself —
// daemonizing, the single-instance lock, signal handling and the OOM
// reserve block — and drives a config.Manager for everything
// that fits that Start/Reload/Stop shape.
package lifecycle

import "sync/atomic"

// State is where the controller currently stands in its own lifecycle.
type State int32

const (
	StateCreated State = iota
	StateInitializing
	StateRunning
	StateFinalizing
	StateStopped
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "CREATED"
	case StateInitializing:
		return "INITIALIZING"
	case StateRunning:
		return "RUNNING"
	case StateFinalizing:
		return "FINALIZING"
	case StateStopped:
		return "STOPPED"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

type stateBox struct {
	v int32
}

func (b *stateBox) set(s State)  { atomic.StoreInt32(&b.v, int32(s)) }
func (b *stateBox) get() State   { return State(atomic.LoadInt32(&b.v)) }
