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
	"sync"
	"time"
)

// TimeoutChecker times one worker's current business callback invocation.
// Enter/Leave bracket the call; between them IsStarted reports true, so the
// pool can tell an idle worker (timer not running) from a busy one.
type TimeoutChecker struct {
	mu      sync.Mutex
	started bool
	since   time.Time
}

func (c *TimeoutChecker) Enter() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.started = true
	c.since = time.Now()
}

func (c *TimeoutChecker) Leave() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.started = false
}

func (c *TimeoutChecker) IsStarted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.started
}

// Check reports whether the current invocation (if any) has exceeded
// threshold. threshold == 0 disables the check — see
// Options.UdpWorkerThreadTimeOut.
func (c *TimeoutChecker) Check(threshold time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if threshold <= 0 || !c.started {
		return false
	}
	return time.Since(c.since) > threshold
}
