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

package lifecycle

import (
	"os"
	"os/signal"
	"syscall"
)

// signalAction is what the controller does upon receiving a given signal:
// ignored, fatal (log + reserve-block assisted abort), normal shutdown, or
// user-defined (forwarded to the business object via a future hook point,
// currently just logged).
type signalAction uint8

const (
	actionIgnore signalAction = iota
	actionShutdown
	actionFatal
	actionUser
)

// SIGABRT is the only fatal entry; SIGSEGV and SIGFPE are not listed,
// since the Go runtime installs its own handlers for these synchronous
// faults. actionFatal here covers SIGABRT raised deliberately (e.g. via
// kill).
var signalTable = map[os.Signal]signalAction{
	syscall.SIGHUP:  actionIgnore,
	syscall.SIGPIPE: actionIgnore,
	syscall.SIGINT:  actionIgnore,
	syscall.SIGQUIT: actionIgnore,
	syscall.SIGTERM: actionShutdown,
	syscall.SIGABRT: actionFatal,
	syscall.SIGUSR1: actionUser,
	syscall.SIGUSR2: actionUser,
}

// installSignalHandlers wires os/signal.Notify for every signal the table
// names and drives shutdown/onFatal callbacks off it; it returns a stop
// function the caller must call once it no longer wants to observe signals.
func installSignalHandlers(onShutdown func(), onFatal func(sig os.Signal), onUser func(sig os.Signal)) func() {
	sigs := make([]os.Signal, 0, len(signalTable))
	for s := range signalTable {
		sigs = append(sigs, s)
	}

	ch := make(chan os.Signal, 4)
	signal.Notify(ch, sigs...)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case sig := <-ch:
				switch signalTable[sig] {
				case actionIgnore:
					// nothing to do
				case actionShutdown:
					if onShutdown != nil {
						onShutdown()
					}
				case actionFatal:
					if onFatal != nil {
						onFatal(sig)
					}
				case actionUser:
					if onUser != nil {
						onUser(sig)
					}
				}
			}
		}
	}()

	return func() {
		signal.Stop(ch)
		close(done)
	}
}
