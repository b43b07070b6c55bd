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

// oomReserveSize is a pre-allocated block: memory set aside at startup and
// freed on a fatal signal, before the final log write, so the logger has
// room to flush a last message before the process exits.
const oomReserveSize = 2 * 1024 * 1024

// oomReserve is held for the controller's lifetime and released by
// releaseOOMReserve, which the fatal-signal handler and Controller.Finalize
// call.
var oomReserve []byte

func reserveOOMBlock() {
	oomReserve = make([]byte, oomReserveSize)
}

// releaseOOMReserve drops the reserve so the runtime has ~2 MiB of headroom
// to work with while the logger flushes and the process unwinds.
func releaseOOMReserve() {
	oomReserve = nil
}
