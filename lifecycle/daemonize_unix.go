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

//go:build !windows

package lifecycle

import (
	"os"
	"os/exec"
	"syscall"

	liberr "github.com/haoxingeng/ise-sub000/errors"
)

// daemonize re-execs the current process detached from its controlling
// terminal, the Go substitute for a double-fork + setsid + umask(0) dance:
// a single re-exec with Setsid in SysProcAttr achieves the same "no
// controlling terminal, reparented to init" effect without needing two raw
// fork() calls, which Go's runtime cannot safely perform
// post-goroutine-start.
func daemonize() liberr.Error {
	if os.Getenv("ISE_DAEMONIZED") == "1" {
		return nil
	}

	exe, err := os.Executable()
	if err != nil {
		return liberr.Thread("resolving executable path for daemonize", err)
	}

	cmd := exec.Command(exe, os.Args[1:]...)
	cmd.Env = append(os.Environ(), "ISE_DAEMONIZED=1")
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return liberr.Thread("re-exec for daemonize failed", err)
	}

	os.Exit(0)
	return nil
}
