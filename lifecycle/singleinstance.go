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
	"path/filepath"

	"github.com/gofrs/flock"
	liberr "github.com/haoxingeng/ise-sub000/errors"
)

// InstanceLock guards the single-instance invariant: a POSIX
// flock(LOCK_EX|LOCK_NB) taken on a lock file next to the executable,
// released on Finalize.
type InstanceLock struct {
	fl *flock.Flock
}

// AcquireInstanceLock takes the lock, or returns a ConfigError if another
// instance already holds it. path == "" derives a lock file path from the
// running executable's own path plus ".lock".
func AcquireInstanceLock(path string) (*InstanceLock, liberr.Error) {
	if path == "" {
		exe, err := os.Executable()
		if err != nil {
			exe = os.Args[0]
		}
		path = filepath.Clean(exe) + ".lock"
	}

	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, liberr.Config("failed to acquire single-instance lock", err)
	}
	if !ok {
		return nil, liberr.Config("another instance already holds the lock: "+path, nil)
	}

	return &InstanceLock{fl: fl}, nil
}

// Release drops the lock. Safe to call on a nil lock (no-op), matching the
// multi-instance-allowed path where no lock was ever acquired.
func (l *InstanceLock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	return l.fl.Unlock()
}
