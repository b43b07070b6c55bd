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

// Package errors gives the engine's components a single error shape: a
// numeric Kind, an optional wrapped cause, a capture of where the
// error was raised, and an optional parent chain so a component can collect
// several sub-failures (e.g. finalize() continuing past a first failure)
// without losing any of them.
package errors

import (
	"fmt"
	"runtime"
	"strings"
)

// Kind classifies an error by the subsystem that raised it.
type Kind uint8

const (
	KindNone Kind = iota
	KindNetwork
	KindFile
	KindMemory
	KindThread
	KindConfig
	KindProtocolTimeout
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "NetworkError"
	case KindFile:
		return "FileError"
	case KindMemory:
		return "MemoryError"
	case KindThread:
		return "ThreadError"
	case KindConfig:
		return "ConfigError"
	case KindProtocolTimeout:
		return "ProtocolTimeout"
	default:
		return "Error"
	}
}

// Error is the interface every engine component returns instead of a bare
// error when it wants to carry a Kind, a trace location and possibly more
// than one underlying cause.
type Error interface {
	error
	Kind() Kind
	Unwrap() error
	Trace() string
	Add(parent ...error)
	Parents() []error
	Is(target error) bool
}

type ers struct {
	kind  Kind
	msg   string
	cause error
	frame runtime.Frame
	p     []error
}

// New builds an Error of the given Kind, capturing the caller's location.
func New(kind Kind, msg string, cause error) Error {
	return newSkip(kind, msg, cause, 2)
}

func newSkip(kind Kind, msg string, cause error, skip int) Error {
	e := &ers{
		kind:  kind,
		msg:   msg,
		cause: cause,
	}

	pc, file, line, ok := runtime.Caller(skip)
	if ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			e.frame = runtime.Frame{Function: fn.Name(), File: file, Line: line}
		} else {
			e.frame = runtime.Frame{File: file, Line: line}
		}
	}

	return e
}

func Network(msg string, cause error) Error { return newSkip(KindNetwork, msg, cause, 2) }
func File(msg string, cause error) Error    { return newSkip(KindFile, msg, cause, 2) }
func Memory(msg string, cause error) Error  { return newSkip(KindMemory, msg, cause, 2) }
func Thread(msg string, cause error) Error  { return newSkip(KindThread, msg, cause, 2) }
func Config(msg string, cause error) Error  { return newSkip(KindConfig, msg, cause, 2) }
func ProtocolTimeout(msg string, cause error) Error {
	return newSkip(KindProtocolTimeout, msg, cause, 2)
}

func (e *ers) Error() string {
	if e == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(e.kind.String())

	if e.msg != "" {
		b.WriteString(": ")
		b.WriteString(e.msg)
	}

	if e.cause != nil {
		b.WriteString(": ")
		b.WriteString(e.cause.Error())
	}

	return b.String()
}

func (e *ers) Kind() Kind     { return e.kind }
func (e *ers) Unwrap() error  { return e.cause }
func (e *ers) Parents() []error { return e.p }

func (e *ers) Trace() string {
	if e.frame.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d (%s)", e.frame.File, e.frame.Line, e.frame.Function)
}

func (e *ers) Add(parent ...error) {
	for _, v := range parent {
		if v != nil {
			e.p = append(e.p, v)
		}
	}
}

func (e *ers) Is(target error) bool {
	if target == nil {
		return false
	}

	if o, ok := target.(*ers); ok {
		if e.kind != KindNone && e.kind == o.kind {
			return true
		}
	}

	for _, p := range e.p {
		if p == target {
			return true
		}
		if pe, ok := p.(Error); ok && pe.Is(target) {
			return true
		}
	}

	return e.cause == target
}

// IsKind reports whether err carries the given Kind anywhere in its chain.
func IsKind(err error, kind Kind) bool {
	if err == nil {
		return false
	}

	if e, ok := err.(Error); ok {
		if e.Kind() == kind {
			return true
		}
		for _, p := range e.Parents() {
			if IsKind(p, kind) {
				return true
			}
		}
		return IsKind(e.Unwrap(), kind)
	}

	return false
}
