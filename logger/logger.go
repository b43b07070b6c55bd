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

// Package logger is the engine-wide log sink, with a single mutex around
// file writes. It wraps logrus so every component logs structured fields
// (group index, worker id, connection id, elapsed time) through one entry
// point, with an optional daily-rotating file hook.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

func today() string { return time.Now().Format("2006-01-02") }

type Fields = logrus.Fields

// Logger is what every engine component takes a handle to, instead of
// reaching for a package-level global.
type Logger interface {
	Debug(message string, data any, args ...any)
	Info(message string, data any, args ...any)
	Warning(message string, data any, args ...any)
	Error(message string, data any, args ...any)
	Fatal(message string, data any, args ...any)

	WithFields(f Fields) Logger
	SetOutput(w io.Writer)
	Close() error
}

type logger struct {
	l      *logrus.Logger
	fields Fields
	sink   *fileSink
}

// New builds a Logger writing to stderr by default.
func New() Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return &logger{l: l}
}

// NewFile builds a Logger whose output is a rotating file sink, mirroring
// Options.logFileName / Options.logNewFileDaily.
func NewFile(path string, dailyRotate bool) (Logger, error) {
	sink, err := newFileSink(path, dailyRotate)
	if err != nil {
		return nil, err
	}

	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetOutput(sink)

	return &logger{l: l, sink: sink}, nil
}

func (g *logger) entry() *logrus.Entry {
	if len(g.fields) == 0 {
		return logrus.NewEntry(g.l)
	}
	return g.l.WithFields(g.fields)
}

func (g *logger) log(lvl logrus.Level, message string, data any, args ...any) {
	if g == nil || g.l == nil {
		return
	}

	msg := fmt.Sprintf(message, args...)
	e := g.entry()
	if data != nil {
		e = e.WithField("data", data)
	}
	e.Log(lvl, msg)
}

func (g *logger) Debug(message string, data any, args ...any)   { g.log(logrus.DebugLevel, message, data, args...) }
func (g *logger) Info(message string, data any, args ...any)    { g.log(logrus.InfoLevel, message, data, args...) }
func (g *logger) Warning(message string, data any, args ...any) { g.log(logrus.WarnLevel, message, data, args...) }
func (g *logger) Error(message string, data any, args ...any)   { g.log(logrus.ErrorLevel, message, data, args...) }

// Fatal logs at the highest level then returns; it never calls os.Exit
// itself, so the fatal-signal path controls exactly when the process
// aborts, after this has had a chance to flush.
func (g *logger) Fatal(message string, data any, args ...any) {
	g.log(logrus.FatalLevel, message, data, args...)
}

func (g *logger) WithFields(f Fields) Logger {
	merged := make(Fields, len(g.fields)+len(f))
	for k, v := range g.fields {
		merged[k] = v
	}
	for k, v := range f {
		merged[k] = v
	}
	return &logger{l: g.l, fields: merged, sink: g.sink}
}

func (g *logger) SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	g.l.SetOutput(w)
}

func (g *logger) Close() error {
	if g.sink != nil {
		return g.sink.Close()
	}
	return nil
}

// fileSink writes every call under one mutex and, when dailyRotate is set,
// reopens the target path on the first write after the calendar day rolls
// over — same guarantee as Options.logNewFileDaily.
type fileSink struct {
	mu     sync.Mutex
	path   string
	daily  bool
	day    string
	f      *os.File
}

func newFileSink(path string, daily bool) (*fileSink, error) {
	s := &fileSink{path: path, daily: daily}
	if err := s.open(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *fileSink) open() error {
	f, err := os.OpenFile(s.currentPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	if s.f != nil {
		_ = s.f.Close()
	}
	s.f = f
	s.day = today()
	return nil
}

func (s *fileSink) currentPath() string {
	if !s.daily {
		return s.path
	}
	return s.path + "." + today()
}

func (s *fileSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.daily && s.day != today() {
		if err := s.open(); err != nil {
			return 0, err
		}
	}

	return s.f.Write(p)
}

func (s *fileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return nil
	}
	return s.f.Close()
}
