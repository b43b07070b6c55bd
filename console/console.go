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

// Package console prints the demo binary's startup banner and status lines:
// colored when attached to a terminal, plain otherwise. It never decides
// engine behavior, only how the cobra CLI (cmd/iseengined) reports it.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	colorable "github.com/mattn/go-colorable"
)

type Kind uint8

const (
	KindInfo Kind = iota
	KindOK
	KindWarn
	KindFail
)

var (
	out    io.Writer = colorable.NewColorableStdout()
	colors           = map[Kind]*color.Color{
		KindInfo: color.New(color.FgCyan),
		KindOK:   color.New(color.FgGreen, color.Bold),
		KindWarn: color.New(color.FgYellow, color.Bold),
		KindFail: color.New(color.FgRed, color.Bold),
	}
)

// SetOutput lets tests (and non-terminal invocations) redirect where
// colored lines are written; default is a colorable stdout wrapper.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	out = w
}

// Line prints one status line of the given Kind.
func Line(k Kind, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if c, ok := colors[k]; ok {
		_, _ = c.Fprintln(out, msg)
	} else {
		_, _ = fmt.Fprintln(out, msg)
	}
}

// Banner prints the startup banner: app name, version, build, license.
func Banner(app, version, build, license string) {
	Line(KindOK, "%s %s (build %s)", app, version, build)
	if license != "" {
		Line(KindInfo, "license: %s", license)
	}
}

// PadRight pads s with fill up to width runes, used to align status columns.
func PadRight(s string, width int, fill rune) string {
	r := []rune(s)
	if len(r) >= width {
		return s
	}
	pad := make([]rune, width-len(r))
	for i := range pad {
		pad[i] = fill
	}
	return s + string(pad)
}
