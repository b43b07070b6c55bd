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

// Package version holds the small, static identity a business object hands
// back through GetAppVersion/GetAppHelp and that the CLI prints for
// --version/--help.
package version

import (
	"fmt"
	"time"
)

type License uint8

const (
	LicenseMIT License = iota
	LicenseApache2
	LicenseGPL3
	LicenseProprietary
)

func (l License) String() string {
	switch l {
	case LicenseMIT:
		return "MIT"
	case LicenseApache2:
		return "Apache-2.0"
	case LicenseGPL3:
		return "GPL-3.0"
	default:
		return "Proprietary"
	}
}

type Version struct {
	Package     string
	Description string
	Release     string
	Build       string
	Author      string
	License     License
	Date        time.Time
}

func New(license License, pkg, description, date, build, release, author string) Version {
	t, err := time.Parse(time.RFC3339, date)
	if err != nil {
		t = time.Now()
	}

	return Version{
		Package:     pkg,
		Description: description,
		Release:     release,
		Build:       build,
		Author:      author,
		License:     license,
		Date:        t,
	}
}

// String is what a business object's GetAppVersion() returns.
func (v Version) String() string {
	return fmt.Sprintf("%s %s (build %s, %s)", v.Package, v.Release, v.Build, v.Date.Format("2006-01-02"))
}

// Help is what a business object's GetAppHelp() returns.
func (v Version) Help() string {
	return fmt.Sprintf("%s - %s\nLicense: %s\nAuthor: %s", v.Package, v.Description, v.License, v.Author)
}
