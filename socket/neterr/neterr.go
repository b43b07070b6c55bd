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

// Package neterr maps native socket errors to portable identifiers, so a
// NetworkError carries a string instead of a raw errno. The table covers
// unix errno values only.
package neterr

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Id is one of the portable identifiers a socket error can map to.
type Id string

const (
	EINTR           Id = "EINTR"
	EBADF           Id = "EBADF"
	EACCES          Id = "EACCES"
	EFAULT          Id = "EFAULT"
	EINVAL          Id = "EINVAL"
	EMFILE          Id = "EMFILE"
	EWOULDBLOCK     Id = "EWOULDBLOCK"
	EINPROGRESS     Id = "EINPROGRESS"
	EALREADY        Id = "EALREADY"
	ENOTSOCK        Id = "ENOTSOCK"
	EDESTADDRREQ    Id = "EDESTADDRREQ"
	EMSGSIZE        Id = "EMSGSIZE"
	EPROTOTYPE      Id = "EPROTOTYPE"
	ENOPROTOOPT     Id = "ENOPROTOOPT"
	EPROTONOSUPPORT Id = "EPROTONOSUPPORT"
	ESOCKTNOSUPPORT Id = "ESOCKTNOSUPPORT"
	EOPNOTSUPP      Id = "EOPNOTSUPP"
	EPFNOSUPPORT    Id = "EPFNOSUPPORT"
	EAFNOSUPPORT    Id = "EAFNOSUPPORT"
	EADDRINUSE      Id = "EADDRINUSE"
	EADDRNOTAVAIL   Id = "EADDRNOTAVAIL"
	ENETDOWN        Id = "ENETDOWN"
	ENETUNREACH     Id = "ENETUNREACH"
	ENETRESET       Id = "ENETRESET"
	ECONNABORTED    Id = "ECONNABORTED"
	ECONNRESET      Id = "ECONNRESET"
	ENOBUFS         Id = "ENOBUFS"
	EISCONN         Id = "EISCONN"
	ENOTCONN        Id = "ENOTCONN"
	ESHUTDOWN       Id = "ESHUTDOWN"
	ETOOMANYREFS    Id = "ETOOMANYREFS"
	ETIMEDOUT       Id = "ETIMEDOUT"
	ECONNREFUSED    Id = "ECONNREFUSED"
	ELOOP           Id = "ELOOP"
	ENAMETOOLONG    Id = "ENAMETOOLONG"
	EHOSTDOWN       Id = "EHOSTDOWN"
	EHOSTUNREACH    Id = "EHOSTUNREACH"
	ENOTEMPTY       Id = "ENOTEMPTY"
	EUNKNOWN        Id = "EUNKNOWN"
)

// table mirrors iseSocketGetErrorMsg's switch, keyed by the POSIX errno the
// runtime actually raises instead of the platform SS_* aliases the original
// defined on top of it.
var table = map[unix.Errno]Id{
	unix.EINTR:           EINTR,
	unix.EBADF:           EBADF,
	unix.EACCES:          EACCES,
	unix.EFAULT:          EFAULT,
	unix.EINVAL:          EINVAL,
	unix.EMFILE:          EMFILE,
	unix.EAGAIN:          EWOULDBLOCK,
	unix.EINPROGRESS:     EINPROGRESS,
	unix.EALREADY:        EALREADY,
	unix.ENOTSOCK:        ENOTSOCK,
	unix.EDESTADDRREQ:    EDESTADDRREQ,
	unix.EMSGSIZE:        EMSGSIZE,
	unix.EPROTOTYPE:      EPROTOTYPE,
	unix.ENOPROTOOPT:     ENOPROTOOPT,
	unix.EPROTONOSUPPORT: EPROTONOSUPPORT,
	unix.ESOCKTNOSUPPORT: ESOCKTNOSUPPORT,
	unix.EOPNOTSUPP:      EOPNOTSUPP,
	unix.EPFNOSUPPORT:    EPFNOSUPPORT,
	unix.EAFNOSUPPORT:    EAFNOSUPPORT,
	unix.EADDRINUSE:      EADDRINUSE,
	unix.EADDRNOTAVAIL:   EADDRNOTAVAIL,
	unix.ENETDOWN:        ENETDOWN,
	unix.ENETUNREACH:     ENETUNREACH,
	unix.ENETRESET:       ENETRESET,
	unix.ECONNABORTED:    ECONNABORTED,
	unix.ECONNRESET:      ECONNRESET,
	unix.ENOBUFS:         ENOBUFS,
	unix.EISCONN:         EISCONN,
	unix.ENOTCONN:        ENOTCONN,
	unix.ESHUTDOWN:       ESHUTDOWN,
	unix.ETOOMANYREFS:    ETOOMANYREFS,
	unix.ETIMEDOUT:       ETIMEDOUT,
	unix.ECONNREFUSED:    ECONNREFUSED,
	unix.ELOOP:           ELOOP,
	unix.ENAMETOOLONG:    ENAMETOOLONG,
	unix.EHOSTDOWN:       EHOSTDOWN,
	unix.EHOSTUNREACH:    EHOSTUNREACH,
	unix.ENOTEMPTY:       ENOTEMPTY,
}

// Lookup maps err to its portable identifier. Errors that don't carry a
// recognized errno map to EUNKNOWN, same as the original's fallthrough.
func Lookup(err error) Id {
	var errno unix.Errno
	if errors.As(err, &errno) {
		if id, ok := table[errno]; ok {
			return id
		}
	}
	return EUNKNOWN
}

// LookupErrno maps a raw errno value, for callers that already extracted it
// (e.g. from a non-blocking connect's SO_ERROR).
func LookupErrno(errno unix.Errno) Id {
	if id, ok := table[errno]; ok {
		return id
	}
	return EUNKNOWN
}

// Message renders an error the way iseSocketGetErrorMsg does: a stable id
// plus the raw numeric code, so a log line is greppable across platforms.
func Message(err error) string {
	var errno unix.Errno
	if errors.As(err, &errno) {
		return fmt.Sprintf("%s (errno %d): %s", Lookup(err), int(errno), err.Error())
	}
	return err.Error()
}

// Temporary reports whether err is the kind of transient socket error a
// select/recvfrom/accept loop should shrug off and retry — anything else
// terminates the listener.
func Temporary(err error) bool {
	var errno unix.Errno
	if errors.As(err, &errno) {
		switch errno {
		case unix.EINTR, unix.EINPROGRESS, unix.EAGAIN:
			return true
		}
	}
	return false
}
