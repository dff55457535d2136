// Copyright 2026 The reprise Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package failure

import (
	"errors"
	"syscall"
)

// A Kind is the classification of a transport error, as reported by
// function Categorize().
//
// The kind Other means the error is not one the retry engine has an
// opinion about: it may be a programming error, a protocol violation,
// or a cancellation, but in every case it is not a fault a repeat
// attempt can be expected to cure, so the engine forwards it to the
// caller untouched.
//
// The kinds Timeout and Connectivity both describe faults with some
// prospect of success on a repeat attempt.
type Kind int

const (
	// Other indicates any error the engine does not recognize as a
	// retriable transport fault.
	Other Kind = iota
	// Timeout indicates a client-side timeout. The server may be going
	// through a temporary period of slowness, or the client may succeed
	// on a future attempt.
	//
	// Function Categorize() will return Timeout if the error or any of
	// its wrapped causes has a Timeout() function that reports true.
	Timeout
	// Connectivity indicates the remote host refused or reset the
	// connection, corresponding to the POSIX error codes ECONNREFUSED
	// and ECONNRESET.
	//
	// Although connection refusal may be a permanent condition, it is
	// classified as a retriable fault because it commonly happens while
	// the service on the remote host is starting or restarting, or when
	// a load balancer tears down an idle upstream. In those cases a
	// later attempt has a high probability of success.
	//
	// Function Categorize() will return Connectivity if the error is
	// not a Timeout, and the error or any of its wrapped causes is
	// equal to syscall.ECONNREFUSED or syscall.ECONNRESET.
	Connectivity
)

// Categorize returns the kind of the given transport error. A nil
// error, and any error that is neither a timeout nor a connectivity
// fault, both produce the return value Other.
//
// In assessing the error, Categorize looks at wrapped cause errors
// contained within err, not just err itself. However, Categorize never
// checks if an error has a Temporary() function that returns true, as
// the semantics of Temporary() aren't entirely clear.
func Categorize(err error) Kind {
	if err == nil {
		return Other
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if errno == syscall.ECONNRESET || errno == syscall.ECONNREFUSED {
			return Connectivity
		}
	}

	return Other
}

type hasTimeout interface {
	Timeout() bool
}
