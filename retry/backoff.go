// Copyright 2026 The reprise Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"time"

	"github.com/reprise-go/reprise/attempt"
)

// The BackoffFunc type is an adapter to allow an ordinary function to
// serve as the backoff specification. It is called with the one-based
// retry number and the state carrying the attempt result that
// triggered the retry, and returns the wait period.
//
// Every BackoffFunc must be safe for concurrent use by multiple
// goroutines.
type BackoffFunc func(retries int, state *attempt.State) time.Duration

// A Backoff specifies how the fallback wait period grows with the
// retry number. It is one of two variants: a linear multiplier
// (Multiplier) or a caller-supplied function (Func).
//
// The zero value is a multiplier of zero, which waits no time at all
// between retries.
type Backoff struct {
	base time.Duration
	fn   BackoffFunc
}

// Multiplier constructs a linear Backoff: the wait before retry n is
// base * n. A negative base behaves the same as its absolute value.
func Multiplier(base time.Duration) Backoff {
	return Backoff{base: base}
}

// Func constructs a Backoff from a caller-supplied function.
func Func(f BackoffFunc) Backoff {
	if f == nil {
		panic("retry: nil backoff func")
	}
	return Backoff{fn: f}
}

// Delay returns the backoff wait before retry number retries. The
// result is never negative, regardless of what the multiplier or the
// function produced.
func (b Backoff) Delay(retries int, state *attempt.State) time.Duration {
	var d time.Duration
	if b.fn != nil {
		d = b.fn(retries, state)
	} else {
		d = b.base * time.Duration(retries)
	}

	if d < 0 {
		d = -d
	}
	return d
}
