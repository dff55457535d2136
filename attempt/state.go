// Copyright 2026 The reprise Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package attempt

import (
	"net/http"
	"time"
)

// A State represents the progress of a single logical HTTP request
// across its physical attempts.
//
// Retry policy code receiving a State should treat its exported fields
// as read-only: the fields are maintained by the retry loop, and the
// loop's correctness depends on them.
type State struct {
	// Retries is the number of retries performed so far within the
	// logical request. It is zero during and after the initial attempt,
	// and is incremented immediately after each affirmative retry
	// decision, so it is at least one by the time a retry's wait period
	// is being computed.
	//
	// Retries is monotonically non-decreasing and, after evaluation,
	// never exceeds the configured retry ceiling.
	Retries int

	// Start is the start time of the initial attempt. It is assigned a
	// non-zero value when the logical request starts, and remains
	// constant thereafter.
	Start time.Time

	// Last is the start time of the most recent attempt, including the
	// initial one. Time-budget decisions are made against Last rather
	// than against the wall clock at decision time, so that a slow
	// transport cannot retroactively invalidate a budget decision made
	// when the attempt started.
	Last time.Time

	// Response is the HTTP response received by the most recent
	// attempt. It is nil if that attempt ended in a transport error.
	Response *http.Response

	// Err is the transport error produced by the most recent attempt.
	// It is nil if that attempt received an HTTP response.
	Err error
}

// Observe records the outcome of the attempt that just finished.
// Exactly one of resp and err is expected to be non-nil.
func (s *State) Observe(resp *http.Response, err error) {
	s.Response = resp
	s.Err = err
}

// Started indicates whether the initial attempt has begun. If it
// returns true, Start holds the initial attempt's start time.
func (s *State) Started() bool {
	return s.Start != (time.Time{})
}

// StatusCode returns the status code of the HTTP response from the
// most recent attempt. If that attempt ended in a transport error, or
// no attempt has finished yet, 0 is returned.
func (s *State) StatusCode() int {
	if s.Response == nil {
		return 0
	}

	return s.Response.StatusCode
}

// Header returns the HTTP response headers from the most recent
// attempt. If there is no HTTP response, the nil header is returned.
//
// A nil return value is always safe for read-only operations, since
// http.Header is a map type.
func (s *State) Header() http.Header {
	if s.Response == nil {
		var nilHeader http.Header
		return nilHeader
	}

	return s.Response.Header
}

// HasHeader indicates whether the most recent attempt's response
// carries at least one value for the named header. It returns false
// when the most recent attempt produced no response.
func (s *State) HasHeader(name string) bool {
	return len(s.Header().Values(name)) > 0
}
