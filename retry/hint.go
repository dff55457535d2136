// Copyright 2026 The reprise Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseHint interprets a wait-hint header value, such as Retry-After,
// as a wait period.
//
// Two forms are accepted. A decimal number is taken as a count of
// seconds and its absolute value returned; fractional seconds are
// accepted even though RFC 7231 only specifies integers, since some
// servers send them. Any other value is parsed as a date using layout
// (falling back to DefaultHintLayout when layout is empty), and the
// distance from now to that date is returned. The date form may yield
// a negative duration when the date is in the past; the caller is
// expected to clamp.
//
// The second return value is false when no wait period can be derived
// from value. A malformed hint is a normal, expected outcome, never an
// error: the caller falls back to computed backoff.
func ParseHint(value, layout string, now time.Time) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	if secs, err := strconv.ParseFloat(value, 64); err == nil {
		if math.IsNaN(secs) || math.IsInf(secs, 0) {
			return 0, false
		}
		return time.Duration(math.Abs(secs) * float64(time.Second)), true
	}

	if layout == "" {
		layout = DefaultHintLayout
	}
	t, err := time.Parse(layout, value)
	if err != nil {
		return 0, false
	}

	return t.Sub(now), true
}
