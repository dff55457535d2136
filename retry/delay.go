// Copyright 2026 The reprise Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"time"

	"github.com/reprise-go/reprise/attempt"
)

// Delay computes the wait period before the next attempt. It is called
// only after Eligible has returned true, so state.Retries is at least
// one.
//
// The hint header on the most recent response, when present and
// parseable, takes precedence over the configured Backoff; a malformed
// hint falls back to the Backoff silently. The result is then capped
// by MaxDelay, and finally by the time remaining before GiveUpAfter
// elapses, measured from the start of the initial attempt.
//
// The give-up cap is the sole source of a non-positive return value.
// It signals that no time remains; callers must treat it as a zero
// wait, not an error.
func Delay(cfg *Config, state *attempt.State, now time.Time) time.Duration {
	d := cfg.Backoff.Delay(state.Retries, state)

	if v := state.Header().Get(cfg.HintHeader); v != "" {
		if hint, ok := ParseHint(v, cfg.HintLayout, now); ok {
			d = hint
		}
	}

	if d < 0 {
		d = -d
	}
	if max := absDuration(cfg.MaxDelay); max > 0 && d > max {
		d = max
	}

	if cfg.GiveUpAfter != 0 {
		remaining := absDuration(cfg.GiveUpAfter) - now.Sub(state.Start)
		if remaining < d {
			d = remaining
		}
	}

	return d
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
