// Copyright 2026 The reprise Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"github.com/reprise-go/reprise/attempt"
	"github.com/reprise-go/reprise/failure"
)

// Eligible reports whether another attempt of the logical request is
// permitted. It is pure and side-effect-free: it only reads cfg and
// state.
//
// The checks run in a fixed order and the first failing check wins:
//
//  1. the master switch must be on;
//  2. the give-up ceiling must not have been reached, measured against
//     the start time of the most recent attempt rather than the wall
//     clock at decision time;
//  3. retries must remain under MaxRetries;
//  4. when RequireHint is set, a response must carry the hint header;
//  5. a response is eligible iff its status code is in Statuses, and a
//     transport fault is eligible iff RetryTransient is set and the
//     fault is of a recognized kind.
func Eligible(cfg *Config, state *attempt.State) bool {
	if !cfg.Enabled {
		return false
	}

	if cfg.GiveUpAfter != 0 {
		giveUpAt := state.Start.Add(absDuration(cfg.GiveUpAfter))
		if !state.Last.Before(giveUpAt) {
			return false
		}
	}

	if cfg.MaxRetries-state.Retries <= 0 {
		return false
	}

	if cfg.RequireHint && state.Response != nil && !state.HasHeader(cfg.HintHeader) {
		return false
	}

	if state.Response != nil {
		return cfg.RetriableStatus(state.StatusCode())
	}

	return cfg.RetryTransient && failure.Categorize(state.Err) != failure.Other
}
