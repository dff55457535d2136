// Copyright 2026 The reprise Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package retry is the policy surface of the retry engine: it decides
// whether a failed HTTP request attempt may be repeated, and how long
// to wait before repeating it.
//
// Policy is expressed as a Config value. A Config starts from engine
// defaults (Default), may be adjusted with functional options at
// client construction time, and may be adjusted again per call; later
// layers always win:
//
//	cfg := retry.Default().With(
//		retry.WithMaxRetries(3),
//		retry.WithStatuses(429, 502, 503, 504),
//		retry.WithGiveUpAfter(30*time.Second),
//	)
//
// The two policy questions are answered by two pure functions.
// Eligible reports whether another attempt is permitted, and Delay
// computes the wait before it, honoring a server-provided hint header
// (by default Retry-After, in either numeric-seconds or HTTP-date
// form), the configured Backoff, and the per-wait and total-elapsed
// ceilings.
package retry
