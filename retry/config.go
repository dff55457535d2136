// Copyright 2026 The reprise Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"net/http"
	"time"

	"github.com/reprise-go/reprise/attempt"
)

// Defaults applied by Default.
const (
	// DefaultMaxRetries is the retry ceiling applied by Default.
	DefaultMaxRetries = 10
	// DefaultBackoffBase is the linear backoff base applied by Default,
	// equivalent to a backoff multiplier of 1.5 seconds per retry.
	DefaultBackoffBase = 1500 * time.Millisecond
	// DefaultHintHeader is the response header read for a
	// server-provided wait hint.
	DefaultHintHeader = "Retry-After"
	// DefaultHintLayout is the date layout accepted in the hint header,
	// in addition to the numeric-seconds form.
	DefaultHintLayout = time.RFC1123
	// DefaultRetryHeader is the header used to annotate a final
	// response with the retry count when ExposeRetries is set.
	DefaultRetryHeader = "X-Retry-Counter"
)

// An OnRetry callback is invoked once per affirmative retry decision,
// synchronously, after the wait period has been computed and before it
// begins. It receives the one-based retry number, the computed wait
// period, the request that will be re-sent, the configuration in force
// for the remainder of the logical request, and the state carrying the
// attempt result that triggered the retry.
//
// The callback owns req and cfg for the duration of the call and may
// mutate them; the next attempt observes the mutations. Returning a
// non-nil error aborts the retry sequence: the error is handed to the
// caller as-is, unwrapped, and no further attempt is made.
type OnRetry func(retries int, delay time.Duration, req *http.Request, cfg *Config, state *attempt.State) error

// A Config is the merged retry policy in force for one logical HTTP
// request.
//
// Build a Config with Default and With rather than from a struct
// literal, so that unspecified settings keep their engine defaults.
// Once a logical request has started, its Config must only be mutated
// from inside its own OnRetry callback.
type Config struct {
	// Enabled is the master switch. When false, no evaluation is
	// performed and every outcome is terminal.
	Enabled bool

	// MaxRetries is the ceiling on retries for one logical request.
	// Zero disables retrying on the first evaluation.
	MaxRetries int

	// Statuses is the allow-list of response status codes eligible for
	// retry. Membership is an exact integer match, order-independent.
	Statuses []int

	// RetryTransient enables retrying attempts that failed with a
	// transport fault of kind failure.Timeout or failure.Connectivity.
	// Faults of any other kind are never retried.
	RetryTransient bool

	// RequireHint, when set, blocks retry of any response that does not
	// carry the hint header, even if its status code is in Statuses.
	RequireHint bool

	// Backoff computes the fallback wait period used when no usable
	// hint header is present.
	Backoff Backoff

	// MaxDelay, when positive, caps each individual wait period.
	MaxDelay time.Duration

	// GiveUpAfter, when non-zero, caps the total elapsed wall-clock
	// time across all attempts of the logical request.
	GiveUpAfter time.Duration

	// HintHeader is the name of the response header read for a
	// server-provided wait hint.
	HintHeader string

	// HintLayout is the date layout accepted in the hint header.
	HintLayout string

	// OnRetry, if non-nil, is invoked before each retry's wait period.
	OnRetry OnRetry

	// ExposeRetries annotates the final response with the retry count
	// in the RetryHeader header, provided at least one retry occurred
	// and the final status is not itself in Statuses.
	ExposeRetries bool

	// RetryHeader is the name of the annotation header written when
	// ExposeRetries is set.
	RetryHeader string
}

// Default returns the engine's default configuration: enabled, up to
// DefaultMaxRetries retries of status codes 429 and 503, linear
// backoff from DefaultBackoffBase, the Retry-After header honored in
// seconds or RFC 1123 date form, no ceilings, no callback, and no
// retry-count annotation.
func Default() Config {
	return Config{
		Enabled:     true,
		MaxRetries:  DefaultMaxRetries,
		Statuses:    []int{http.StatusTooManyRequests, http.StatusServiceUnavailable},
		Backoff:     Multiplier(DefaultBackoffBase),
		HintHeader:  DefaultHintHeader,
		HintLayout:  DefaultHintLayout,
		RetryHeader: DefaultRetryHeader,
	}
}

// An Option adjusts one setting on a Config under construction.
type Option func(*Config)

// With returns a copy of c with the given options applied on top.
// The receiver is not modified, and the copy shares no mutable state
// with it, so a client-level Config can safely spawn per-call
// variants.
func (c Config) With(opts ...Option) Config {
	ss := make([]int, len(c.Statuses))
	copy(ss, c.Statuses)
	c.Statuses = ss
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// RetriableStatus reports whether the given response status code is in
// the configured allow-list.
func (c *Config) RetriableStatus(code int) bool {
	for _, s := range c.Statuses {
		if s == code {
			return true
		}
	}
	return false
}

// WithEnabled sets the master retry switch.
func WithEnabled(enabled bool) Option {
	return func(c *Config) {
		c.Enabled = enabled
	}
}

// WithMaxRetries sets the retry ceiling. A negative n is treated the
// same as zero: no retries.
func WithMaxRetries(n int) Option {
	return func(c *Config) {
		c.MaxRetries = n
	}
}

// WithStatuses replaces the retriable status code allow-list.
func WithStatuses(ss ...int) Option {
	return func(c *Config) {
		c.Statuses = append([]int(nil), ss...)
	}
}

// WithRetryTransient sets whether transport faults of kind
// failure.Timeout or failure.Connectivity are retried.
func WithRetryTransient(retry bool) Option {
	return func(c *Config) {
		c.RetryTransient = retry
	}
}

// WithRequireHint sets whether a response must carry the hint header
// to be eligible for retry.
func WithRequireHint(require bool) Option {
	return func(c *Config) {
		c.RequireHint = require
	}
}

// WithBackoff sets the fallback backoff specification.
func WithBackoff(b Backoff) Option {
	return func(c *Config) {
		c.Backoff = b
	}
}

// WithMaxDelay caps each individual wait period. A non-positive d
// removes the cap.
func WithMaxDelay(d time.Duration) Option {
	return func(c *Config) {
		c.MaxDelay = d
	}
}

// WithGiveUpAfter caps the total elapsed time across all attempts of
// the logical request. A zero d removes the cap.
func WithGiveUpAfter(d time.Duration) Option {
	return func(c *Config) {
		c.GiveUpAfter = d
	}
}

// WithHintHeader sets the name of the response header read for a
// server-provided wait hint.
func WithHintHeader(name string) Option {
	return func(c *Config) {
		c.HintHeader = name
	}
}

// WithHintLayout sets the date layout accepted in the hint header.
func WithHintLayout(layout string) Option {
	return func(c *Config) {
		c.HintLayout = layout
	}
}

// WithOnRetry installs the notification callback.
func WithOnRetry(f OnRetry) Option {
	return func(c *Config) {
		c.OnRetry = f
	}
}

// WithExposeRetries sets whether the final response is annotated with
// the retry count.
func WithExposeRetries(expose bool) Option {
	return func(c *Config) {
		c.ExposeRetries = expose
	}
}

// WithRetryHeader sets the name of the retry-count annotation header.
func WithRetryHeader(name string) Option {
	return func(c *Config) {
		c.RetryHeader = name
	}
}
