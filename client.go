// Copyright 2026 The reprise Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reprise

import (
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/reprise-go/reprise/attempt"
	"github.com/reprise-go/reprise/failure"
	"github.com/reprise-go/reprise/retry"
	"go.uber.org/zap"
)

// Discarded response bodies are read up to this limit before closing
// so the transport can reuse the connection.
const drainLimit = 64 << 10

// A Client is a retrying decorator around an HTTP transport. Its zero
// value is a valid configuration.
//
// The zero value client uses http.DefaultClient (from net/http) as the
// HTTPDoer, retry.Default() as the retry policy, and no logger.
//
// Client implements HTTPDoer itself, so it composes transparently
// wherever a plain transport is expected, including inside another
// Client. It adds no behavior beyond the retry loop: request
// construction, redirects, cookies, and connection handling remain the
// wrapped HTTPDoer's business.
//
// Client is safe for concurrent use by multiple goroutines. Its fields
// must not be modified while requests are in flight; per-request
// adjustments belong in DoWith options or in the OnRetry callback.
type Client struct {
	// HTTPDoer specifies the mechanics of sending HTTP requests and
	// receiving responses.
	//
	// If HTTPDoer is nil, http.DefaultClient from the standard
	// net/http package is used.
	HTTPDoer HTTPDoer
	// Policy is the client-level retry configuration, layered on top
	// of the engine defaults.
	//
	// If Policy is nil, retry.Default() is used.
	Policy *retry.Config
	// Logger, if non-nil, receives a debug-level line for each
	// scheduled retry and each abandoned sequence.
	Logger *zap.Logger
}

// Do sends the HTTP request through the wrapped transport, retrying it
// according to the client's policy, and returns the final attempt's
// outcome.
//
// The returned response and error are exactly what the final attempt
// produced: the engine synthesizes no errors of its own, and a
// response whose status code is still retriable when the budget runs
// out is returned unchanged. The sole annotation the engine ever adds
// is the retry-count header, written onto a copy of the final response
// when the policy's ExposeRetries flag is set.
//
// If the request has a body and more than one attempt may be needed,
// the request must carry a GetBody function (requests built by
// http.NewRequest from a *bytes.Buffer, *bytes.Reader, or
// *strings.Reader carry one automatically). When a retry is due but
// the body cannot be replayed, the sequence ends with the current
// outcome instead.
//
// Cancelling the request's context abandons the sequence, during a
// wait as well as between attempts, and returns the context's error
// wrapped in *url.Error the way the standard client reports it.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.DoWith(req)
}

// DoWith behaves like Do with additional per-call policy options
// layered on top of the client-level policy. The options apply to this
// logical request only and are never persisted back to the client.
func (c *Client) DoWith(req *http.Request, opts ...retry.Option) (*http.Response, error) {
	cfg := c.policy().With(opts...)
	doer := c.doer()
	logger := c.logger()
	ctx := req.Context()
	state := &attempt.State{}

	for {
		now := time.Now()
		if !state.Started() {
			state.Start = now
		}
		state.Last = now

		resp, err := doer.Do(req)
		if err != nil {
			err = urlErrorWrap(req, err)
		}
		state.Observe(resp, err)

		// Failure kinds the engine has no opinion about bypass
		// evaluation entirely.
		if err != nil && failure.Categorize(err) == failure.Other {
			return nil, err
		}

		if ctx.Err() != nil || !retry.Eligible(&cfg, state) {
			if err != nil {
				return nil, err
			}
			return annotate(resp, &cfg, state), nil
		}

		if !replayable(req) {
			logger.Debug("request body not replayable, ending retries",
				zap.String("url", req.URL.String()),
				zap.Int("retries", state.Retries))
			if err != nil {
				return nil, err
			}
			return annotate(resp, &cfg, state), nil
		}

		state.Retries++
		delay := retry.Delay(&cfg, state, time.Now())

		if cfg.OnRetry != nil {
			if cbErr := cfg.OnRetry(state.Retries, delay, req, &cfg, state); cbErr != nil {
				drain(resp)
				return nil, cbErr
			}
		}

		logger.Debug("retry scheduled",
			zap.String("url", req.URL.String()),
			zap.Int("retries", state.Retries),
			zap.Duration("delay", delay),
			zap.Int("status", state.StatusCode()),
			zap.Error(err))

		drain(resp)

		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return nil, urlErrorWrap(req, ctx.Err())
			}
		}

		if rwErr := rewind(req); rwErr != nil {
			return nil, urlErrorWrap(req, rwErr)
		}
	}
}

// CloseIdleConnections invokes the same method on the client's
// underlying HTTPDoer.
//
// If the HTTPDoer has no CloseIdleConnections method, this method does
// nothing.
func (c *Client) CloseIdleConnections() {
	if ic, ok := c.doer().(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

func (c *Client) doer() HTTPDoer {
	if c.HTTPDoer == nil {
		return http.DefaultClient
	}

	return c.HTTPDoer
}

func (c *Client) policy() retry.Config {
	if c.Policy == nil {
		return retry.Default()
	}

	return *c.Policy
}

func (c *Client) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}

	return c.Logger
}

// annotate writes the retry count onto a copy of the final response.
// Responses whose status is still retriable are returned exactly as
// received, as are responses from sequences that never retried.
func annotate(resp *http.Response, cfg *retry.Config, state *attempt.State) *http.Response {
	if !cfg.ExposeRetries || state.Retries == 0 || cfg.RetriableStatus(resp.StatusCode) {
		return resp
	}

	annotated := new(http.Response)
	*annotated = *resp
	annotated.Header = resp.Header.Clone()
	if annotated.Header == nil {
		annotated.Header = http.Header{}
	}
	annotated.Header.Set(cfg.RetryHeader, strconv.Itoa(state.Retries))
	return annotated
}

// replayable reports whether the request can be sent again. A request
// without a body always can; a request with a body needs GetBody.
func replayable(req *http.Request) bool {
	return req.Body == nil || req.Body == http.NoBody || req.GetBody != nil
}

// rewind resets the request body ahead of the next attempt.
func rewind(req *http.Request) error {
	if req.Body == nil || req.Body == http.NoBody {
		return nil
	}

	body, err := req.GetBody()
	if err != nil {
		return err
	}

	req.Body = body
	return nil
}

// drain discards a response given up for retry, reading a bounded
// amount of its body so the underlying connection can be reused.
func drain(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}

	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, drainLimit))
	_ = resp.Body.Close()
}

func urlErrorWrap(req *http.Request, err error) error {
	if _, ok := err.(*url.Error); ok {
		return err
	}

	return &url.Error{
		Op:  urlErrorOp(req.Method),
		URL: req.URL.String(),
		Err: err,
	}
}

// urlErrorOp is lifted verbatim from net/http/client.go
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
