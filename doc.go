// Copyright 2026 The reprise Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package reprise retries failed HTTP requests. It decorates any
transport implementing the familiar Do method with a retry policy
engine: after every attempt it decides whether another attempt is
permitted and, if so, how long to wait first, honoring the server's
Retry-After hint, configurable backoff, and attempt and time budgets.

Create a Client to begin making requests. The zero value wraps
http.DefaultClient with the default policy (up to 10 retries of 429
and 503 responses, linear backoff of 1.5 seconds per retry):

	client := &reprise.Client{}
	req, _ := http.NewRequest("GET", "https://www.example.com", nil)
	resp, err := client.Do(req)

For control over how requests are sent, wrap a custom HTTPDoer:

	doer := &http.Client{
		..., // See package "net/http" for detailed documentation
	}
	client := &reprise.Client{HTTPDoer: doer}

For control over retry decisions and timing, build a policy from
package retry and set it on the client, or pass per-call options to
DoWith:

	policy := retry.Default().With(
		retry.WithStatuses(429, 502, 503, 504),
		retry.WithRetryTransient(true),
		retry.WithGiveUpAfter(30*time.Second),
	)
	client := &reprise.Client{Policy: &policy}
	resp, err := client.DoWith(req, retry.WithMaxRetries(2))

To observe or reshape each retry before its wait period begins,
install a notification callback. The callback may mutate the request
and the configuration; the next attempt observes the mutations:

	policy := retry.Default().With(retry.WithOnRetry(
		func(n int, delay time.Duration, req *http.Request, cfg *retry.Config, state *attempt.State) error {
			req.Header.Set("X-Attempt", strconv.Itoa(n))
			return nil
		}))

Client implements HTTPDoer itself, so retrying clients compose
transparently wherever a plain transport is expected. The AsDoer and
AsRoundTripper adapters bridge to and from http.RoundTripper, allowing
the engine to sit inside an http.Client transport chain.
*/
package reprise
