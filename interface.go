// Copyright 2026 The reprise Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reprise

import (
	"net/http"
)

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
//
// HTTPDoer is both the interface the retry engine consumes (the
// wrapped transport) and the interface it exposes (Client implements
// HTTPDoer), so retrying clients compose transparently wherever a
// plain transport is expected.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	//
	// The Do method must follow the contract documented on the GoLang
	// standard library http.Client from the net/http package.
	Do(r *http.Request) (*http.Response, error)
}

// IdleCloser is the interface that wraps the basic CloseIdleConnections
// method.
//
// If the underlying implementation supports it, CloseIdleConnections
// closes connections which were kept alive from previous requests but
// are now sitting idle. It does not interrupt any connections currently
// in use. If the underlying implementation does not support this
// ability, CloseIdleConnections does nothing.
type IdleCloser interface {
	CloseIdleConnections()
}

// AsDoer adapts an http.RoundTripper into an HTTPDoer, so a retrying
// Client can wrap a bare transport such as *http.Transport directly
// rather than going through an http.Client.
//
// The adapter forwards CloseIdleConnections to the round tripper when
// the round tripper supports it.
func AsDoer(rt http.RoundTripper) HTTPDoer {
	if rt == nil {
		panic("reprise: nil round tripper")
	}

	return roundTripDoer{rt}
}

type roundTripDoer struct {
	rt http.RoundTripper
}

func (d roundTripDoer) Do(r *http.Request) (*http.Response, error) {
	return d.rt.RoundTrip(r)
}

func (d roundTripDoer) CloseIdleConnections() {
	if ic, ok := d.rt.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

// AsRoundTripper adapts an HTTPDoer into an http.RoundTripper, so a
// retrying Client can be installed as the Transport of a standard
// http.Client:
//
//	base := &http.Client{}
//	retrying := &reprise.Client{HTTPDoer: base}
//	client := &http.Client{Transport: reprise.AsRoundTripper(retrying)}
//
// The adapter forwards CloseIdleConnections to the doer when the doer
// supports it.
func AsRoundTripper(d HTTPDoer) http.RoundTripper {
	if d == nil {
		panic("reprise: nil doer")
	}

	if rt, ok := d.(http.RoundTripper); ok {
		return rt
	}

	return doerRoundTripper{d}
}

type doerRoundTripper struct {
	d HTTPDoer
}

func (t doerRoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	return t.d.Do(r)
}

func (t doerRoundTripper) CloseIdleConnections() {
	if ic, ok := t.d.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}
