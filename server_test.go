// Copyright 2026 The reprise Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reprise

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/reprise-go/reprise/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/http2"
)

var httpServer = httptest.NewUnstartedServer(http.HandlerFunc(serverHandler))
var httpsServer = httptest.NewUnstartedServer(http.HandlerFunc(serverHandler))
var http2Server = httptest.NewUnstartedServer(http.HandlerFunc(serverHandler))
var servers = []*httptest.Server{httpServer, httpsServer, http2Server}

func TestMain(m *testing.M) {
	httpServer.Start()
	defer httpServer.Close()
	httpsServer.StartTLS()
	defer httpsServer.Close()
	http2Server.EnableHTTP2 = true
	http2Server.StartTLS()
	defer http2Server.Close()
	os.Exit(m.Run())
}

// serverHandler fails each sequence ?id=X with status 503 for the
// first ?fails=N requests, then answers 200. An optional ?hint=V is
// echoed as the Retry-After header on failures.
var serverCalls sync.Map

func serverHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fails, _ := strconv.Atoi(q.Get("fails"))
	n, _ := serverCalls.LoadOrStore(q.Get("id"), new(int32))
	calls := atomic.AddInt32(n.(*int32), 1)

	if int(calls) <= fails {
		if hint := q.Get("hint"); hint != "" {
			w.Header().Set("Retry-After", hint)
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprintln(w, "unavailable")
		return
	}

	fmt.Fprintln(w, "hello")
}

func serverName(server *httptest.Server) string {
	switch server {
	case httpServer:
		return "http"
	case httpsServer:
		return "https"
	case http2Server:
		return "http2"
	default:
		return "unknown"
	}
}

func serverClient(server *httptest.Server) *Client {
	policy := retry.Default().With(retry.WithBackoff(retry.Multiplier(time.Millisecond)))
	return &Client{
		HTTPDoer: server.Client(),
		Policy:   &policy,
	}
}

func serverRequest(t *testing.T, server *httptest.Server, id string, fails int, hint string) *http.Request {
	url := fmt.Sprintf("%s/?id=%s&fails=%d", server.URL, id, fails)
	if hint != "" {
		url += "&hint=" + hint
	}
	req, err := http.NewRequest("GET", url, nil)
	require.NoError(t, err)
	return req
}

func TestServerRetryUntilSuccess(t *testing.T) {
	for _, server := range servers {
		server := server
		t.Run(serverName(server), func(t *testing.T) {
			t.Parallel()
			cl := serverClient(server)
			req := serverRequest(t, server, "until-success-"+serverName(server), 2, "")

			resp, err := cl.DoWith(req, retry.WithExposeRetries(true))

			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, 200, resp.StatusCode)
			assert.Equal(t, "2", resp.Header.Get("X-Retry-Counter"))
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, "hello\n", string(body))
		})
	}
}

func TestServerHonorsHint(t *testing.T) {
	cl := serverClient(httpServer)
	req := serverRequest(t, httpServer, "hint", 1, "0")

	start := time.Now()
	resp, err := cl.Do(req)

	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestServerExhaustsBudget(t *testing.T) {
	cl := serverClient(httpServer)
	req := serverRequest(t, httpServer, "exhaust", 1000, "")

	resp, err := cl.DoWith(req, retry.WithMaxRetries(3))

	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 503, resp.StatusCode)

	n, ok := serverCalls.Load("exhaust")
	require.True(t, ok)
	assert.Equal(t, int32(4), atomic.LoadInt32(n.(*int32)))
}

func TestServerHTTP2ExplicitTransport(t *testing.T) {
	// Drive the retry loop over an explicitly configured HTTP/2
	// transport rather than the server-provided client.
	base, ok := http2Server.Client().Transport.(*http.Transport)
	require.True(t, ok)
	tr := &http.Transport{TLSClientConfig: base.TLSClientConfig}
	require.NoError(t, http2.ConfigureTransport(tr))

	policy := retry.Default().With(retry.WithBackoff(retry.Multiplier(time.Millisecond)))
	cl := &Client{HTTPDoer: AsDoer(tr), Policy: &policy}
	req := serverRequest(t, http2Server, "h2-explicit", 1, "")

	resp, err := cl.Do(req)

	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, 2, resp.ProtoMajor)
	cl.CloseIdleConnections()
}

func TestServerComposedAsRoundTripper(t *testing.T) {
	// The retrying client drops into a standard http.Client transport
	// chain through the adapters.
	retrying := &Client{HTTPDoer: httpServer.Client()}
	policy := retry.Default().With(retry.WithBackoff(retry.Multiplier(time.Millisecond)))
	retrying.Policy = &policy
	outer := &http.Client{Transport: AsRoundTripper(retrying)}

	resp, err := outer.Get(fmt.Sprintf("%s/?id=composed&fails=1", httpServer.URL))

	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)
}
