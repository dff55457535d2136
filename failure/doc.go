// Copyright 2026 The reprise Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package failure classifies transport errors from an HTTP request
// attempt into the kinds the retry engine understands: timeouts,
// connectivity faults, and everything else. Errors of any other kind
// are outside the engine's mandate and are propagated to the caller
// without a retry decision.
//
// Package failure is extremely lightweight, as it depends only on the
// standard library packages "errors" and "syscall", so it doesn't
// bring any significant dependencies when imported as a standalone
// package.
package failure
