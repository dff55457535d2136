// Copyright 2026 The reprise Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package attempt contains State, the mutable record of one logical
// HTTP request as it progresses through repeated attempts against a
// transport.
//
// A State is created when the logical request begins, is threaded
// through every retry decision made for that request, and is discarded
// when a terminal outcome is reached. It is owned exclusively by the
// one logical request's retry loop and must never be shared across
// concurrent logical requests.
package attempt
