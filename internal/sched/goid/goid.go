// Copyright 2025 The interleave Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package goid extracts the identifier of the calling goroutine.
//
// The scheduler needs to answer "is the code running right now a controlled
// worker, and if so which one?" from inside instrumented operations that do
// not receive any explicit handle. Go has no goroutine-local storage, so the
// registry keys its table by goroutine id instead.
//
// The id is parsed from the first line of runtime.Stack output:
//
//	goroutine 123 [running]:
//
// This costs roughly a microsecond per call. Callers that run on hot paths
// should avoid the lookup when no worker is registered (see package registry).
package goid

import "runtime"

// prefix is the fixed header of a runtime.Stack trace.
const prefix = "goroutine "

// ID returns the id of the calling goroutine.
//
// The value is stable for the lifetime of the goroutine and unique among
// live goroutines. It is always positive; 0 means the stack header could not
// be parsed, which indicates a runtime format change.
func ID() int64 {
	// Only the header line is needed.
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	return Parse(buf[:n])
}

// Parse extracts the goroutine id from raw runtime.Stack bytes.
//
// Returns 0 if buf does not start with "goroutine " followed by digits.
func Parse(buf []byte) int64 {
	if len(buf) <= len(prefix) || string(buf[:len(prefix)]) != prefix {
		return 0
	}

	var id int64
	for _, c := range buf[len(prefix):] {
		if c < '0' || c > '9' {
			// Usually the space before "[running]".
			break
		}
		id = id*10 + int64(c-'0')
	}
	return id
}
