// Copyright 2025 The interleave Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package goid

import (
	"sync"
	"testing"
)

// TestID_Stable verifies the id is positive and stable within a goroutine.
func TestID_Stable(t *testing.T) {
	id := ID()
	if id <= 0 {
		t.Fatalf("ID() returned non-positive id: %d", id)
	}
	if again := ID(); again != id {
		t.Errorf("ID() not stable: first=%d, second=%d", id, again)
	}
}

// TestID_Unique verifies concurrently live goroutines get distinct ids.
func TestID_Unique(t *testing.T) {
	const n = 64

	ids := make(chan int64, n)
	release := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- ID()
			// Stay alive until every id is collected so none can be reused.
			<-release
		}()
	}

	seen := make(map[int64]bool, n)
	for i := 0; i < n; i++ {
		id := <-ids
		if seen[id] {
			t.Errorf("duplicate goroutine id %d", id)
		}
		seen[id] = true
	}
	close(release)
	wg.Wait()

	if seen[ID()] {
		t.Error("child goroutine reported the parent's id")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{"typical", "goroutine 123 [running]:\nmain.main()", 123},
		{"single digit", "goroutine 1 [running]:", 1},
		{"large", "goroutine 9876543210 [chan receive]:", 9876543210},
		{"empty", "", 0},
		{"prefix only", "goroutine ", 0},
		{"wrong prefix", "thread 12 [running]:", 0},
		{"no digits", "goroutine [running]:", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse([]byte(tt.in)); got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func BenchmarkID(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = ID()
	}
}
