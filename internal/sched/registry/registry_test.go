// Copyright 2025 The interleave Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolkov/interleave/internal/sched/rendezvous"
)

// onGoroutine runs fn on a fresh goroutine and waits for it.
func onGoroutine(fn func()) {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		fn()
	}()
	wg.Wait()
}

func TestCurrent_Unbound(t *testing.T) {
	assert.Nil(t, Current())
}

func TestBind_ScopedToGoroutine(t *testing.T) {
	c := rendezvous.New(nil)

	onGoroutine(func() {
		Bind(c)
		defer Unbind()

		assert.Same(t, c, Current())
		assert.Equal(t, 1, Len())

		// A goroutine spawned by the worker is not controlled.
		onGoroutine(func() {
			assert.Nil(t, Current())
		})
	})

	assert.Nil(t, Current())
	assert.Equal(t, 0, Len())
}

func TestBind_Twice(t *testing.T) {
	onGoroutine(func() {
		Bind(rendezvous.New(nil))
		defer Unbind()

		assert.Panics(t, func() { Bind(rendezvous.New(nil)) })
	})
	assert.Equal(t, 0, Len())
}

func TestBind_Nil(t *testing.T) {
	assert.Panics(t, func() { Bind(nil) })
}

func TestUnbind_NotBound(t *testing.T) {
	Unbind()
	assert.Equal(t, 0, Len())
}

func TestBind_ManyWorkers(t *testing.T) {
	const n = 16

	cells := make([]*rendezvous.Cell, n)
	for i := range cells {
		cells[i] = rendezvous.New(nil)
	}

	ready := make(chan struct{})
	var bindWG, doneWG sync.WaitGroup
	bindWG.Add(n)
	doneWG.Add(n)
	for i := 0; i < n; i++ {
		go func(c *rendezvous.Cell) {
			defer doneWG.Done()
			Bind(c)
			defer Unbind()
			bindWG.Done()
			<-ready
			assert.Same(t, c, Current())
		}(cells[i])
	}

	bindWG.Wait()
	require.Equal(t, n, Len())
	close(ready)
	doneWG.Wait()
	assert.Equal(t, 0, Len())
}
