// Package callsite records where controlled workers suspend.
//
// Every time a worker parks at a suspension point the rendezvous cell
// captures the calling stack and keeps only its hash. Identical stacks are
// stored once, so a long exploration that parks millions of times at the
// same handful of sites costs a few hundred bytes.
//
// Design:
//   - Fixed-size stack traces (8 frames)
//   - FNV-1a hash of the program counters as the key
//   - Global sync.Map storage (safe for concurrent workers)
//
// Usage:
//
//	hash := callsite.Capture(0)
//	...
//	fmt.Println(callsite.Lookup(hash).Where())
//	// shared.(*Uint32).Load uint32.go:31 <- counter.(*Counter).Increment counter.go:48
package callsite

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// MaxFrames is the maximum number of stack frames captured per site.
const MaxFrames = 8

// hookPrefixes name the packages that implement suspension itself. Their
// frames are never interesting to someone reading a trace.
var hookPrefixes = []string{
	"runtime.",
	"github.com/kolkov/interleave/internal/sched/rendezvous.",
	"github.com/kolkov/interleave/internal/sched/registry.",
	"github.com/kolkov/interleave/interleave.",
}

// Stack is a captured call stack.
type Stack struct {
	PC [MaxFrames]uintptr
}

// depot maps hash -> *Stack.
var depot sync.Map

// Capture records the caller's stack and returns its hash.
//
// skip is the number of additional frames to drop: 0 starts the stack at the
// function calling Capture. Returns 0 if no frame is available.
func Capture(skip int) uint64 {
	var pcs [MaxFrames]uintptr
	// 2 = runtime.Callers + Capture.
	n := runtime.Callers(skip+2, pcs[:])
	if n == 0 {
		return 0
	}

	hash := hashPCs(pcs[:n])
	if _, ok := depot.Load(hash); !ok {
		depot.LoadOrStore(hash, &Stack{PC: pcs})
	}
	return hash
}

// Lookup returns the stack stored under hash, or nil.
func Lookup(hash uint64) *Stack {
	if hash == 0 {
		return nil
	}
	v, ok := depot.Load(hash)
	if !ok {
		return nil
	}
	return v.(*Stack)
}

func hashPCs(pcs []uintptr) uint64 {
	h := fnv.New64a()
	var b [8]byte
	for _, pc := range pcs {
		binary.LittleEndian.PutUint64(b[:], uint64(pc))
		_, _ = h.Write(b[:])
	}
	return h.Sum64()
}

// Frames returns the frames of s that lie outside the suspension machinery.
func (s *Stack) Frames() []runtime.Frame {
	if s == nil {
		return nil
	}

	n := 0
	for n < len(s.PC) && s.PC[n] != 0 {
		n++
	}
	if n == 0 {
		return nil
	}

	var out []runtime.Frame
	frames := runtime.CallersFrames(s.PC[:n])
	for {
		frame, more := frames.Next()
		if frame.PC != 0 && !isHook(frame.Function) {
			out = append(out, frame)
		}
		if !more {
			break
		}
	}
	return out
}

func isHook(function string) bool {
	for _, p := range hookPrefixes {
		if strings.HasPrefix(function, p) {
			return true
		}
	}
	return false
}

// Where summarizes the site as "operation <- caller", one line.
func (s *Stack) Where() string {
	frames := s.Frames()
	switch len(frames) {
	case 0:
		return "<unknown>"
	case 1:
		return short(frames[0])
	default:
		return short(frames[0]) + " <- " + short(frames[1])
	}
}

// Format renders the stack in the layout of a Go panic trace.
func (s *Stack) Format() string {
	frames := s.Frames()
	if len(frames) == 0 {
		return "  <unknown>\n"
	}

	var buf strings.Builder
	for _, f := range frames {
		fmt.Fprintf(&buf, "  %s()\n", f.Function)
		fmt.Fprintf(&buf, "      %s:%d\n", f.File, f.Line)
	}
	return buf.String()
}

// short renders pkg.Func file.go:line without the import path.
func short(f runtime.Frame) string {
	fn := f.Function
	if i := strings.LastIndexByte(fn, '/'); i >= 0 {
		fn = fn[i+1:]
	}
	return fmt.Sprintf("%s %s:%d", fn, filepath.Base(f.File), f.Line)
}

// Reset clears the depot. Not safe for concurrent use; tests only.
func Reset() {
	depot = sync.Map{}
}

// Stats returns the number of unique stacks stored.
func Stats() (unique int) {
	depot.Range(func(_, _ any) bool {
		unique++
		return true
	})
	return unique
}
