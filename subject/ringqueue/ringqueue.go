// Package ringqueue is a fixed-capacity FIFO queue of int32 backed by a ring
// buffer.
package ringqueue

// Queue is a ring buffer. It is not safe for concurrent use.
type Queue struct {
	buf  []int32
	head int // next slot to pop
	n    int // number of queued values
}

// New returns an empty queue holding at most capacity values.
func New(capacity int) *Queue {
	if capacity < 0 {
		panic("ringqueue: negative capacity")
	}
	return &Queue{buf: make([]int32, capacity)}
}

// Push appends v. It reports false, leaving the queue unchanged, when full.
func (q *Queue) Push(v int32) bool {
	if q.n == len(q.buf) {
		return false
	}
	q.buf[(q.head+q.n)%len(q.buf)] = v
	q.n++
	return true
}

// Pop removes and returns the oldest value. ok is false when empty.
func (q *Queue) Pop() (v int32, ok bool) {
	if q.n == 0 {
		return 0, false
	}
	v = q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.n--
	return v, true
}

// Len returns the number of queued values.
func (q *Queue) Len() int {
	return q.n
}

// Cap returns the capacity.
func (q *Queue) Cap() int {
	return len(q.buf)
}
