package event

import (
	"sync/atomic"

	"github.com/lixenwraith/termdesk/parameter"
)

// Queue is a lock-free MPSC ring buffer for desktop ops.
//
// Thread-safety:
//   - Push: lock-free CAS, any number of producers
//   - Consume: single consumer (the render loop)
//   - Published flags prevent reading partially written slots
//
// Overflow: oldest ops are overwritten when full.
type Queue struct {
	ops       [parameter.OpQueueSize]Op
	published [parameter.OpQueueSize]atomic.Bool // True = slot fully written
	head      atomic.Uint64                      // Read index
	tail      atomic.Uint64                      // Write index
}

// NewQueue creates an empty op queue
func NewQueue() *Queue {
	return &Queue{}
}

// Push adds an op using CAS slot reservation with published flags.
// Safe for concurrent producers. O(1) amortized.
func (q *Queue) Push(op Op) {
	for {
		currentTail := q.tail.Load()
		nextTail := currentTail + 1

		if q.tail.CompareAndSwap(currentTail, nextTail) {
			idx := currentTail & parameter.OpBufferMask

			q.ops[idx] = op
			q.published[idx].Store(true) // MUST be after the write

			// Advance head if overwriting unread ops
			currentHead := q.head.Load()
			if nextTail-currentHead > parameter.OpQueueSize {
				q.head.CompareAndSwap(currentHead, nextTail-parameter.OpQueueSize)
			}
			return
		}
	}
}

// Consume returns all pending ops in FIFO order and advances the head.
// Single-consumer design; published flags guard incomplete writers.
func (q *Queue) Consume() []Op {
	for {
		currentHead := q.head.Load()
		currentTail := q.tail.Load()

		if currentTail == currentHead {
			return nil
		}

		maxAvailable := currentTail - currentHead
		if maxAvailable > parameter.OpQueueSize {
			maxAvailable = parameter.OpQueueSize
			currentHead = currentTail - parameter.OpQueueSize
		}

		result := make([]Op, 0, maxAvailable)
		for i := uint64(0); i < maxAvailable; i++ {
			idx := (currentHead + i) & parameter.OpBufferMask

			if !q.published[idx].Load() {
				break // Writer incomplete, stop at the gap
			}

			result = append(result, q.ops[idx])
		}

		// Commit the head before touching the flags: a failed commit
		// means overflow advanced the head mid-scan, and the rescan
		// must still find every slot published
		newHead := currentHead + uint64(len(result))
		if !q.head.CompareAndSwap(currentHead, newHead) {
			continue
		}
		for i := uint64(0); i < uint64(len(result)); i++ {
			q.published[(currentHead+i)&parameter.OpBufferMask].Store(false)
		}
		return result
	}
}

// Len returns the approximate number of pending ops
func (q *Queue) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail < head {
		return 0
	}
	n := tail - head
	if n > parameter.OpQueueSize {
		n = parameter.OpQueueSize
	}
	return int(n)
}
