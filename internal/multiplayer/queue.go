package multiplayer

import "github.com/vovakirdan/lanecross/internal/core"

// DefaultQueueSize is the input buffer used when none is given.
const DefaultQueueSize = 64

// InputQueue carries actions from an input goroutine to the goroutine that
// owns a World. Push never blocks and TryPop never waits; actions come out
// in the order they went in.
type InputQueue struct {
	ch chan core.Action
}

// NewInputQueue creates a queue holding up to size pending actions.
func NewInputQueue(size int) *InputQueue {
	if size < 1 {
		size = DefaultQueueSize
	}
	return &InputQueue{ch: make(chan core.Action, size)}
}

// Push enqueues an action. If the buffer is full the oldest pending action
// is dropped to make room.
func (q *InputQueue) Push(a core.Action) {
	select {
	case q.ch <- a:
		return
	default:
	}

	// Buffer full, drop oldest and retry
	select {
	case <-q.ch:
	default:
	}
	select {
	case q.ch <- a:
	default:
	}
}

// TryPop dequeues the oldest action, or reports false if none is pending.
func (q *InputQueue) TryPop() (core.Action, bool) {
	select {
	case a := <-q.ch:
		return a, true
	default:
		return core.ActionNone, false
	}
}

// Len returns the number of pending actions.
func (q *InputQueue) Len() int {
	return len(q.ch)
}

// Clear discards all pending actions.
func (q *InputQueue) Clear() {
	for {
		if _, ok := q.TryPop(); !ok {
			return
		}
	}
}
