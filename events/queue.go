package events

import "sync/atomic"

const (
	// QueueSize must stay a power of two for mask arithmetic
	QueueSize = 256
	queueMask = QueueSize - 1
)

// Queue is a lock-free MPSC ring buffer for motion events
//
// Push is CAS-based and safe for concurrent producers; Consume is
// single-consumer (the host's dispatch point). Published flags prevent a
// reader from observing a partially written slot. When full, the oldest
// events are overwritten
type Queue struct {
	events    [QueueSize]Event
	published [QueueSize]atomic.Bool
	head      atomic.Uint64 // read index
	tail      atomic.Uint64 // write index
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push appends an event; O(1) amortized
func (q *Queue) Push(event Event) {
	for {
		currentTail := q.tail.Load()
		nextTail := currentTail + 1

		if q.tail.CompareAndSwap(currentTail, nextTail) {
			idx := currentTail & queueMask

			q.events[idx] = event
			q.published[idx].Store(true) // must follow the write

			currentHead := q.head.Load()
			if nextTail-currentHead > QueueSize {
				q.head.CompareAndSwap(currentHead, nextTail-QueueSize)
			}
			return
		}
	}
}

// Consume drains all pending events in FIFO order
func (q *Queue) Consume() []Event {
	for {
		currentHead := q.head.Load()
		currentTail := q.tail.Load()

		if currentTail == currentHead {
			return nil
		}

		available := currentTail - currentHead
		if available > QueueSize {
			available = QueueSize
			currentHead = currentTail - QueueSize
		}

		result := make([]Event, 0, available)
		for i := uint64(0); i < available; i++ {
			idx := (currentHead + i) & queueMask
			if !q.published[idx].Load() {
				break // writer incomplete
			}
			result = append(result, q.events[idx])
			q.published[idx].Store(false)
		}

		if q.head.CompareAndSwap(currentHead, currentHead+uint64(len(result))) {
			if len(result) == 0 {
				return nil
			}
			return result
		}
	}
}
