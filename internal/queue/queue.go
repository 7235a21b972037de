// Package queue provides the non-blocking message queues that connect the
// control core to its collaborators: a multi-producer inbox of configuration
// events and a single-producer outbox of status updates. Both are plain
// buffered channels behind try-send / try-receive-all operations, so tests
// can drive the core synchronously without a threaded driver.
package queue

// Queue is a fixed-capacity FIFO safe for concurrent producers and a single
// draining consumer. Neither operation ever blocks.
type Queue[T any] struct {
	ch chan T
}

// New creates a Queue holding at most capacity messages.
func New[T any](capacity int) *Queue[T] {
	return &Queue[T]{ch: make(chan T, capacity)}
}

// TrySend enqueues msg. Returns false if the queue is full; the message is
// dropped, never blocked on.
func (q *Queue[T]) TrySend(msg T) bool {
	select {
	case q.ch <- msg:
		return true
	default:
		return false
	}
}

// TryReceiveAll drains every pending message in arrival order. Returns nil
// when the queue is empty.
func (q *Queue[T]) TryReceiveAll() []T {
	var msgs []T
	for {
		select {
		case msg := <-q.ch:
			msgs = append(msgs, msg)
		default:
			return msgs
		}
	}
}

// Len reports the number of pending messages.
func (q *Queue[T]) Len() int {
	return len(q.ch)
}
