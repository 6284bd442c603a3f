package rwset

import "github.com/llxisdsh/rwset/internal/opt"

// waitQueue is a FIFO list of parked goroutines.
//
// It is not safe on its own: every call must be made while holding the
// ticketLock of the owning RWMutex. A goroutine enqueues itself, drops the
// ticketLock and parks on its waiter's sema. wakeAll detaches the whole list,
// so a waiter is released exactly once and must then re-check its condition.
type waitQueue struct {
	head *waiter
	tail *waiter
	n    int
}

type waiter struct {
	next *waiter
	sema opt.Sema
}

func (q *waitQueue) enqueue() *waiter {
	w := &waiter{}
	if q.tail == nil {
		q.head = w
	} else {
		q.tail.next = w
	}
	q.tail = w
	q.n++
	return w
}

// wakeAll releases every parked waiter in arrival order.
func (q *waitQueue) wakeAll() {
	w := q.head
	q.head, q.tail, q.n = nil, nil, 0
	for w != nil {
		next := w.next
		w.sema.Release()
		w = next
	}
}

func (q *waitQueue) len() int {
	return q.n
}
