package rwset

import (
	"sync/atomic"
)

// ticketLock is a FIFO spin lock for very short critical sections.
//
// RWMutex keeps all of its counters behind one ticketLock, so the order in
// which callers enter the bookkeeping section is the order in which they
// called. Blocking for the outer lock never happens while holding it.
type ticketLock struct {
	_       noCopy
	next    atomic.Uint32
	serving atomic.Uint32
}

func (m *ticketLock) Lock() {
	my := m.next.Add(1) - 1
	var spins int
	for m.serving.Load() != my {
		delay(&spins)
	}
}

func (m *ticketLock) Unlock() {
	m.serving.Add(1)
}
