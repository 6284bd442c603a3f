package opt

import (
	_ "unsafe" // for linkname
)

// Sema is a parking slot backed by the runtime semaphore used by package sync.
//
// Release before Acquire is not lost: the runtime semaphore counts, so a
// parked goroutine and its waker may arrive in either order.
type Sema uint32

// Acquire parks the caller until a matching Release.
func (s *Sema) Acquire() {
	runtime_semacquire((*uint32)(s))
}

// Release wakes one goroutine parked in Acquire, or lets the next Acquire
// return immediately.
func (s *Sema) Release() {
	runtime_semrelease((*uint32)(s), false, 0)
}

//go:linkname runtime_semacquire sync.runtime_Semacquire
func runtime_semacquire(s *uint32)

//go:linkname runtime_semrelease sync.runtime_Semrelease
func runtime_semrelease(s *uint32, handoff bool, skipframes int)
