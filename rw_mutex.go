package rwset

import (
	"sync"
	"time"

	"github.com/llxisdsh/rwset/internal/opt"
)

// RWMutex is a blocking reader/writer lock that does not let readers starve
// writers.
//
// Admission rules:
//   - Any number of readers may hold the lock together.
//   - A writer holds it alone, with no readers and no other writer.
//   - A new reader waits while a writer is active OR waiting. Readers that
//     are already inside finish normally; the writer waits for them to drain.
//   - Writers are served in FIFO order of their Lock calls.
//
// All counters live behind one fair internal ticketLock. A caller whose
// condition is false enqueues itself, releases the internal lock and parks on
// a runtime semaphore. Every release that can change an outcome wakes the
// affected wait lists and each woken caller re-checks its condition.
//
// It is zero-value usable (uninstrumented). Use NewRWMutex for a lock that
// logs slow acquisitions or records metrics. RWMutex must not be copied after
// first use, and it is not re-entrant: a goroutine holding the read lock
// must not call Lock, and vice versa.
type RWMutex struct {
	_  noCopy
	mu ticketLock
	// Spinners on mu do not share a cache line with the counters that the
	// holder of mu writes.
	_ opt.CounterPad_

	readers        int32 // active readers
	writers        int32 // active writers, 0 or 1
	waitingWriters int32 // writers inside Lock that have not acquired yet

	// Writer FIFO: Lock draws nextTicket, and may only acquire when its
	// ticket equals serving.
	nextTicket uint32
	serving    uint32

	readerQ waitQueue
	writerQ waitQueue

	in *instrument
}

// LockStats is a consistent snapshot of an RWMutex's counters.
type LockStats struct {
	ActiveReaders  int
	ActiveWriters  int
	WaitingWriters int
	// ParkedReaders is the number of readers currently parked. It does not
	// include readers that were woken and are re-checking their condition.
	ParkedReaders int
}

// NewRWMutex creates an instrumented RWMutex.
//
// Parameters:
//   - options: WithName, WithLogger, WithSlowThreshold, WithMeterProvider,
//     WithMetrics
//
// Without logger and meter provider the result is equivalent to a zero
// RWMutex.
func NewRWMutex(options ...func(*Config)) *RWMutex {
	return &RWMutex{in: newInstrument(newConfig(options...))}
}

// Name returns the name of an instrumented lock, or "" for a plain one.
func (rw *RWMutex) Name() string {
	if rw.in == nil {
		return ""
	}
	return rw.in.name
}

// RLock acquires the lock in read mode.
// It blocks while a writer holds the lock or is waiting for it.
func (rw *RWMutex) RLock() {
	var start time.Time
	if rw.in != nil {
		start = time.Now()
	}
	contended := false

	rw.mu.Lock()
	for rw.writers != 0 || rw.waitingWriters != 0 {
		contended = true
		w := rw.readerQ.enqueue()
		rw.mu.Unlock()
		w.sema.Acquire()
		rw.mu.Lock()
	}
	rw.readers++
	rw.mu.Unlock()

	if rw.in != nil {
		rw.in.acquired(ReadMode, start, contended)
	}
}

// TryRLock acquires the read lock if that is possible without blocking.
func (rw *RWMutex) TryRLock() bool {
	rw.mu.Lock()
	defer rw.mu.Unlock()
	if rw.writers != 0 || rw.waitingWriters != 0 {
		return false
	}
	rw.readers++
	return true
}

// RUnlock releases one read lock.
// The last reader out wakes the waiting writers.
//
// It panics with ErrRUnlockOfUnlocked if no read lock is held.
func (rw *RWMutex) RUnlock() {
	rw.mu.Lock()
	if rw.readers == 0 {
		rw.mu.Unlock()
		panic(ErrRUnlockOfUnlocked)
	}
	rw.readers--
	if rw.readers == 0 {
		rw.writerQ.wakeAll()
	}
	rw.mu.Unlock()
}

// Lock acquires the lock in write mode.
// The intent to write is registered first, so readers arriving after this
// call queue behind the writer even before it acquires.
func (rw *RWMutex) Lock() {
	var start time.Time
	if rw.in != nil {
		start = time.Now()
	}
	contended := false

	rw.mu.Lock()
	rw.waitingWriters++
	ticket := rw.nextTicket
	rw.nextTicket++
	for rw.writers != 0 || rw.readers != 0 || ticket != rw.serving {
		contended = true
		w := rw.writerQ.enqueue()
		rw.mu.Unlock()
		w.sema.Acquire()
		rw.mu.Lock()
	}
	rw.waitingWriters--
	rw.serving++
	rw.writers = 1
	if rw.in != nil {
		rw.in.writeSince = time.Now()
	}
	rw.mu.Unlock()

	if rw.in != nil {
		rw.in.acquired(WriteMode, start, contended)
	}
}

// TryLock acquires the write lock if that is possible without blocking.
// It fails while other writers are queued, so it never jumps the FIFO.
func (rw *RWMutex) TryLock() bool {
	rw.mu.Lock()
	defer rw.mu.Unlock()
	if rw.writers != 0 || rw.readers != 0 || rw.waitingWriters != 0 {
		return false
	}
	// No writer is waiting, so nextTicket == serving: take and serve one.
	rw.nextTicket++
	rw.serving++
	rw.writers = 1
	if rw.in != nil {
		rw.in.writeSince = time.Now()
	}
	return true
}

// Unlock releases the write lock and wakes every parked reader and writer
// to re-check its condition.
//
// It panics with ErrUnlockOfUnlocked if the write lock is not held.
func (rw *RWMutex) Unlock() {
	rw.mu.Lock()
	if rw.writers == 0 {
		rw.mu.Unlock()
		panic(ErrUnlockOfUnlocked)
	}
	var held time.Duration
	if rw.in != nil {
		held = time.Since(rw.in.writeSince)
	}
	rw.writers = 0
	rw.writerQ.wakeAll()
	rw.readerQ.wakeAll()
	rw.mu.Unlock()

	if rw.in != nil {
		rw.in.released(held)
	}
}

// Read runs fn holding the read lock. The lock is released even if fn panics.
func (rw *RWMutex) Read(fn func()) {
	rw.RLock()
	defer rw.RUnlock()
	fn()
}

// Write runs fn holding the write lock. The lock is released even if fn
// panics.
func (rw *RWMutex) Write(fn func()) {
	rw.Lock()
	defer rw.Unlock()
	fn()
}

// Stats returns a snapshot of the lock counters.
func (rw *RWMutex) Stats() LockStats {
	rw.mu.Lock()
	defer rw.mu.Unlock()
	return LockStats{
		ActiveReaders:  int(rw.readers),
		ActiveWriters:  int(rw.writers),
		WaitingWriters: int(rw.waitingWriters),
		ParkedReaders:  rw.readerQ.len(),
	}
}

// RLocker returns a sync.Locker that takes rw in read mode.
func (rw *RWMutex) RLocker() sync.Locker {
	return (*rlocker)(rw)
}

type rlocker RWMutex

func (r *rlocker) Lock()   { (*RWMutex)(r).RLock() }
func (r *rlocker) Unlock() { (*RWMutex)(r).RUnlock() }
