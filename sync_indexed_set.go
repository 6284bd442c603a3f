package rwset

import (
	"cmp"
)

// SyncIndexedSet is an IndexedSet guarded by an RWMutex.
//
// Add and AddAll take the write lock; every other method takes the read lock.
// Each method releases the lock on every return path, including errors and
// panics, so the wrapped set is never observed half-modified.
//
// Create it with NewSyncIndexedSet or NewSyncIndexedSetFunc; the zero value
// is not usable.
//
// Usage:
//
//	users := rwset.NewSyncIndexedSet[string](true)
//	users.Add("bob")
//	users.Add("alice")
//	first, _ := users.Get(0)       // "bob"
//	sorted, _ := users.SortedCopy() // [alice bob]
type SyncIndexedSet[E comparable] struct {
	_    noCopy
	lock *RWMutex
	set  *IndexedSet[E]
}

// NewSyncIndexedSet creates a SyncIndexedSet of an ordered element type,
// with a sorted view when sorted is true. options configure the lock.
func NewSyncIndexedSet[E cmp.Ordered](sorted bool, options ...func(*Config)) *SyncIndexedSet[E] {
	return &SyncIndexedSet[E]{
		lock: NewRWMutex(options...),
		set:  NewIndexedSet[E](sorted),
	}
}

// NewSyncIndexedSetFunc is like NewSyncIndexedSet for element types ordered
// by compare. A nil compare gives an unsorted set.
func NewSyncIndexedSetFunc[E comparable](compare func(a, b E) int, options ...func(*Config)) *SyncIndexedSet[E] {
	return &SyncIndexedSet[E]{
		lock: NewRWMutex(options...),
		set:  NewIndexedSetFunc(compare),
	}
}

func (s *SyncIndexedSet[E]) Add(e E) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.set.Add(e)
}

func (s *SyncIndexedSet[E]) AddAll(elements ...E) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.set.AddAll(elements...)
}

func (s *SyncIndexedSet[E]) Size() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.set.Size()
}

func (s *SyncIndexedSet[E]) Contains(e E) bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.set.Contains(e)
}

func (s *SyncIndexedSet[E]) Get(index int) (E, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.set.Get(index)
}

func (s *SyncIndexedSet[E]) UnsortedCopy() map[E]struct{} {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.set.UnsortedCopy()
}

func (s *SyncIndexedSet[E]) SortedCopy() ([]E, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.set.SortedCopy()
}

func (s *SyncIndexedSet[E]) Values() []E {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.set.Values()
}

// Sorted does not lock: the sort configuration never changes.
func (s *SyncIndexedSet[E]) Sorted() bool {
	return s.set.Sorted()
}

// Range calls fn for each element in insertion order while holding the read
// lock, stopping when fn returns false. fn must not modify the set, or it
// deadlocks.
func (s *SyncIndexedSet[E]) Range(fn func(index int, e E) bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	for i, e := range s.set.All() {
		if !fn(i, e) {
			return
		}
	}
}

func (s *SyncIndexedSet[E]) String() string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.set.String()
}

func (s *SyncIndexedSet[E]) MarshalJSON() ([]byte, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.set.MarshalJSON()
}

func (s *SyncIndexedSet[E]) UnmarshalJSON(data []byte) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.set.UnmarshalJSON(data)
}

// LockStats returns a snapshot of the set's lock counters.
func (s *SyncIndexedSet[E]) LockStats() LockStats {
	return s.lock.Stats()
}
