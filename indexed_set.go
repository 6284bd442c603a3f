package rwset

import (
	"cmp"
	"encoding/json"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"
)

// IndexedSet is an insertion-ordered set: elements are unique by ==, keep the
// position they were added at, and can be fetched by index. It can also keep
// a second, sorted view of the same elements.
//
// The zero value is an empty unsorted set. IndexedSet is not safe for
// concurrent use; see SyncIndexedSet.
type IndexedSet[E comparable] struct {
	items   []E
	members map[E]struct{}

	// sorted and compare are set together; sorted holds the members ordered
	// by compare and is kept up to date on every insertion.
	sorted  []E
	compare func(a, b E) int
}

// NewIndexedSet creates an IndexedSet of an ordered element type. When
// sorted is true the set also maintains a view in ascending order.
func NewIndexedSet[E cmp.Ordered](sorted bool) *IndexedSet[E] {
	if sorted {
		return NewIndexedSetFunc[E](cmp.Compare[E])
	}
	return NewIndexedSetFunc[E](nil)
}

// NewIndexedSetFunc creates an IndexedSet whose sorted view is ordered by
// compare. A nil compare gives an unsorted set. compare must be a total
// order consistent with ==.
func NewIndexedSetFunc[E comparable](compare func(a, b E) int) *IndexedSet[E] {
	return &IndexedSet[E]{
		members: make(map[E]struct{}),
		compare: compare,
	}
}

// Sorted reports whether the set maintains a sorted view.
func (s *IndexedSet[E]) Sorted() bool {
	return s.compare != nil
}

// Add inserts e and reports whether the set changed.
func (s *IndexedSet[E]) Add(e E) bool {
	if _, ok := s.members[e]; ok {
		return false
	}
	if s.members == nil {
		s.members = make(map[E]struct{})
	}
	s.members[e] = struct{}{}
	s.items = append(s.items, e)
	if s.compare != nil {
		i, _ := slices.BinarySearchFunc(s.sorted, e, s.compare)
		s.sorted = slices.Insert(s.sorted, i, e)
	}
	return true
}

// AddAll inserts every element in order and reports whether the set changed.
func (s *IndexedSet[E]) AddAll(elements ...E) bool {
	changed := false
	for _, e := range elements {
		if s.Add(e) {
			changed = true
		}
	}
	return changed
}

func (s *IndexedSet[E]) Size() int {
	return len(s.items)
}

func (s *IndexedSet[E]) Contains(e E) bool {
	_, ok := s.members[e]
	return ok
}

// Get returns the element at insertion position index.
// It fails with ErrIndexOutOfRange unless 0 <= index < Size().
func (s *IndexedSet[E]) Get(index int) (E, error) {
	if index < 0 || index >= len(s.items) {
		var zero E
		return zero, fmt.Errorf("%w: index %d, size %d", ErrIndexOutOfRange, index, len(s.items))
	}
	return s.items[index], nil
}

// UnsortedCopy returns the members as a new map-backed set.
func (s *IndexedSet[E]) UnsortedCopy() map[E]struct{} {
	return maps.Clone(s.members)
}

// SortedCopy returns the members in sort order.
// It fails with ErrNotSorted if the set keeps no sorted view.
func (s *IndexedSet[E]) SortedCopy() ([]E, error) {
	if s.compare == nil {
		return nil, ErrNotSorted
	}
	return slices.Clone(s.sorted), nil
}

// Values returns the members in insertion order.
func (s *IndexedSet[E]) Values() []E {
	return slices.Clone(s.items)
}

// All iterates over (index, element) pairs in insertion order.
// The set must not be modified during iteration.
func (s *IndexedSet[E]) All() iter.Seq2[int, E] {
	return slices.All(s.items)
}

// String formats the elements in insertion order, e.g. "[a, b, c]".
func (s *IndexedSet[E]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range s.items {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprint(&b, e)
	}
	b.WriteByte(']')
	return b.String()
}

// MarshalJSON encodes the elements as a JSON array in insertion order.
func (s *IndexedSet[E]) MarshalJSON() ([]byte, error) {
	if s.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.items)
}

// UnmarshalJSON adds the elements of a JSON array. Duplicates are dropped.
func (s *IndexedSet[E]) UnmarshalJSON(data []byte) error {
	var items []E
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	s.AddAll(items...)
	return nil
}
