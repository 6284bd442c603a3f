package rwset

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexedSet_AddKeepsInsertionOrder(t *testing.T) {
	s := NewIndexedSet[string](false)

	assert.True(t, s.Add("c"))
	assert.True(t, s.Add("a"))
	assert.False(t, s.Add("c"))
	assert.True(t, s.Add("b"))

	assert.Equal(t, 3, s.Size())
	assert.Equal(t, []string{"c", "a", "b"}, s.Values())
	assert.True(t, s.Contains("a"))
	assert.False(t, s.Contains("z"))

	e, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "a", e)
}

func TestIndexedSet_ZeroValue(t *testing.T) {
	var s IndexedSet[int]

	assert.Zero(t, s.Size())
	assert.False(t, s.Contains(1))
	assert.False(t, s.Sorted())
	assert.Empty(t, s.UnsortedCopy())

	require.NotPanics(t, func() {
		assert.True(t, s.Add(1))
	})
	assert.False(t, s.Add(1))
	assert.True(t, s.AddAll(2, 3))
	assert.Equal(t, []int{1, 2, 3}, s.Values())
	assert.Equal(t, map[int]struct{}{1: {}, 2: {}, 3: {}}, s.UnsortedCopy())
}

func TestIndexedSet_AddAll(t *testing.T) {
	s := NewIndexedSet[int](false)

	assert.True(t, s.AddAll(3, 1, 3, 2))
	assert.False(t, s.AddAll(1, 2))
	assert.False(t, s.AddAll())
	assert.Equal(t, []int{3, 1, 2}, s.Values())
}

func TestIndexedSet_GetOutOfRange(t *testing.T) {
	s := NewIndexedSet[int](false)
	s.Add(7)

	for _, idx := range []int{-1, 1, 100} {
		_, err := s.Get(idx)
		require.ErrorIs(t, err, ErrIndexOutOfRange, "index %d", idx)
	}
}

func TestIndexedSet_SortedView(t *testing.T) {
	s := NewIndexedSet[int](true)
	s.AddAll(5, 1, 4, 1, 3)

	require.True(t, s.Sorted())
	sorted, err := s.SortedCopy()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 4, 5}, sorted)
	assert.Equal(t, []int{5, 1, 4, 3}, s.Values())

	// The copy is detached from the set.
	sorted[0] = 99
	again, _ := s.SortedCopy()
	assert.Equal(t, 1, again[0])
}

func TestIndexedSet_SortedFunc(t *testing.T) {
	byLen := func(a, b string) int {
		if c := len(a) - len(b); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	}
	s := NewIndexedSetFunc(byLen)
	s.AddAll("ccc", "a", "bb", "aa")

	sorted, err := s.SortedCopy()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "aa", "bb", "ccc"}, sorted)
}

func TestIndexedSet_UnsortedHasNoSortedCopy(t *testing.T) {
	s := NewIndexedSet[int](false)
	s.Add(1)

	assert.False(t, s.Sorted())
	_, err := s.SortedCopy()
	require.ErrorIs(t, err, ErrNotSorted)
}

func TestIndexedSet_UnsortedCopy(t *testing.T) {
	s := NewIndexedSet[string](true)
	s.AddAll("x", "y")

	cp := s.UnsortedCopy()
	assert.Equal(t, map[string]struct{}{"x": {}, "y": {}}, cp)

	delete(cp, "x")
	assert.True(t, s.Contains("x"))
}

func TestIndexedSet_String(t *testing.T) {
	s := NewIndexedSet[int](false)
	assert.Equal(t, "[]", s.String())

	s.AddAll(3, 1, 2)
	assert.Equal(t, "[3, 1, 2]", s.String())
}

func TestIndexedSet_All(t *testing.T) {
	s := NewIndexedSet[string](false)
	s.AddAll("a", "b", "c")

	var got []string
	for i, e := range s.All() {
		if i == 2 {
			break
		}
		got = append(got, e)
	}
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestIndexedSet_JSON(t *testing.T) {
	s := NewIndexedSet[string](true)
	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))

	s.AddAll("b", "a")
	data, err = json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `["b","a"]`, string(data))

	back := NewIndexedSet[string](true)
	require.NoError(t, json.Unmarshal([]byte(`["z","y","z"]`), back))
	assert.Equal(t, []string{"z", "y"}, back.Values())
	sorted, err := back.SortedCopy()
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "z"}, sorted)
}
