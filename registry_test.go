package rwset

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// syncBuffer is a bytes.Buffer safe for concurrent log writes.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRegistry_ZeroValue(t *testing.T) {
	var reg Registry[string]

	users, loaded, err := reg.Open("users", true)
	require.NoError(t, err)
	require.NotNil(t, users)
	assert.False(t, loaded)
	assert.True(t, users.Sorted())

	again, loaded, err := reg.Open("users", true)
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Same(t, users, again)

	got, err := reg.Load("users")
	require.NoError(t, err)
	assert.Same(t, users, got)

	_, err = reg.Load("missing")
	require.ErrorIs(t, err, ErrSetNotFound)
}

func TestRegistry_OpenReportsSortModeConflict(t *testing.T) {
	var reg Registry[string]

	unsorted, _, err := reg.Open("events", false)
	require.NoError(t, err)

	s, loaded, err := reg.Open("events", true)
	require.ErrorIs(t, err, ErrSortModeConflict)
	assert.Contains(t, err.Error(), `"events"`)
	assert.True(t, loaded)
	assert.Same(t, unsorted, s)
	assert.False(t, s.Sorted())

	_, err = s.SortedCopy()
	require.ErrorIs(t, err, ErrNotSorted)
}

func TestRegistry_DeleteAndNames(t *testing.T) {
	var reg Registry[int]
	for _, name := range []string{"b", "a", "c"} {
		_, _, err := reg.Open(name, name == "c")
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"a", "b", "c"}, reg.Names())

	assert.True(t, reg.Delete("b"))
	assert.False(t, reg.Delete("b"))
	assert.Equal(t, []string{"a", "c"}, reg.Names())

	_, err := reg.Load("b")
	require.ErrorIs(t, err, ErrSetNotFound)
}

func TestRegistry_ConcurrentOpenCreatesOnce(t *testing.T) {
	var reg Registry[int]
	const n = 32

	sets := make([]*SyncIndexedSet[int], n)
	var g errgroup.Group
	for i := range n {
		g.Go(func() error {
			s, _, err := reg.Open("shared", true)
			if err != nil {
				return err
			}
			s.Add(i)
			sets[i] = s
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for _, s := range sets {
		assert.Same(t, sets[0], s)
	}
	assert.Equal(t, n, sets[0].Size())
}

func TestRegistry_Declare(t *testing.T) {
	var out syncBuffer
	logger := slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))
	reg := NewRegistry[string](WithLogger(logger))

	require.NoError(t, reg.Declare([]SetConfig{
		{Name: "users", Sorted: true},
		{Name: "events"},
	}))
	assert.Equal(t, []string{"events", "users"}, reg.Names())

	users, err := reg.Load("users")
	require.NoError(t, err)
	assert.True(t, users.Sorted())
	assert.Equal(t, "users", users.lock.Name())

	err = reg.Declare([]SetConfig{{Name: "users", Sorted: false}, {Name: "audit"}})
	require.ErrorIs(t, err, ErrSortModeConflict)
	assert.Contains(t, err.Error(), "users")
	assert.Equal(t, []string{"audit", "events", "users"}, reg.Names())

	reg.Delete("audit")
	logged := out.String()
	assert.Contains(t, logged, "set created")
	assert.Contains(t, logged, "set=users")
	assert.Contains(t, logged, "set deleted")
}
