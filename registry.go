package rwset

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/llxisdsh/pb"
)

// Registry is a concurrent namespace of SyncIndexedSets.
//
// Sets are created on first Open and live until Delete. Each set gets its
// own RWMutex, named after the set, built with the registry options, so
// traffic on one set never blocks another.
//
// It is zero-value usable.
//
// Usage:
//
//	var reg rwset.Registry[string]
//	users, _, err := reg.Open("users", true)
//	users.Add("alice")
type Registry[E cmp.Ordered] struct {
	_       noCopy
	m       pb.MapOf[string, *SyncIndexedSet[E]]
	options []func(*Config)
	logger  *slog.Logger
}

// NewRegistry creates a Registry whose sets are built with options.
// WithLogger also enables Debug records for set creation and deletion.
func NewRegistry[E cmp.Ordered](options ...func(*Config)) *Registry[E] {
	cfg := newConfig(options...)
	return &Registry[E]{
		options: options,
		logger:  cfg.logger,
	}
}

// Open returns the set called name, creating it with the given sort mode if
// it does not exist yet. loaded reports whether the set already existed.
//
// If the existing set has a different sort mode, Open still returns it,
// together with an error wrapping ErrSortModeConflict.
func (r *Registry[E]) Open(name string, sorted bool) (s *SyncIndexedSet[E], loaded bool, err error) {
	s, loaded = r.m.ProcessEntry(
		name,
		func(l *pb.EntryOf[string, *SyncIndexedSet[E]]) (*pb.EntryOf[string, *SyncIndexedSet[E]], *SyncIndexedSet[E], bool) {
			if l != nil {
				return l, l.Value, true
			}
			v := NewSyncIndexedSet[E](sorted, r.setOptions(name)...)
			if r.logger != nil {
				r.logger.Debug("set created",
					slog.String("set", name),
					slog.Bool("sorted", sorted))
			}
			return &pb.EntryOf[string, *SyncIndexedSet[E]]{Value: v}, v, false
		},
	)
	if loaded && s.Sorted() != sorted {
		err = fmt.Errorf("%w: %q", ErrSortModeConflict, name)
	}
	return s, loaded, err
}

// Load returns the set called name.
func (r *Registry[E]) Load(name string) (*SyncIndexedSet[E], error) {
	s, ok := r.m.Load(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSetNotFound, name)
	}
	return s, nil
}

// Delete removes the set called name from the registry. Goroutines still
// holding the set may keep using it.
func (r *Registry[E]) Delete(name string) bool {
	_, ok := r.m.ProcessEntry(
		name,
		func(l *pb.EntryOf[string, *SyncIndexedSet[E]]) (*pb.EntryOf[string, *SyncIndexedSet[E]], *SyncIndexedSet[E], bool) {
			if l == nil {
				return nil, nil, false
			}
			return nil, l.Value, true
		},
	)
	if ok && r.logger != nil {
		r.logger.Debug("set deleted", slog.String("set", name))
	}
	return ok
}

// Names returns the names of all sets in ascending order.
func (r *Registry[E]) Names() []string {
	var names []string
	r.m.Range(func(name string, _ *SyncIndexedSet[E]) bool {
		names = append(names, name)
		return true
	})
	slices.Sort(names)
	return names
}

// Declare opens every configured set. A set that already exists keeps its
// sort mode; Declare reports every such conflict after opening the rest.
func (r *Registry[E]) Declare(sets []SetConfig) error {
	var errs []error
	for _, sc := range sets {
		if _, _, err := r.Open(sc.Name, sc.Sorted); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Registry[E]) setOptions(name string) []func(*Config) {
	opts := make([]func(*Config), 0, len(r.options)+1)
	opts = append(opts, r.options...)
	return append(opts, WithName(name))
}
