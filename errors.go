package rwset

import "errors"

var (
	ErrIndexOutOfRange   = errors.New("rwset: index out of range")
	ErrNotSorted         = errors.New("rwset: set does not maintain a sort order")
	ErrSetNotFound       = errors.New("rwset: set not found")
	ErrSortModeConflict  = errors.New("rwset: set exists with a different sort mode")
	ErrUnlockOfUnlocked  = errors.New("rwset: Unlock of unlocked RWMutex")
	ErrRUnlockOfUnlocked = errors.New("rwset: RUnlock of unlocked RWMutex")
)
