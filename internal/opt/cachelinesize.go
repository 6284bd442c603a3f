package opt

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// CacheLineSize_ is the padding unit used to keep hot counters of
// different goroutines on separate cache lines.
const CacheLineSize_ = unsafe.Sizeof(cpu.CacheLinePad{})

// CounterPad_ fills the rest of a cache line after a single uint64.
type CounterPad_ [(CacheLineSize_ - 8%CacheLineSize_) % CacheLineSize_]byte
