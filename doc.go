// Package rwset provides a writer-preferring reader/writer lock and an
// insertion-ordered set guarded by it.
//
// RWMutex admits any number of readers or a single writer. A writer that is
// waiting turns new readers away, so a steady stream of readers cannot keep
// it out, and waiting writers are served in the order they arrived.
//
// SyncIndexedSet wraps the sequential IndexedSet and takes the lock in the
// narrowest mode each operation needs. Registry keeps named sets for
// programs that share several of them.
//
//	var reg rwset.Registry[string]
//	tags, _, _ := reg.Open("tags", true)
//	tags.AddAll("go", "locks", "go")
//	fmt.Println(tags) // [go, locks]
//
// Locks built with NewRWMutex can report wait and hold times through
// OpenTelemetry and log slow acquisitions with log/slog.
package rwset
