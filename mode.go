package rwset

// Mode is the access mode a lock is taken in.
type Mode int

const (
	ReadMode Mode = iota
	WriteMode
)

func (m Mode) String() string {
	switch m {
	case ReadMode:
		return "read"
	case WriteMode:
		return "write"
	default:
		return "unknown"
	}
}
