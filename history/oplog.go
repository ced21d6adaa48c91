// Package history implements the bounded operation log an embedder can use
// to correlate a Stats/Fingerprint snapshot with the sequence of allocator
// calls that produced it. It is an audit trail, not allocation metadata
// returned to a caller of Alloc — eheap.History is a separate introspection
// call (see SPEC_FULL.md §4.12).
package history

import "github.com/ferrero222/eheap/container/ring"

// Op names the public allocator call an Entry records.
type Op int

const (
	OpAlloc Op = iota
	OpCalloc
	OpRealloc
	OpFree
)

func (o Op) String() string {
	switch o {
	case OpAlloc:
		return "alloc"
	case OpCalloc:
		return "calloc"
	case OpRealloc:
		return "realloc"
	case OpFree:
		return "free"
	default:
		return "unknown"
	}
}

// Entry is one recorded call. Offset is the payload offset within the Region
// of the pointer the call returned (or, for Free, was given), or -1 when the call failed before a block was identified (e.g. an
// oversized Alloc, or Free of an invalid pointer).
type Entry struct {
	Seq    uint64
	Op     Op
	Size   int
	Offset int64
	Ok     bool
}

// Log is a fixed-capacity, oldest-overwritten ring of Entry values. It is
// not safe for concurrent use on its own: eheap appends to it from inside
// its own critical section, the same way Stats is only ever read or written
// under that lock.
type Log struct {
	r      *ring.Ring[Entry]
	next   int
	filled int
}

// New creates a Log holding up to capacity entries.
func New(capacity int) *Log {
	if capacity <= 0 {
		capacity = 1
	}
	return &Log{r: ring.NewFromSlice(make([]Entry, capacity))}
}

// Append records e, overwriting the oldest entry once the log is full.
func (l *Log) Append(e Entry) {
	item, ok := l.r.Get(l.next)
	if !ok {
		return
	}
	*item.Pointer() = e
	l.next = (l.next + 1) % l.r.Len()
	if l.filled < l.r.Len() {
		l.filled++
	}
}

// Entries returns a copy of the log's current contents, oldest first.
func (l *Log) Entries() []Entry {
	out := make([]Entry, 0, l.filled)
	if l.filled < l.r.Len() {
		for i := 0; i < l.filled; i++ {
			item, _ := l.r.Get(i)
			out = append(out, item.Value())
		}
		return out
	}
	for i := 0; i < l.r.Len(); i++ {
		idx := (l.next + i) % l.r.Len()
		item, _ := l.r.Get(idx)
		out = append(out, item.Value())
	}
	return out
}

// Len returns the number of entries currently stored (<= capacity).
func (l *Log) Len() int { return l.filled }
