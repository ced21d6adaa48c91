package eheap

import (
	"fmt"
	"unsafe"

	"github.com/ferrero222/eheap/audit"
	"github.com/ferrero222/eheap/history"
)

// Init reinitializes the package-wide singleton heap with DefaultConfig,
// equivalent to calling eheap_init() again: every live allocation is
// implicitly destroyed and the operation history is cleared.
func Init() {
	mu.Lock()
	defer mu.Unlock()
	if err := resetSingleton(DefaultConfig()); err != nil {
		panic(err) // DefaultConfig is always valid
	}
}

// InitWith reinitializes the singleton heap with cfg, returning ErrInvalidConfig
// (wrapping the underlying reason) if cfg is invalid (non-default Alignment,
// non-positive or misaligned Capacity). On error the previous singleton is
// left running untouched.
func InitWith(cfg Config) error {
	mu.Lock()
	defer mu.Unlock()
	if err := resetSingleton(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Alloc allocates requested bytes from the singleton heap, returning the
// zeroed payload and true, or (nil, false) if the request cannot be
// satisfied (zero/oversized size, or no free block large enough).
func Alloc(requested int) (unsafe.Pointer, bool) {
	mu.Lock()
	defer mu.Unlock()
	ptr, ok := current.Alloc(requested)
	record(history.OpAlloc, requested, ptr, ok)
	return ptr, ok
}

// Calloc allocates space for count elements of elemSize bytes each, failing
// closed on a count*elemSize overflow.
func Calloc(count, elemSize int) (unsafe.Pointer, bool) {
	mu.Lock()
	defer mu.Unlock()
	ptr, ok := current.Calloc(count, elemSize)
	record(history.OpCalloc, count*elemSize, ptr, ok)
	return ptr, ok
}

// Realloc resizes the block at ptr to newSize, preferring in-place growth
// into the following free block over allocate-copy-free. A nil ptr behaves
// as Alloc; newSize == 0 frees ptr and returns (nil, false).
func Realloc(ptr unsafe.Pointer, newSize int) (unsafe.Pointer, bool) {
	mu.Lock()
	defer mu.Unlock()
	newPtr, ok := current.Realloc(ptr, newSize)
	record(history.OpRealloc, newSize, newPtr, ok)
	return newPtr, ok
}

// Free releases ptr back to the singleton heap. A nil or invalid ptr, or a
// double-free, is a silent no-op, mirroring eheap_free.
func Free(ptr unsafe.Pointer) {
	mu.Lock()
	defer mu.Unlock()
	current.Free(ptr)
	record(history.OpFree, 0, ptr, true)
}

// ValidatePtr reports whether ptr could plausibly be a live payload pointer
// into the singleton heap's Region: non-nil, in bounds, Alignment-aligned.
func ValidatePtr(ptr unsafe.Pointer) bool {
	mu.Lock()
	defer mu.Unlock()
	return current.ValidatePtr(ptr)
}

// Validate walks the free list and reports whether the heap's internal
// bookkeeping is self-consistent. A false result indicates corruption.
func Validate() bool {
	mu.Lock()
	defer mu.Unlock()
	return current.Validate()
}

// GetStats returns a copy of the singleton heap's current Stats snapshot.
func GetStats() Stats {
	mu.Lock()
	defer mu.Unlock()
	return current.GetStats()
}

// GetUsagePercent returns current usage as a 0..100 integer percentage.
func GetUsagePercent() int {
	mu.Lock()
	defer mu.Unlock()
	return current.GetUsagePercent()
}

// ResetStats zeros the singleton heap's call counters without resetting the
// Region itself or the cumulative peak-usage snapshot.
func ResetStats() {
	mu.Lock()
	defer mu.Unlock()
	current.ResetStats()
}

// Fingerprint returns a non-cryptographic hash over the singleton heap's
// entire managed Region (headers, free bytes and live payloads alike), for
// correlating a Stats snapshot with the exact bytes that produced it.
func Fingerprint() uint64 {
	mu.Lock()
	defer mu.Unlock()
	return audit.Fingerprint(current.RegionBytes())
}

// History returns a copy of the recorded Alloc/Calloc/Realloc/Free calls
// against the singleton heap, oldest first, bounded to historyCapacity
// entries.
func History() []history.Entry {
	mu.Lock()
	defer mu.Unlock()
	return oplog.Entries()
}

// record appends one history.Entry for a just-completed call. Must be
// called with mu held.
func record(op history.Op, size int, ptr unsafe.Pointer, ok bool) {
	seq++
	offset := int64(-1)
	if ptr != nil {
		if off, found := current.Offset(ptr); found {
			offset = off
		}
	}
	oplog.Append(history.Entry{
		Seq:    seq,
		Op:     op,
		Size:   size,
		Offset: offset,
		Ok:     ok,
	})
}
