// Package eheap implements a fixed-capacity, embedded-style general-purpose
// allocator operating entirely inside a single statically-reserved byte
// region. It provides Alloc, Calloc, Realloc and Free, together with
// introspection: GetStats, GetUsagePercent, Validate and ValidatePtr.
//
// The package exposes a process-wide singleton heap (Init/Alloc/Free/...)
// for drop-in use, and an explicit-config entry point (InitWith) for
// embedders that want a non-default Capacity. The underlying engine,
// internal/heap.Heap, is independently constructible and is what tests use
// to exercise more than one heap at a time.
//
// eheap targets constrained environments where dynamic memory must be
// bounded, deterministic, and audit-friendly: every public mutating
// operation runs inside a single critical section, and Fingerprint/History
// give an embedder a way to correlate a Stats snapshot with the exact bytes
// and operation sequence that produced it.
package eheap

import (
	"sync"

	"github.com/ferrero222/eheap/history"
	"github.com/ferrero222/eheap/internal/heap"
)

// Config controls the size of the managed Region. See heap.Config.
type Config = heap.Config

// Stats mirrors eheap_stats_t from the original C allocator.
type Stats = heap.Stats

// DefaultConfig returns the spec's default 2048-byte, 8-byte-aligned heap.
func DefaultConfig() Config { return heap.DefaultConfig() }

const historyCapacity = 64

var (
	mu      sync.Mutex
	current *heap.Heap
	oplog   *history.Log
	seq     uint64
)

func init() {
	if err := resetSingleton(heap.DefaultConfig()); err != nil {
		panic(err) // DefaultConfig is always valid; a failure here is a bug in heap.validate
	}
}

// resetSingleton swaps in a freshly constructed Heap for cfg, closing the
// previous one. It leaves the singleton untouched and returns an error if
// cfg fails heap.New's validation, rather than leaving the package half
// re-initialized.
func resetSingleton(cfg Config) error {
	h, err := heap.New(cfg)
	if err != nil {
		return err
	}
	if current != nil {
		current.Close()
	}
	current = h
	oplog = history.New(historyCapacity)
	seq = 0
	return nil
}
