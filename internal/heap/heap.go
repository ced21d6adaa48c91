package heap

import "github.com/ferrero222/eheap/internal/arenapool"

// Heap is one independently constructible allocator instance: a Region, its
// free list, and its Stats. It is not a singleton — the public eheap package
// wraps exactly one Heap value behind a lock and a package-level default,
// but nothing here prevents a test from constructing several.
type Heap struct {
	cfg      Config
	region   *Region
	freeHead uint32
	stats    Stats
}

// New constructs a Heap per cfg, equivalent to eheap_init(): the whole
// Region starts out as a single free block covering [0, cfg.Capacity).
func New(cfg Config) (*Heap, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	h := &Heap{cfg: cfg}
	h.region = newRegion(arenapool.Get(cfg.Capacity))
	h.resetLocked()
	return h, nil
}

// Reset reinitializes the Heap in place: it destroys all live allocations
// implicitly and zeros the counters and the peak-usage snapshot, exactly
// like calling eheap_init() again. It is idempotent.
func (h *Heap) Reset() {
	h.resetLocked()
}

func (h *Heap) resetLocked() {
	buf := h.region.buf
	for i := range buf {
		buf[i] = 0
	}
	root := h.region.headerAt(0)
	root.SetSize(h.region.size())
	root.SetNext(noLink)
	h.freeHead = 0
	h.stats = Stats{}
	h.recomputeStats()
}

// Close returns the Region's backing slab to the arena pool. The Heap must
// not be used afterward.
func (h *Heap) Close() {
	arenapool.Put(h.cfg.Capacity, h.region.buf)
	h.region = nil
}

// Capacity returns the configured Region size.
func (h *Heap) Capacity() int { return h.cfg.Capacity }
