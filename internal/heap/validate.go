package heap

import "unsafe"

// ValidatePtr reports whether ptr could plausibly be a live payload pointer
// into this Heap's Region: non-nil, in bounds, and Alignment-aligned. It
// does not confirm ptr is actually live; that's the job of the double-free
// scan in Free and the size sanity check alongside it.
func (h *Heap) ValidatePtr(ptr unsafe.Pointer) bool {
	_, ok := h.region.offsetOf(ptr)
	return ok
}

// Validate walks the free list and reports true iff every node lies fully
// within the Region, nodes are strictly address-ordered, and the free bytes
// plus current usage account for the entire capacity. A false result here
// indicates heap corruption, not a recoverable runtime condition.
func (h *Heap) Validate() bool {
	r := h.region
	var prev uint32
	havePrev := false
	var totalFree uint32

	for cursor := h.freeHead; cursor != noLink; cursor = r.headerAt(cursor).Next() {
		hdr := r.headerAt(cursor)
		if cursor+hdr.Size() > r.size() {
			return false
		}
		if havePrev && prev >= cursor {
			return false
		}
		totalFree += hdr.Size()
		prev = cursor
		havePrev = true
	}

	return totalFree+h.stats.CurrentUsage == r.size()
}

// Offset reports ptr's byte offset within the Region, for callers (such as
// the history package's Entry.Offset) that want to record which block a
// call touched without reaching into Region internals themselves.
func (h *Heap) Offset(ptr unsafe.Pointer) (int64, bool) {
	off, ok := h.region.offsetOf(ptr)
	if !ok {
		return -1, false
	}
	return int64(off), true
}

// RegionBytes exposes a read-only view of the full Region for the audit
// package's Fingerprint, which needs to see the literal managed bytes
// (including currently-allocated payloads) but must never mutate them or
// retain the slice past the caller's critical section.
func (h *Heap) RegionBytes() []byte {
	return h.region.buf
}
