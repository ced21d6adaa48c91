package heap

import "unsafe"

// Free implements eheap_free: a validated pointer, double-free guard, and
// size sanity check, followed by sorted insertion and a coalesce pass.
// ptr == nil or a pointer failing ValidatePtr is a silent no-op.
func (h *Heap) Free(ptr unsafe.Pointer) {
	payloadOffset, ok := h.region.offsetOf(ptr)
	if !ok || payloadOffset < headerSize {
		return
	}

	headerOffset := headerOf(payloadOffset)
	hdr := h.region.headerAt(headerOffset)

	if h.freelistContains(headerOffset) { // double-free guard
		return
	}
	if hdr.Size() < headerSize || hdr.Size() > h.region.size() { // size sanity
		return
	}

	h.freelistInsert(headerOffset)
	h.stats.TotalFrees++
	h.recomputeStats()
}
