package heap

import "unsafe"

// Alloc implements eheap_alloc: best-fit selection with split-on-allocate.
// It returns (nil, false) for a zero or oversized request, or when no free
// block is large enough — both cases increment AllocFailures.
func (h *Heap) Alloc(requested int) (unsafe.Pointer, bool) {
	if requested <= 0 || requested > h.maxPayload() {
		h.stats.AllocFailures++
		return nil, false
	}

	size := uint32(AlignUp(requested))
	total := size + headerSize

	offset, found := h.bestFit(total)
	if !found {
		h.stats.AllocFailures++
		return nil, false
	}

	r := h.region
	node := r.headerAt(offset)
	nodeSize := node.Size()

	h.freelistRemove(offset)

	if nodeSize >= total+headerSize+Alignment {
		remainderOffset := offset + total
		remainder := r.headerAt(remainderOffset)
		remainder.SetSize(nodeSize - total)
		remainder.SetNext(noLink)
		h.freelistInsert(remainderOffset)
		node.SetSize(total)
	} else {
		node.SetSize(nodeSize) // whole block consumed, size unchanged
	}

	payloadOffset := payloadOf(offset)
	clearBytes(r.bytesAt(payloadOffset, size))

	h.stats.TotalAllocations++
	h.recomputeStats()
	return r.payloadPointer(payloadOffset), true
}

// Calloc computes total = count*elemSize, failing closed on overflow (an
// explicit decision on an open question the original C source left
// unchecked — see DESIGN.md), then defers to Alloc. Alloc already zeroes
// the payload, so no second fill is needed.
func (h *Heap) Calloc(count, elemSize int) (unsafe.Pointer, bool) {
	if count < 0 || elemSize < 0 {
		h.stats.AllocFailures++
		return nil, false
	}
	if count == 0 || elemSize == 0 {
		h.stats.AllocFailures++
		return nil, false
	}
	total := count * elemSize
	if total/count != elemSize { // overflow check
		h.stats.AllocFailures++
		return nil, false
	}
	return h.Alloc(total)
}

// maxPayload is the largest payload size that could ever fit: capacity minus
// one header's worth of overhead.
func (h *Heap) maxPayload() int {
	return int(h.region.size()) - headerSize
}

// bestFit scans the free list for the smallest node whose size is >= total,
// breaking ties toward the lowest address (the first such node encountered,
// since the list is kept in address order).
func (h *Heap) bestFit(total uint32) (offset uint32, found bool) {
	r := h.region
	bestSize := ^uint32(0)
	var best uint32
	ok := false

	for cursor := h.freeHead; cursor != noLink; cursor = r.headerAt(cursor).Next() {
		sz := r.headerAt(cursor).Size()
		if sz >= total && sz < bestSize {
			best = cursor
			bestSize = sz
			ok = true
		}
	}
	return best, ok
}
