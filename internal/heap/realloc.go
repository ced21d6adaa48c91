package heap

import "unsafe"

// Realloc implements eheap_realloc: a nil ptr behaves as Alloc, newSize==0
// frees and returns nil, a request that already fits returns ptr unchanged,
// otherwise an in-place growth into the immediately following free block is
// attempted before falling back to allocate-copy-free.
func (h *Heap) Realloc(ptr unsafe.Pointer, newSize int) (unsafe.Pointer, bool) {
	if ptr == nil {
		return h.Alloc(newSize)
	}
	if newSize == 0 {
		h.Free(ptr)
		return nil, false
	}

	payloadOffset, ok := h.region.offsetOf(ptr)
	if !ok || payloadOffset < headerSize {
		return nil, false
	}

	headerOffset := headerOf(payloadOffset)
	oldHeader := h.region.headerAt(headerOffset)
	oldPayloadSize := oldHeader.Size() - headerSize

	newAligned := uint32(AlignUp(newSize))
	if newAligned <= oldPayloadSize {
		return ptr, true
	}

	if grown := h.tryGrowInPlace(headerOffset, oldHeader, oldPayloadSize, newAligned); grown {
		return ptr, true
	}

	newPtr, ok := h.Alloc(newSize)
	if !ok {
		return nil, false
	}
	newPayloadOffset, _ := h.region.offsetOf(newPtr)
	copy(h.region.buf[newPayloadOffset:newPayloadOffset+oldPayloadSize],
		h.region.buf[payloadOffset:payloadOffset+oldPayloadSize])
	h.Free(ptr)
	return newPtr, true
}

// tryGrowInPlace absorbs all or part of the block's physical successor, if
// that successor is free and large enough to cover requiredExtra bytes.
func (h *Heap) tryGrowInPlace(headerOffset uint32, oldHeader *blockHeader, oldPayloadSize, newAligned uint32) bool {
	requiredExtra := newAligned - oldPayloadSize
	blockEnd := headerOffset + oldHeader.Size()

	successorOffset, found := h.freelistSuccessorOf(blockEnd)
	if !found {
		return false
	}
	successor := h.region.headerAt(successorOffset)
	if successor.Size() < requiredExtra {
		return false
	}

	h.freelistRemove(successorOffset)
	leftover := successor.Size() - requiredExtra

	if leftover < headerSize+Alignment {
		oldHeader.SetSize(oldHeader.Size() + successor.Size()) // absorb whole successor
	} else {
		oldHeader.SetSize(oldHeader.Size() + requiredExtra)
		remainderOffset := successorOffset + requiredExtra
		remainder := h.region.headerAt(remainderOffset)
		remainder.SetSize(leftover)
		remainder.SetNext(noLink)
		h.freelistInsert(remainderOffset)
	}

	h.recomputeStats()
	return true
}
