package heap

// The free list is a singly-linked chain of blockHeaders threaded through
// the Region itself, kept in strictly increasing address (offset) order.
// h.freeHead is the header offset of the first free block, or noLink if the
// heap is fully allocated.

// freelistInsert splices the block at offset into the free list at its
// sorted position, then runs a coalesce pass from the head of the list.
// The block's header must already have its size set; next is overwritten.
func (h *Heap) freelistInsert(offset uint32) {
	r := h.region

	if h.freeHead == noLink || offset < h.freeHead {
		r.headerAt(offset).SetNext(h.freeHead)
		h.freeHead = offset
		h.freelistCoalesce()
		return
	}

	cursor := h.freeHead
	for {
		cur := r.headerAt(cursor)
		nxt := cur.Next()
		if nxt == noLink || nxt > offset {
			r.headerAt(offset).SetNext(nxt)
			cur.SetNext(offset)
			break
		}
		cursor = nxt
	}
	h.freelistCoalesce()
}

// freelistCoalesce runs a single pass over the free list, merging any node
// that is immediately followed in memory by its list successor. It retests
// the same node after a merge instead of advancing, so a run of three or
// more physically adjacent blocks collapses into one node per pass.
func (h *Heap) freelistCoalesce() {
	r := h.region
	cursor := h.freeHead
	for cursor != noLink {
		cur := r.headerAt(cursor)
		next := cur.Next()
		if next == noLink {
			return
		}
		if cursor+cur.Size() == next {
			merged := r.headerAt(next)
			cur.SetSize(cur.Size() + merged.Size())
			cur.SetNext(merged.Next())
			continue // retest cursor: it may now abut its new successor
		}
		cursor = next
	}
}

// freelistRemove unlinks the node at offset from the free list. It reports
// false if offset is not currently in the list.
func (h *Heap) freelistRemove(offset uint32) bool {
	r := h.region
	if h.freeHead == offset {
		h.freeHead = r.headerAt(offset).Next()
		return true
	}
	cursor := h.freeHead
	for cursor != noLink {
		cur := r.headerAt(cursor)
		next := cur.Next()
		if next == offset {
			cur.SetNext(r.headerAt(offset).Next())
			return true
		}
		cursor = next
	}
	return false
}

// freelistContains reports whether offset names a node currently on the
// free list. Used by Free's double-free guard.
func (h *Heap) freelistContains(offset uint32) bool {
	r := h.region
	for cursor := h.freeHead; cursor != noLink; cursor = r.headerAt(cursor).Next() {
		if cursor == offset {
			return true
		}
	}
	return false
}

// freelistSuccessorOf reports the free-list node, if any, whose address
// equals the physical end of the block at offset+size (i.e. the block that
// immediately follows it in memory). Used by in-place realloc growth.
func (h *Heap) freelistSuccessorOf(blockEnd uint32) (uint32, bool) {
	r := h.region
	for cursor := h.freeHead; cursor != noLink; cursor = r.headerAt(cursor).Next() {
		if cursor == blockEnd {
			return cursor, true
		}
	}
	return 0, false
}

// freelistStats walks the list once, returning the total free bytes, the
// largest single free block, and the number of free blocks.
func (h *Heap) freelistStats() (totalFree, largest uint32, count int) {
	r := h.region
	for cursor := h.freeHead; cursor != noLink; cursor = r.headerAt(cursor).Next() {
		sz := r.headerAt(cursor).Size()
		totalFree += sz
		if sz > largest {
			largest = sz
		}
		count++
	}
	return
}
