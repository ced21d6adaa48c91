package heap

// Stats mirrors eheap_stats_t from the original C allocator field for field.
type Stats struct {
	TotalAllocations uint64
	TotalFrees       uint64
	AllocFailures    uint64
	PeakUsage        uint32
	CurrentUsage     uint32
	Fragmentation    uint32
	LargestFreeBlock uint32
}

// recomputeStats recomputes every derived field (current usage, largest
// free block, peak usage, fragmentation) from a fresh walk of the free
// list. Recomputing rather than tracking incrementally avoids drift across
// the many split/merge/realloc-in-place edge cases, per the design notes.
func (h *Heap) recomputeStats() {
	totalFree, largest, freeBlocks := h.freelistStats()

	h.stats.CurrentUsage = h.region.size() - totalFree
	h.stats.LargestFreeBlock = largest

	if h.stats.CurrentUsage > h.stats.PeakUsage {
		h.stats.PeakUsage = h.stats.CurrentUsage
	}

	// Crude density proxy, not a true fragmentation ratio: percentage of
	// free-block count against the theoretical max node count for this
	// capacity. Preserved verbatim for compatibility with existing
	// observers of the original formula (see DESIGN.md open question).
	if freeBlocks > 1 {
		maxNodes := h.region.size() / headerSize
		if maxNodes == 0 {
			maxNodes = 1
		}
		h.stats.Fragmentation = uint32(freeBlocks) * 100 / maxNodes
		if h.stats.Fragmentation > 100 {
			h.stats.Fragmentation = 100
		}
	} else {
		h.stats.Fragmentation = 0
	}
}

// GetUsagePercent returns current usage as a 0..100 integer percentage.
func (h *Heap) GetUsagePercent() int {
	return int(uint64(h.stats.CurrentUsage) * 100 / uint64(h.region.size()))
}

// GetStats returns a copy of the current Stats snapshot.
func (h *Heap) GetStats() Stats {
	return h.stats
}

// ResetStats zeros the counters only (total_allocations, total_frees,
// alloc_failures). Cumulative snapshots such as peak_usage are preserved.
func (h *Heap) ResetStats() {
	h.stats.TotalAllocations = 0
	h.stats.TotalFrees = 0
	h.stats.AllocFailures = 0
}
