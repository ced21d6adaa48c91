// Package dump formats an eheap Stats snapshot as text. This is the "print
// formatting" external collaborator SPEC_FULL.md §1 calls out as outside
// THE CORE: eheap never imports dump, only dump imports eheap.
package dump

import (
	"fmt"
	"io"

	"github.com/ferrero222/eheap"
	"github.com/ferrero222/eheap/bufiox"
)

// WriteStats formats s as aligned key/value lines and writes them to w
// through a bufiox.Writer, the teacher's zero-copy-oriented buffered writer,
// rather than a bare fmt.Fprintf.
func WriteStats(w io.Writer, s eheap.Stats) error {
	bw := bufiox.NewDefaultWriter(w)

	lines := []string{
		fmt.Sprintf("total_allocations  %d", s.TotalAllocations),
		fmt.Sprintf("total_frees        %d", s.TotalFrees),
		fmt.Sprintf("alloc_failures     %d", s.AllocFailures),
		fmt.Sprintf("peak_usage         %d", s.PeakUsage),
		fmt.Sprintf("current_usage      %d", s.CurrentUsage),
		fmt.Sprintf("fragmentation      %d%%", s.Fragmentation),
		fmt.Sprintf("largest_free_block %d", s.LargestFreeBlock),
	}

	for _, line := range lines {
		if _, err := bw.WriteBinary([]byte(line + "\n")); err != nil {
			return err
		}
	}
	return bw.Flush()
}
