package dump

import (
	"bytes"
	"testing"

	"github.com/ferrero222/eheap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteStats(t *testing.T) {
	var buf bytes.Buffer
	s := eheap.Stats{
		TotalAllocations: 3,
		TotalFrees:       1,
		CurrentUsage:     128,
		PeakUsage:        256,
		Fragmentation:    12,
		LargestFreeBlock: 900,
	}

	require.NoError(t, WriteStats(&buf, s))

	out := buf.String()
	assert.Contains(t, out, "total_allocations  3")
	assert.Contains(t, out, "current_usage      128")
	assert.Contains(t, out, "fragmentation      12%")
}
