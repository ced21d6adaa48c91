package eheap

import (
	"sync"
	"testing"

	"github.com/ferrero222/eheap/internal/workerpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentAllocFreeStress fans out concurrent Alloc/Free/Realloc
// traffic against the singleton heap through the stress-harness worker pool
// and checks Validate still holds afterward (SPEC_FULL.md scenario 12).
func TestConcurrentAllocFreeStress(t *testing.T) {
	require.NoError(t, InitWith(Config{Capacity: 65536, Alignment: 8}))
	defer Init()

	p := workerpool.New("TestConcurrentAllocFreeStress", nil)
	const n = 200
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		size := 8 + (i%16)*8
		p.Go(func() {
			defer wg.Done()
			ptr, ok := Alloc(size)
			if !ok {
				return
			}
			grown, ok := Realloc(ptr, size*2)
			if ok {
				ptr = grown
			}
			Free(ptr)
		})
	}
	wg.Wait()

	assert.True(t, Validate())
	assert.Zero(t, GetUsagePercent())
}
