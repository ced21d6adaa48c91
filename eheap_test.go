package eheap

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	m.Run()
}

func TestAllocFreeRoundTrip(t *testing.T) {
	Init()

	ptr, ok := Alloc(64)
	require.True(t, ok)
	require.NotNil(t, ptr)
	assert.True(t, ValidatePtr(ptr))

	Free(ptr)
	assert.True(t, Validate())
}

func TestInitWithCustomCapacity(t *testing.T) {
	require.NoError(t, InitWith(Config{Capacity: 4096, Alignment: 8}))
	defer Init()

	assert.Equal(t, 0, GetUsagePercent())
	ptr, ok := Alloc(1024)
	require.True(t, ok)
	assert.NotZero(t, GetUsagePercent())
	Free(ptr)
}

func TestInitWithRejectsInvalidConfig(t *testing.T) {
	err := InitWith(Config{Capacity: 3, Alignment: 8})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	// the previous singleton must still be usable
	ptr, ok := Alloc(8)
	require.True(t, ok)
	Free(ptr)
}

func TestCallocZeroesMemory(t *testing.T) {
	Init()

	ptr, ok := Calloc(16, 4)
	require.True(t, ok)
	buf := unsafe.Slice((*byte)(ptr), 64)
	for _, b := range buf {
		assert.Zero(t, b)
	}
	Free(ptr)
}

func TestReallocGrows(t *testing.T) {
	Init()

	ptr, ok := Alloc(32)
	require.True(t, ok)
	buf := unsafe.Slice((*byte)(ptr), 32)
	for i := range buf {
		buf[i] = byte(i)
	}

	grown, ok := Realloc(ptr, 256)
	require.True(t, ok)
	grownBuf := unsafe.Slice((*byte)(grown), 32)
	for i := range grownBuf {
		assert.Equal(t, byte(i), grownBuf[i])
	}
	Free(grown)
}

func TestStatsReflectActivity(t *testing.T) {
	Init()

	ptr, ok := Alloc(128)
	require.True(t, ok)
	s := GetStats()
	assert.Equal(t, uint64(1), s.TotalAllocations)
	assert.NotZero(t, s.CurrentUsage)

	Free(ptr)
	s = GetStats()
	assert.Equal(t, uint64(1), s.TotalFrees)

	ResetStats()
	s = GetStats()
	assert.Zero(t, s.TotalAllocations)
	assert.Zero(t, s.TotalFrees)
}

func TestFingerprintChangesAcrossMutation(t *testing.T) {
	Init()

	before := Fingerprint()
	ptr, ok := Alloc(32)
	require.True(t, ok)
	buf := unsafe.Slice((*byte)(ptr), 32)
	buf[0] = 0xAB

	after := Fingerprint()
	assert.NotEqual(t, before, after)
	Free(ptr)
}

func TestHistoryRecordsCallsInOrder(t *testing.T) {
	Init()

	ptr, ok := Alloc(16)
	require.True(t, ok)
	Free(ptr)

	entries := History()
	require.Len(t, entries, 2)
	assert.Equal(t, uint64(1), entries[0].Seq)
	assert.Equal(t, uint64(2), entries[1].Seq)
	assert.True(t, entries[0].Ok)
}

func TestHistoryBoundedCapacity(t *testing.T) {
	Init()

	for i := 0; i < historyCapacity+10; i++ {
		ptr, ok := Alloc(8)
		if ok {
			Free(ptr)
		}
	}
	entries := History()
	assert.LessOrEqual(t, len(entries), historyCapacity)
}
