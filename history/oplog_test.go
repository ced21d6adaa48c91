package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogOrderingAndBoundedCapacity(t *testing.T) {
	l := New(4)
	for i := 0; i < 10; i++ {
		l.Append(Entry{Seq: uint64(i), Op: OpAlloc, Size: i, Offset: int64(i), Ok: true})
	}

	entries := l.Entries()
	require.Len(t, entries, 4)
	for i, e := range entries {
		assert.EqualValues(t, 6+i, e.Seq, "oldest entries should have been evicted")
	}
}

func TestLogBelowCapacity(t *testing.T) {
	l := New(8)
	l.Append(Entry{Seq: 1, Op: OpFree})
	l.Append(Entry{Seq: 2, Op: OpAlloc})

	entries := l.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, uint64(1), entries[0].Seq)
	assert.Equal(t, uint64(2), entries[1].Seq)
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "alloc", OpAlloc.String())
	assert.Equal(t, "calloc", OpCalloc.String())
	assert.Equal(t, "realloc", OpRealloc.String())
	assert.Equal(t, "free", OpFree.String())
	assert.Equal(t, "unknown", Op(99).String())
}
