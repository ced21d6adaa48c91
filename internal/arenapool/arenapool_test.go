package arenapool

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetReturnsZeroedSlabOfRequestedCapacity(t *testing.T) {
	buf := Get(2048)
	require.Len(t, buf, 2048)
	for _, b := range buf {
		require.Zero(t, b)
	}
	Put(2048, buf)
}

func TestGetReusesPutBackSlab(t *testing.T) {
	a := Get(512)
	a[0] = 0xAB
	Put(512, a)

	b := Get(512)
	require.Zero(t, b[0]) // reused slab is re-zeroed on Get
	Put(512, b)
}

func TestPutIgnoresForeignBuffer(t *testing.T) {
	foreign := make([]byte, 512+footerLen)
	// no magic footer written: Put must drop it instead of pooling it.
	Put(512, foreign)

	got := Get(512)
	require.NotSame(t, &foreign[0], &got[0])
	Put(512, got)
}

func TestPutIgnoresDoublePut(t *testing.T) {
	buf := Get(256)
	Put(256, buf)

	full := buf[:256+footerLen]
	require.Zero(t, binary.LittleEndian.Uint64(full[256:])) // magic cleared by first Put
	Put(256, buf)                                            // second Put: magic mismatch, dropped
}
