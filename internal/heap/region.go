// Package heap implements the core of eheap: a fixed-capacity, single-region
// allocator built on an in-place singly-linked free list. It is the engine
// behind the public github.com/ferrero222/eheap facade, kept independently
// constructible (not a singleton) so tests can exercise many instances side
// by side.
package heap

import (
	"fmt"
	"unsafe"
)

// Alignment every block address (and therefore every payload) is aligned to.
const Alignment = 8

// DefaultCapacity is the size of the Region when no explicit capacity is
// requested, matching the original eheap's EHEAP_SIZE.
const DefaultCapacity = 2048

// headerSize is sizeof(blockHeader): one uint32 for size, one for the
// free-list link, padded to 16 bytes. It is a compile-time constant and,
// deliberately, a multiple of Alignment so payloads stay aligned without
// extra padding. recomputeStats divides the capacity by it for the
// fragmentation proxy: with 16, two free blocks in a 2048-byte heap already
// report a nonzero fragmentation (2*100/128 = 1).
const headerSize = 16

// noLink is the free-list "null" sentinel: an offset that can never be a
// valid in-region block address because it would leave no room for a header.
const noLink = ^uint32(0)

// AlignUp rounds n up to the next multiple of Alignment.
func AlignUp(n int) int {
	return (n + Alignment - 1) &^ (Alignment - 1)
}

// Region is the contiguous byte buffer backing a Heap. All headers and
// payloads are views into region.buf at aligned offsets; region is the only
// type in this package allowed to reinterpret bytes as a blockHeader, per
// the narrow raw-reinterpretation surface called for in the design notes.
type Region struct {
	buf   []byte
	start unsafe.Pointer
}

func newRegion(buf []byte) *Region {
	if len(buf) == 0 {
		panic("heap: empty region buffer")
	}
	return &Region{buf: buf, start: unsafe.Pointer(&buf[0])}
}

// size is the Region's total capacity in bytes.
func (r *Region) size() uint32 { return uint32(len(r.buf)) }

// headerAt returns the header view at the given offset. Callers must have
// already established that offset+headerSize <= len(r.buf).
func (r *Region) headerAt(offset uint32) *blockHeader {
	return (*blockHeader)(unsafe.Add(r.start, offset))
}

// payloadOf returns the payload offset for a block header at headerOffset.
func payloadOf(headerOffset uint32) uint32 { return headerOffset + headerSize }

// headerOf returns the header offset for a payload at payloadOffset. The
// caller is responsible for ensuring payloadOffset >= headerSize.
func headerOf(payloadOffset uint32) uint32 { return payloadOffset - headerSize }

// payloadPointer turns a payload offset into the unsafe.Pointer handed back
// to callers of Alloc/Calloc/Realloc.
func (r *Region) payloadPointer(offset uint32) unsafe.Pointer {
	return unsafe.Add(r.start, offset)
}

// offsetOf is the sole ptr -> offset conversion primitive. It reports ok=false
// for any pointer that isn't Alignment-aligned and inside [start, start+size),
// mirroring eheap_validate_ptr's bounds+alignment check exactly.
func (r *Region) offsetOf(ptr unsafe.Pointer) (offset uint32, ok bool) {
	if ptr == nil {
		return 0, false
	}
	delta := uintptr(ptr) - uintptr(r.start)
	if delta >= uintptr(len(r.buf)) {
		return 0, false
	}
	if delta%Alignment != 0 {
		return 0, false
	}
	return uint32(delta), true
}

// bytesAt returns the live slice view of region memory starting at offset,
// for length n. Used for zeroing payloads.
func (r *Region) bytesAt(offset, n uint32) []byte {
	return r.buf[offset : offset+n]
}

// clearBytes zero-fills b in place.
func clearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func (r *Region) String() string {
	return fmt.Sprintf("Region{cap=%d}", len(r.buf))
}

// blockHeader is the uniform prefix of every block, free or allocated.
// size is the block's total size including this header. next is only
// meaningful while the block is free: it is the header offset of the next
// free block in address order, or noLink.
type blockHeader struct {
	size uint32
	next uint32
	_    [headerSize - 8]byte // pad to headerSize
}

func (h *blockHeader) Size() uint32     { return h.size }
func (h *blockHeader) SetSize(s uint32) { h.size = s }
func (h *blockHeader) Next() uint32     { return h.next }
func (h *blockHeader) SetNext(n uint32) { h.next = n }
