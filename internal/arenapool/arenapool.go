/*
 * Copyright 2024 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package arenapool recycles the fixed-size byte slabs that back an
// eheap Region, so repeatedly constructing and closing Heap values (typical
// in tests, and in embedders that reinitialize on a fault) doesn't churn the
// allocator with fresh make([]byte, capacity) calls. It is adapted from the
// cloudwego/gopkg cache/mempool slab pool: a sync.Pool per size class plus a
// trailing magic footer that detects a slab being returned twice, or a slab
// this package never handed out.
package arenapool

import (
	"encoding/binary"
	"sync"
)

// footerLen is the trailing bytes reserved on every slab to carry the magic.
const footerLen = 8

// magic marks a slab as currently checked out of this package's pools.
const magic uint64 = 0xE4EA90BADF00D000

var (
	mu    sync.Mutex
	pools = map[int]*sync.Pool{}
)

func poolFor(capacity int) *sync.Pool {
	mu.Lock()
	defer mu.Unlock()
	p, ok := pools[capacity]
	if !ok {
		p = &sync.Pool{}
		pools[capacity] = p
	}
	return p
}

// Get returns a zeroed slab of exactly `capacity` usable bytes, reusing a
// previously Put-back slab of the same capacity when one is available.
func Get(capacity int) []byte {
	p := poolFor(capacity)
	total := capacity + footerLen

	var buf []byte
	if v := p.Get(); v != nil {
		buf = v.([]byte)
	} else {
		buf = make([]byte, total)
	}

	for i := range buf[:capacity] {
		buf[i] = 0
	}
	binary.LittleEndian.PutUint64(buf[capacity:total], magic)
	return buf[:capacity]
}

// Put returns a slab obtained from Get back to its pool. A slab whose
// trailing magic doesn't match (already Put, or never obtained from this
// package) is silently dropped rather than pooled, the same defensive
// stance mempool.Free takes toward foreign buffers.
func Put(capacity int, buf []byte) {
	if cap(buf) < capacity+footerLen {
		return
	}
	full := buf[:capacity+footerLen]
	if binary.LittleEndian.Uint64(full[capacity:]) != magic {
		return
	}
	binary.LittleEndian.PutUint64(full[capacity:], 0) // clear to catch double-Put
	poolFor(capacity).Put(full)
}
