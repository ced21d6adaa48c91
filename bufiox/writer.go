// Copyright 2024 CloudWeGo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package bufiox provides a buffered, zero-copy-oriented io.Writer wrapper.
// The teacher's bufiox also had a matching buffered Reader, a large-write
// bypass straight to the underlying io.Writer via net.Buffers, and
// chunk-per-grow accounting for writes that can run to megabytes, all sized
// for RPC payloads. The one caller here, github.com/ferrero222/eheap/dump,
// only ever accumulates a handful of short aligned stat lines before a
// single Flush, so this trims to one growable mcache-pooled chunk reused
// across Malloc/WriteBinary calls and released back to mcache once flushed.
package bufiox

import (
	"errors"
	"io"

	"github.com/bytedance/gopkg/lang/mcache"
)

// defaultBufSize is the initial chunk size: comfortably larger than the
// handful of stat lines dump.WriteStats produces in one Flush cycle.
const defaultBufSize = 256

var errNegativeCount = errors.New("bufiox: negative count")

// Writer is a buffer IO interface, which provides a user-space zero-copy method to reduce memory allocation and copy overhead.
type Writer interface {
	// Malloc returns a shallow copy of the write buffer with length n,
	// otherwise returns an error if it's unable to get n bytes from the write buffer.
	// Must ensure that the data written by the user to buf can be flushed to the underlying io.Writer.
	//
	// Caller cannot write data to the returned buf after calling Flush.
	Malloc(n int) (buf []byte, err error)

	// WriteBinary writes bs to the buffer, it may be a zero copy write.
	// MUST ensure that bs is not being concurrently written before calling Flush.
	// It returns err if n < len(bs), while n is the number of bytes written.
	WriteBinary(bs []byte) (n int, err error)

	// WrittenLen returns the total length of the buffer written.
	// Malloc / WriteBinary will increase the length. When the Flush function is called, WrittenLen is set to 0.
	WrittenLen() (length int)

	// Flush writes any malloc data to the underlying io.Writer, and reset WrittenLen to zero.
	Flush() (err error)
}

var _ Writer = &DefaultWriter{}

// DefaultWriter accumulates writes into a single chunk pulled from mcache,
// growing it in place as needed, and hands the whole chunk to wd in one
// Write call per Flush.
type DefaultWriter struct {
	buf []byte

	wd  io.Writer
	err error
}

// NewDefaultWriter returns a new DefaultWriter that writes to w.
func NewDefaultWriter(wd io.Writer) *DefaultWriter {
	return &DefaultWriter{wd: wd}
}

// acquire ensures at least n more bytes are available past len(w.buf),
// growing into a new, larger mcache chunk and copying the old content over
// if the current one is too small.
func (w *DefaultWriter) acquire(n int) {
	if len(w.buf)+n <= cap(w.buf) {
		return
	}

	var ncap int
	for ncap = defaultBufSize; ncap < len(w.buf)+n; ncap *= 2 {
	}
	grown := mcache.Malloc(0, ncap)
	grown = append(grown, w.buf...)
	if w.buf != nil {
		mcache.Free(w.buf)
	}
	w.buf = grown
}

func (w *DefaultWriter) Malloc(n int) (buf []byte, err error) {
	if w.err != nil {
		err = w.err
		return
	}
	if n < 0 {
		err = errNegativeCount
		return
	}
	w.acquire(n)
	buf = w.buf[len(w.buf) : len(w.buf)+n]
	w.buf = w.buf[:len(w.buf)+n]
	return
}

func (w *DefaultWriter) WriteBinary(bs []byte) (n int, err error) {
	if w.err != nil {
		err = w.err
		return
	}
	w.acquire(len(bs))
	n = copy(w.buf[len(w.buf):cap(w.buf)], bs)
	w.buf = w.buf[:len(w.buf)+n]
	return
}

func (w *DefaultWriter) WrittenLen() int {
	return len(w.buf)
}

func (w *DefaultWriter) Flush() (err error) {
	if w.err != nil {
		err = w.err
		return
	}
	if len(w.buf) == 0 {
		return nil
	}
	_, err = w.wd.Write(w.buf)
	if err != nil {
		w.err = err
	}
	mcache.Free(w.buf)
	w.buf = nil
	return err
}
