// Package audit computes a point-in-time digest of a Region's bytes, for
// correlating a Stats/Validate snapshot with exactly what the managed memory
// looked like when it was taken (see SPEC_FULL.md §4.11). It never
// participates in allocation decisions.
package audit

import "github.com/ferrero222/eheap/hash/xfnv"

// Fingerprint returns a 64-bit digest of region. It is deliberately not a
// cryptographic hash and not stable across architectures (see
// hash/xfnv's doc comment); two Fingerprint calls with no intervening
// mutation of region return the same value, and any mutation changes it
// with overwhelming probability.
func Fingerprint(region []byte) uint64 {
	return xfnv.Hash(region)
}
