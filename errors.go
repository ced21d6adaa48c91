package eheap

import "errors"

// ErrInvalidConfig is returned (wrapped) by InitWith when a Config fails
// validation: a programmer error, not part of the alloc/calloc/realloc/free
// null-return failure contract, in the style of bufiox's errNegativeCount.
var ErrInvalidConfig = errors.New("eheap: invalid config")
