// SPDX-License-Identifier: EPL-2.0

package chunk

import "errors"

var (
	ErrInvalidDuration = errors.New("chunk duration must be positive")
	ErrOutOfOrder      = errors.New("chunk added out of order")
	ErrRateMismatch    = errors.New("chunk sample rate differs from recombiner")
	ErrTooManyChunks   = errors.New("more chunks than announced")
)
