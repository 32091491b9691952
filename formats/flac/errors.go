// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

var (
	ErrInvalidStreamInfo = errors.New("flac stream info missing sample rate or channels")
	ErrChannelMismatch   = errors.New("flac frame channel count mismatch")
)
