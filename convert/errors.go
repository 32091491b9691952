// SPDX-License-Identifier: EPL-2.0

package convert

import "errors"

var (
	ErrFFmpegNotFound    = errors.New("ffmpeg binary not found")
	ErrUnsupportedFormat = errors.New("unsupported output format")
	ErrNoDecoder         = errors.New("no decoder for source format")
	ErrCodecPanic        = errors.New("codec panicked")
)
