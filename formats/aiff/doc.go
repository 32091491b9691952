// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding and
// encoding on top of github.com/go-audio/aiff.
//
// The Decoder accepts signed PCM at 8, 16, 24 and 32 bits, any channel
// count and any sample rate. go-audio needs to seek, so plain readers are
// buffered in memory first.
//
// The Encoder writes a mono Buffer as 16-bit PCM:
//
//	f, _ := os.Create("out.aiff")
//	defer f.Close()
//	err := aiff.Encoder{}.Encode(f, buf)
package aiff
