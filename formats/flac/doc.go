// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC streams with github.com/mewkiz/flac, one frame
// at a time. Samples of any bit depth up to 32 are scaled to float32 in
// [-1, 1] and interleaved.
package flac
