// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes RIFF/WAVE files through go-audio/wav.
//
// The Decoder accepts integer PCM at 8, 16, 24 and 32 bits with any number
// of channels and any chunk layout (LIST, fact and other chunks between fmt
// and data are skipped). Samples come out as interleaved float32 in
// [-1, 1]. Non-seekable readers are buffered in memory first.
//
// The Encoder writes a mono Buffer as integer PCM, 16-bit unless told
// otherwise:
//
//	f, _ := os.Create("out.wav")
//	defer f.Close()
//	err := wav.Encoder{}.Encode(f, buf)
package wav
