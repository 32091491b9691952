// SPDX-License-Identifier: EPL-2.0

// Package audio provides the decoding primitives shared by every format.
//
// A decoder yields a streaming Source of interleaved float32 samples in
// [-1, 1]. Sources chain together:
//
//	src, _ := wav.Decoder{}.Decode(file)
//	res := audio.NewResampler(src, 16000)
//	mono := audio.NewMonoMixer(res)
//
// ReadAll drains such a chain into a Buffer, the mono float64 signal the
// enhancement stages work on:
//
//	buf, err := audio.ReadAll(src, 0) // 0 keeps the native rate
//
// # Registry
//
// A Registry maps file extensions to decoders and encoders so callers can
// pick a codec from an upload name:
//
//	reg := audio.NewRegistry()
//	reg.RegisterDecoder("wav", wav.Decoder{})
//	reg.RegisterEncoder("wav", wav.Encoder{})
//	dec, ok := reg.Decoder(".WAV")
//
// Extensions are case-insensitive and may carry a leading dot.
//
// # End of stream
//
// ReadSamples returns io.EOF once the stream is drained, possibly together
// with the last samples. Any other error is a decoding failure.
package audio
