// SPDX-License-Identifier: EPL-2.0

// Package audenhance cleans up uploaded recordings.
//
// A Pipeline decodes a file into a mono buffer, cuts it into fixed-length
// chunks (10 seconds by default), runs every chunk through noise
// reduction, peak normalization and amplification with clipping, stitches
// the chunks back together and writes the result, converting it to the
// configured output format when that is not wav.
//
//	p, err := audenhance.New(audenhance.DefaultConfig())
//	if err != nil {
//	    // invalid configuration
//	}
//
//	preset, _ := enhance.LookupPreset("Podcast")
//	res, err := p.ProcessFile(ctx, "talk.mp3", "talk.mp3", preset.Params, nil)
//	// res.OutputPath is ./output/final_talk.wav
//
// # Batches
//
// ProcessBatch handles several uploads one after another in upload order.
// Each upload is copied into a private run directory that is removed when
// the batch returns. A file that fails at any stage is reported in its
// Result and the batch moves on to the next one.
//
// # Formats
//
// Input: wav, aiff, mp3, ogg (Vorbis) and flac, all decoded in Go.
// Output: wav and aiff are encoded natively; mp3, ogg and flac are
// produced by the ffmpeg binary.
//
// # Chunking
//
// Chunks are enhanced independently and joined without crossfade, so the
// noise profile and the normalization gain are per chunk. Chunk boundaries
// can be audible on material whose level changes a lot.
package audenhance
