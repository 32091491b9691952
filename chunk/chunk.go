// SPDX-License-Identifier: EPL-2.0

// Package chunk splits a decoded signal into fixed-duration pieces and
// joins processed pieces back together.
package chunk

import (
	"iter"
	"time"

	"github.com/ik5/audenhance/audio"
)

// DefaultDuration is the chunk length used when none is configured.
const DefaultDuration = 10 * time.Second

// Chunk is a contiguous, non-overlapping slice of a parent buffer.
// Offset is the index of the first sample in the parent.
type Chunk struct {
	Index      int
	Offset     int
	Samples    []float64
	SampleRate int
}

// Start returns the position of the chunk in the parent signal.
func (c Chunk) Start() time.Duration {
	return samplesToDuration(c.Offset, c.SampleRate)
}

// Duration returns the playing time of the chunk.
func (c Chunk) Duration() time.Duration {
	return samplesToDuration(len(c.Samples), c.SampleRate)
}

func samplesToDuration(n, rate int) time.Duration {
	if rate <= 0 {
		return 0
	}

	return time.Duration(int64(n) * int64(time.Second) / int64(rate))
}

// Validate reports whether d can be used as a chunk duration.
func Validate(d time.Duration) error {
	if d <= 0 {
		return ErrInvalidDuration
	}

	return nil
}

// Size returns the nominal number of samples per chunk, never less than one.
func Size(sampleRate int, d time.Duration) int {
	size := int(int64(sampleRate) * int64(d) / int64(time.Second))

	return max(size, 1)
}

// Count returns how many chunks Split yields for n samples.
func Count(n, sampleRate int, d time.Duration) int {
	if n <= 0 {
		return 0
	}

	size := Size(sampleRate, d)

	return (n + size - 1) / size
}

// Split yields buf in order as chunks of d. The final chunk holds the
// remainder and may be shorter; an empty buffer yields nothing. Chunks
// share memory with buf. d must pass Validate.
func Split(buf *audio.Buffer, d time.Duration) iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		size := Size(buf.SampleRate, d)

		for index, offset := 0, 0; offset < len(buf.Samples); index, offset = index+1, offset+size {
			end := min(offset+size, len(buf.Samples))

			c := Chunk{
				Index:      index,
				Offset:     offset,
				Samples:    buf.Samples[offset:end:end],
				SampleRate: buf.SampleRate,
			}
			if !yield(c) {
				return
			}
		}
	}
}
