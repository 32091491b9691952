// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"time"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audenhance/internal/sample"
)

// maxIdleReads bounds how many consecutive empty reads a Source may return
// before the reader gives up with io.ErrNoProgress.
const maxIdleReads = 100

// Buffer is a fully decoded mono signal. Samples are expected in [-1, 1]
// once enhancement has run; the final stage clips, it never wraps.
type Buffer struct {
	Samples    []float64
	SampleRate int
}

// NewBuffer wraps samples without copying them.
func NewBuffer(samples []float64, sampleRate int) *Buffer {
	return &Buffer{Samples: samples, SampleRate: sampleRate}
}

// Len returns the number of samples.
func (b *Buffer) Len() int { return len(b.Samples) }

// Duration returns the playing time of the buffer.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}

	return time.Duration(int64(len(b.Samples)) * int64(time.Second) / int64(b.SampleRate))
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	samples := make([]float64, len(b.Samples))
	copy(samples, b.Samples)

	return &Buffer{Samples: samples, SampleRate: b.SampleRate}
}

// PCM converts the buffer into a mono go-audio IntBuffer of the given bit
// depth, clipping to full scale on the way.
func (b *Buffer) PCM(bitDepth int) *goaudio.IntBuffer {
	scale := sample.FullScale(bitDepth)
	data := make([]int, len(b.Samples))
	for i, s := range b.Samples {
		v := sample.Clip(s) * scale
		if v >= scale {
			v = scale - 1
		}
		data[i] = int(v)
	}

	return &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: b.SampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
}

// ReadAll drains src into a mono Buffer. When targetRate is positive and
// differs from the source rate the stream is resampled first.
func ReadAll(src Source, targetRate int) (*Buffer, error) {
	if err := ValidateFormat(src.SampleRate(), src.Channels()); err != nil {
		return nil, err
	}
	if targetRate > MaxSampleRate {
		return nil, fmt.Errorf("%w: %d Hz", ErrInvalidSampleRate, targetRate)
	}

	var stream Source = src
	if targetRate > 0 && targetRate != src.SampleRate() {
		stream = NewResampler(stream, targetRate)
	}
	mono := NewMonoMixer(stream)

	size := src.BufSize()
	if size <= 0 {
		size = 4096
	}
	buf := make([]float32, size)
	out := make([]float64, 0, mono.SampleRate())

	idle := 0
	for {
		n, err := mono.ReadSamples(buf)
		for _, s := range buf[:n] {
			out = append(out, float64(s))
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}

		if n == 0 {
			idle++
			if idle > maxIdleReads {
				return nil, io.ErrNoProgress
			}
			continue
		}
		idle = 0
	}

	return &Buffer{Samples: out, SampleRate: mono.SampleRate()}, nil
}
