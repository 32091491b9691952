// SPDX-License-Identifier: EPL-2.0

package chunk

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audenhance/audio"
	"github.com/ik5/audenhance/internal/audiotest"
)

func TestSplit_LastChunkShort(t *testing.T) {
	buf := audio.NewBuffer(make([]float64, 25*16000), 16000)

	chunks := slices.Collect(Split(buf, 10*time.Second))

	require.Len(t, chunks, 3)
	assert.Equal(t, 10*time.Second, chunks[0].Duration())
	assert.Equal(t, 10*time.Second, chunks[1].Duration())
	assert.Equal(t, 5*time.Second, chunks[2].Duration())
	assert.Equal(t, 20*time.Second, chunks[2].Start())
	assert.Equal(t, 3, Count(buf.Len(), buf.SampleRate, 10*time.Second))

	for i, c := range chunks {
		assert.Equal(t, i, c.Index)
		assert.Equal(t, i*160000, c.Offset)
		assert.Equal(t, 16000, c.SampleRate)
	}
}

func TestSplit_Cases(t *testing.T) {
	tests := []struct {
		name    string
		samples int
		rate    int
		d       time.Duration
		want    []int
	}{
		{"empty", 0, 8000, time.Second, nil},
		{"shorter than one chunk", 3000, 8000, time.Second, []int{3000}},
		{"exact multiple", 16000, 8000, time.Second, []int{8000, 8000}},
		{"one sample over", 8001, 8000, time.Second, []int{8000, 1}},
		{"sub-sample duration", 3, 8000, time.Nanosecond, []int{1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := audio.NewBuffer(make([]float64, tt.samples), tt.rate)

			var got []int
			for c := range Split(buf, tt.d) {
				got = append(got, len(c.Samples))
			}

			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want), Count(tt.samples, tt.rate, tt.d))
		})
	}
}

func TestSplit_JoinRoundTrip(t *testing.T) {
	samples := audiotest.Noise(12345, 0.7, 42)
	buf := audio.NewBuffer(samples, 1000)

	for _, d := range []time.Duration{time.Second, 3 * time.Second, 7 * time.Millisecond, time.Minute} {
		joined, err := Join(buf.SampleRate, Split(buf, d))
		require.NoError(t, err)
		assert.Equal(t, samples, joined.Samples, "duration %v", d)
		assert.Equal(t, 1000, joined.SampleRate)
	}
}

func TestSplit_ChunksDoNotOverlap(t *testing.T) {
	buf := audio.NewBuffer(make([]float64, 2500), 1000)

	for c := range Split(buf, time.Second) {
		// capped capacity keeps an append on one chunk out of the next
		assert.Equal(t, len(c.Samples), cap(c.Samples))
	}
}

func TestSplit_StopsEarly(t *testing.T) {
	buf := audio.NewBuffer(make([]float64, 10000), 1000)

	seen := 0
	for c := range Split(buf, time.Second) {
		seen++
		if c.Index == 1 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(DefaultDuration))
	assert.ErrorIs(t, Validate(0), ErrInvalidDuration)
	assert.ErrorIs(t, Validate(-time.Second), ErrInvalidDuration)
}

func TestSize(t *testing.T) {
	assert.Equal(t, 441000, Size(44100, DefaultDuration))
	assert.Equal(t, 1, Size(8000, time.Nanosecond))
	assert.Equal(t, 0, Count(0, 8000, time.Second))
}

func BenchmarkSplit(b *testing.B) {
	buf := audio.NewBuffer(make([]float64, 60*44100), 44100)

	b.ReportAllocs()
	for b.Loop() {
		for c := range Split(buf, DefaultDuration) {
			_ = c
		}
	}
}
