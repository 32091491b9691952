// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/audenhance/internal/audiotest"
)

func drain(t *testing.T, src Source, chunk int) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, chunk)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestResampler_OutputLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		srcRate int
		dstRate int
		frames  int
		want    int
	}{
		{name: "same rate", srcRate: 8000, dstRate: 8000, frames: 1000, want: 1000},
		{name: "downsample 44.1k to 8k", srcRate: 44100, dstRate: 8000, frames: 44100, want: 8000},
		{name: "upsample 8k to 16k", srcRate: 8000, dstRate: 16000, frames: 8000, want: 16000},
		{name: "downsample 48k to 16k", srcRate: 48000, dstRate: 16000, frames: 4800, want: 1600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewSineSource(tt.srcRate, 1, tt.frames, 200)
			out := drain(t, NewResampler(src, tt.dstRate), 1024)

			if diff := len(out) - tt.want; diff < -1 || diff > 1 {
				t.Errorf("resampled length = %d, want %d", len(out), tt.want)
			}
		})
	}
}

func TestResampler_SameRateIsExact(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(8000, 1, 50, func(s int, _ int) float32 {
		return float32(s) / 100
	})
	out := drain(t, NewResampler(src, 8000), 7)

	if len(out) != 50 {
		t.Fatalf("length = %d, want 50", len(out))
	}
	for i, v := range out {
		if want := float32(i) / 100; v != want {
			t.Fatalf("out[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestResampler_PreservesChannels(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(16000, 2, 1600, func(_ int, ch int) float32 {
		if ch == 0 {
			return 0.5
		}
		return -0.5
	})
	r := NewResampler(src, 8000)

	if r.Channels() != 2 || r.SampleRate() != 8000 {
		t.Fatalf("Channels/SampleRate = %d/%d, want 2/8000", r.Channels(), r.SampleRate())
	}

	out := drain(t, r, 256)
	for i := 0; i+1 < len(out); i += 2 {
		if math.Abs(float64(out[i]-0.5)) > 1e-5 || math.Abs(float64(out[i+1]+0.5)) > 1e-5 {
			t.Fatalf("frame %d = (%v, %v), want (0.5, -0.5)", i/2, out[i], out[i+1])
		}
	}
}

func TestResampler_InvalidDstSize(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(8000, 2, 100), 16000)
	if _, err := r.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples(odd) error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_EmptySource(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(8000, 1, 0), 16000)
	n, err := r.ReadSamples(make([]float32, 16))
	if n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("ReadSamples() = %d, %v; want 0, io.EOF", n, err)
	}

	n, err = r.ReadSamples(make([]float32, 16))
	if n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("second ReadSamples() = %d, %v; want 0, io.EOF", n, err)
	}
}

func TestResampler_SingleFrame(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(8000, 1, 1, 0.7)
	out := drain(t, NewResampler(src, 16000), 8)

	if len(out) != 2 {
		t.Fatalf("length = %d, want 2", len(out))
	}
	for i, v := range out {
		if math.Abs(float64(v-0.7)) > 1e-6 {
			t.Errorf("out[%d] = %v, want 0.7", i, v)
		}
	}
}

func TestResampler_PropagatesSourceError(t *testing.T) {
	t.Parallel()

	r := NewResampler(brokenSource{}, 16000)
	if _, err := r.ReadSamples(make([]float32, 8)); err == nil || errors.Is(err, io.EOF) {
		t.Errorf("ReadSamples() error = %v, want source error", err)
	}
}

func BenchmarkResampler_44100To16000(b *testing.B) {
	buf := make([]float32, 4096)

	b.ReportAllocs()

	for b.Loop() {
		src := audiotest.NewSineSource(44100, 2, 44100, 440)
		r := NewResampler(src, 16000)
		for {
			_, err := r.ReadSamples(buf)
			if err != nil {
				break
			}
		}
	}
}
