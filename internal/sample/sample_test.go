// SPDX-License-Identifier: EPL-2.0

package sample

import (
	"math"
	"testing"
)

func TestToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float64
		want  int16
	}{
		{name: "zero", input: 0, want: 0},
		{name: "max positive", input: 1, want: math.MaxInt16},
		{name: "max negative", input: -1, want: -math.MaxInt16},
		{name: "half positive", input: 0.5, want: 16383},
		{name: "half negative", input: -0.5, want: -16383},
		{name: "clamp over max", input: 1.5, want: math.MaxInt16},
		{name: "clamp under min", input: -100, want: -math.MaxInt16},
		{name: "nan is silence", input: math.NaN(), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ToInt16(tt.input)
			if diff := math.Abs(float64(got) - float64(tt.want)); diff > 1 {
				t.Errorf("ToInt16(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFloat32ToInt16Monotonic(t *testing.T) {
	t.Parallel()

	prev := Float32ToInt16(-1.0)
	for f := -0.99; f <= 1.0; f += 0.01 {
		curr := Float32ToInt16(float32(f))
		if curr < prev {
			t.Fatalf("Float32ToInt16 not monotonic at %v: %v < %v", f, curr, prev)
		}
		prev = curr
	}
}

func TestIntToFloat32(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		value    int
		bitDepth int
		want     float32
	}{
		{name: "16-bit min", value: -32768, bitDepth: 16, want: -1},
		{name: "16-bit half", value: 16384, bitDepth: 16, want: 0.5},
		{name: "8-bit", value: 64, bitDepth: 8, want: 0.5},
		{name: "24-bit", value: -4194304, bitDepth: 24, want: -0.5},
		{name: "32-bit", value: 1073741824, bitDepth: 32, want: 0.5},
		{name: "unknown depth falls back to 16-bit", value: 16384, bitDepth: 12, want: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := IntToFloat32(tt.value, tt.bitDepth); got != tt.want {
				t.Errorf("IntToFloat32(%d, %d) = %v, want %v", tt.value, tt.bitDepth, got, tt.want)
			}
		})
	}
}

func TestClip(t *testing.T) {
	t.Parallel()

	for _, x := range []float64{-3, -1, -0.25, 0, 0.75, 1, 42} {
		got := Clip(x)
		if got < -1 || got > 1 {
			t.Errorf("Clip(%v) = %v, outside [-1, 1]", x, got)
		}
		if x >= -1 && x <= 1 && got != x {
			t.Errorf("Clip(%v) = %v, want unchanged", x, got)
		}
	}
}

func TestPeakAndRMS(t *testing.T) {
	t.Parallel()

	samples := []float64{0.1, -0.8, 0.3, 0.5}
	if got := Peak(samples); got != 0.8 {
		t.Errorf("Peak() = %v, want 0.8", got)
	}

	if got := Peak(nil); got != 0 {
		t.Errorf("Peak(nil) = %v, want 0", got)
	}

	square := []float64{0.5, -0.5, 0.5, -0.5}
	if got := RMS(square); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("RMS(square) = %v, want 0.5", got)
	}

	if got := RMS(nil); got != 0 {
		t.Errorf("RMS(nil) = %v, want 0", got)
	}
}

func TestCubicInterpolate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		y0, y1, y2, y3 float32
		x              float32
		want           float32
		tolerance      float32
	}{
		{name: "start returns y1", y0: 0, y1: 1, y2: 2, y3: 3, x: 0, want: 1, tolerance: 1e-6},
		{name: "end returns y2", y0: 0, y1: 1, y2: 2, y3: 3, x: 1, want: 2, tolerance: 1e-6},
		{name: "linear data stays linear", y0: 1, y1: 2, y2: 3, y3: 4, x: 0.25, want: 2.25, tolerance: 1e-5},
		{name: "flat zero", x: 0.5, want: 0, tolerance: 1e-6},
		{name: "symmetric crossing", y0: -1, y1: -0.5, y2: 0.5, y3: 1, x: 0.5, want: 0, tolerance: 1e-6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CubicInterpolate(tt.y0, tt.y1, tt.y2, tt.y3, tt.x)
			if diff := float32(math.Abs(float64(got - tt.want))); diff > tt.tolerance {
				t.Errorf("CubicInterpolate() = %v, want %v (diff %v)", got, tt.want, diff)
			}
		})
	}
}

func BenchmarkToInt16(b *testing.B) {
	in := make([]float64, 8000)
	for i := range in {
		in[i] = math.Sin(float64(i) * 0.1)
	}
	out := make([]int16, len(in))

	b.ReportAllocs()

	for b.Loop() {
		for i, x := range in {
			out[i] = ToInt16(x)
		}
	}
}

func TestToInt16_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	allocs := testing.AllocsPerRun(1000, func() {
		_ = ToInt16(0.5)
	})
	if allocs > 0 {
		t.Errorf("ToInt16 allocated %v times, want 0", allocs)
	}
}
