// SPDX-License-Identifier: EPL-2.0

package enhance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audenhance/internal/sample"
)

func TestNormalizer(t *testing.T) {
	tests := []struct {
		name  string
		level float64
		in    []float64
		want  []float64
	}{
		{"scale up", 1.0, []float64{0.25, -0.5}, []float64{0.5, -1.0}},
		{"scale down", 0.5, []float64{1, -0.5}, []float64{0.5, -0.25}},
		{"above full scale", 2.0, []float64{0.5, 0.25}, []float64{2.0, 1.0}},
		{"silence untouched", 1.0, []float64{0, 0, 0}, []float64{0, 0, 0}},
		{"empty", 1.0, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := (&Normalizer{Level: tt.level}).Process(tt.in, 8000)
			require.NoError(t, err)
			assert.InDeltaSlice(t, tt.want, got, 1e-12)
		})
	}
}

func TestNormalizer_PeakEqualsLevel(t *testing.T) {
	in := []float64{0.01, -0.03, 0.02}
	out, err := (&Normalizer{Level: 0.8}).Process(in, 8000)
	require.NoError(t, err)
	assert.InDelta(t, 0.8, sample.Peak(out), 1e-12)
}

func TestNormalizer_TinyPeaks(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
	}{
		{"below a nanounit", []float64{1e-12, -5e-13}},
		{"subnormal", []float64{5e-324, 0, -5e-324}},
		{"smallest normal", []float64{2.2250738585072014e-308, 1e-308}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := (&Normalizer{Level: 0.9}).Process(tt.in, 8000)
			require.NoError(t, err)
			assert.InDelta(t, 0.9, sample.Peak(out), 1e-12)
			for _, v := range out {
				assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "sample %v", v)
			}
		})
	}
}

func TestAmplifier(t *testing.T) {
	tests := []struct {
		name string
		gain float64
		in   []float64
		want []float64
	}{
		{"unity", 1.0, []float64{0.3, -0.3}, []float64{0.3, -0.3}},
		{"boost", 1.5, []float64{0.2, -0.4}, []float64{0.3, -0.6}},
		{"clip both ways", 2.0, []float64{0.8, -0.9, 0.1}, []float64{1, -1, 0.2}},
		{"cut", 0.5, []float64{1, -1}, []float64{0.5, -0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := (&Amplifier{Gain: tt.gain}).Process(tt.in, 8000)
			require.NoError(t, err)
			assert.InDeltaSlice(t, tt.want, got, 1e-12)
		})
	}
}
