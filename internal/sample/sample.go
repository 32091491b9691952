// SPDX-License-Identifier: EPL-2.0

// Package sample holds the scalar helpers shared by the decoders, the
// resampler and the enhancement effects.
package sample

import "math"

// FullScale returns the magnitude that maps to 1.0 for signed PCM of the
// given bit depth. Unknown depths are treated as 16-bit.
func FullScale(bitDepth int) float64 {
	switch bitDepth {
	case 8:
		return 128.0
	case 24:
		return 8388608.0
	case 32:
		return 2147483648.0
	default:
		return 32768.0
	}
}

// IntToFloat32 scales a signed PCM value of bitDepth bits into [-1, 1).
func IntToFloat32(v int, bitDepth int) float32 {
	return float32(float64(v) / FullScale(bitDepth))
}

// Float32ToInt16 clamps x to [-1, 1] and scales it to 16-bit PCM.
func Float32ToInt16(x float32) int16 {
	return ToInt16(float64(x))
}

// ToInt16 clamps x to [-1, 1] and scales it to 16-bit PCM.
// 32767 is used for both signs so +1.0 does not overflow.
func ToInt16(x float64) int16 {
	return int16(Clip(x) * 32767.0)
}

// Clip hard-limits x to [-1, 1]. NaN is mapped to silence.
func Clip(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return 0
	case x > 1:
		return 1
	case x < -1:
		return -1
	}

	return x
}

// Peak returns the largest absolute value in samples.
func Peak(samples []float64) float64 {
	var peak float64
	for _, s := range samples {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}

	return peak
}

// RMS returns the root mean square of samples, 0 for an empty slice.
func RMS(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}

	var sum float64
	for _, s := range samples {
		sum += s * s
	}

	return math.Sqrt(sum / float64(len(samples)))
}

// CubicInterpolate evaluates a Catmull-Rom spline through four consecutive
// samples; x is the fractional position between y1 (x=0) and y2 (x=1).
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2

	return ((a0*x+a1)*x+a2)*x + y1
}
