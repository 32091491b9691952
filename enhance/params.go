// SPDX-License-Identifier: EPL-2.0

package enhance

import (
	"fmt"
	"math"
)

// Accepted parameter ranges, inclusive.
const (
	MinNoiseReduction = 0.1
	MaxNoiseReduction = 1.0
	MinAmplification  = 0.5
	MaxAmplification  = 2.0
	MinNormalization  = 0.5
	MaxNormalization  = 2.0
)

// Params is one processing configuration. It is a value type; a run keeps
// the copy it was started with.
type Params struct {
	// NoiseReduction is the spectral subtraction strength.
	NoiseReduction float64
	// Amplification is the linear gain applied last, before clipping.
	Amplification float64
	// Normalization is the peak level each chunk is scaled to.
	Normalization float64
}

// Validate checks every field against its range.
func (p Params) Validate() error {
	if !inRange(p.NoiseReduction, MinNoiseReduction, MaxNoiseReduction) {
		return fmt.Errorf("%w: %v", ErrNoiseReductionRange, p.NoiseReduction)
	}
	if !inRange(p.Amplification, MinAmplification, MaxAmplification) {
		return fmt.Errorf("%w: %v", ErrAmplificationRange, p.Amplification)
	}
	if !inRange(p.Normalization, MinNormalization, MaxNormalization) {
		return fmt.Errorf("%w: %v", ErrNormalizationRange, p.Normalization)
	}

	return nil
}

func (p Params) String() string {
	return fmt.Sprintf("noise=%.2f amp=%.2f norm=%.2f", p.NoiseReduction, p.Amplification, p.Normalization)
}

func inRange(v, lo, hi float64) bool {
	return !math.IsNaN(v) && v >= lo && v <= hi
}
