// SPDX-License-Identifier: EPL-2.0

package enhance

import (
	"github.com/sirupsen/logrus"

	"github.com/ik5/audenhance/internal/sample"
)

// Normalizer scales a chunk so its absolute peak equals Level. Levels
// above 1.0 push the peak past full scale; the amplifier clips later.
// Only an all-zero chunk is left untouched.
type Normalizer struct {
	Level float64
}

func (n *Normalizer) Name() string { return "normalize" }

func (n *Normalizer) Process(samples []float64, _ int) ([]float64, error) {
	peak := sample.Peak(samples)
	if peak == 0 {
		logrus.WithFields(logrus.Fields{
			"function":     "Normalizer.Process",
			"sample_count": len(samples),
		}).Debug("Silent chunk, normalization skipped")

		return samples, nil
	}

	// Level/peak overflows for subnormal peaks; dividing first keeps every
	// intermediate within [-1, 1].
	for i := range samples {
		samples[i] = samples[i] / peak * n.Level
	}

	return samples, nil
}

// Amplifier multiplies every sample by Gain and hard-clips to [-1, 1].
type Amplifier struct {
	Gain float64
}

func (a *Amplifier) Name() string { return "amplify" }

func (a *Amplifier) Process(samples []float64, _ int) ([]float64, error) {
	clipped := 0
	for i, s := range samples {
		v := s * a.Gain
		if v > 1 || v < -1 {
			clipped++
		}
		samples[i] = sample.Clip(v)
	}

	if clipped > 0 {
		logrus.WithFields(logrus.Fields{
			"function":      "Amplifier.Process",
			"gain":          a.Gain,
			"clipped_count": clipped,
		}).Debug("Clipping occurred during amplification")
	}

	return samples, nil
}
