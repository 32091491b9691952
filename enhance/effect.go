// SPDX-License-Identifier: EPL-2.0

package enhance

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Effect transforms one chunk of mono samples. Implementations must not
// keep or modify the input slice after returning.
type Effect interface {
	Process(samples []float64, sampleRate int) ([]float64, error)
	Name() string
}

// Chain runs effects in order, feeding each the previous output.
type Chain struct {
	effects []Effect
}

// NewChain builds the enhancement order used for every chunk:
// noise reduction, then normalization, then amplification with clipping.
func NewChain(p Params) *Chain {
	return NewChainOf(
		&NoiseReducer{Strength: p.NoiseReduction},
		&Normalizer{Level: p.Normalization},
		&Amplifier{Gain: p.Amplification},
	)
}

// NewChainOf builds a chain from arbitrary effects.
func NewChainOf(effects ...Effect) *Chain {
	return &Chain{effects: effects}
}

// Names lists the effects in execution order.
func (c *Chain) Names() []string {
	names := make([]string, len(c.effects))
	for i, e := range c.effects {
		names[i] = e.Name()
	}

	return names
}

// Process runs the chain over a copy of samples. It stops at the first
// failing effect.
func (c *Chain) Process(samples []float64, sampleRate int) ([]float64, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}

	out := make([]float64, len(samples))
	copy(out, samples)

	for i, effect := range c.effects {
		var err error
		out, err = effect.Process(out, sampleRate)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "Chain.Process",
				"effect":   effect.Name(),
				"index":    i,
				"error":    err.Error(),
			}).Error("Effect processing failed")

			return nil, fmt.Errorf("effect %d (%s) failed: %w", i, effect.Name(), err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"function":     "Chain.Process",
		"sample_count": len(out),
		"effects":      len(c.effects),
	}).Debug("Chain processing completed")

	return out, nil
}
