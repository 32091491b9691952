// SPDX-License-Identifier: EPL-2.0

package enhance

import "errors"

var (
	ErrNoiseReductionRange = errors.New("noise reduction strength out of range [0.1, 1.0]")
	ErrAmplificationRange  = errors.New("amplification level out of range [0.5, 2.0]")
	ErrNormalizationRange  = errors.New("normalization level out of range [0.5, 2.0]")
	ErrUnknownPreset       = errors.New("unknown preset")
	ErrInvalidSampleRate   = errors.New("sample rate must be positive")
)
