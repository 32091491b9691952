// SPDX-License-Identifier: EPL-2.0

// Package enhance holds the per-chunk effects and the parameter presets
// that drive them.
//
// Every chunk runs through the same Chain: a NoiseReducer (STFT spectral
// subtraction on gonum's FFT), a peak Normalizer and an Amplifier that
// hard-clips to [-1, 1]. Effects hold no state between chunks, so each
// chunk is enhanced on its own; the first second of every chunk seeds
// that chunk's noise profile.
package enhance
