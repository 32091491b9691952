// SPDX-License-Identifier: EPL-2.0

package enhance

import (
	"math"
	"math/cmplx"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	// profileDuration is how much of the chunk head is taken as noise.
	profileDuration = time.Second
	// overSubtraction multiplies Strength when removing the noise profile.
	overSubtraction = 2.0
	// spectralFloor is the fraction of each bin's magnitude that always
	// survives subtraction, which keeps musical noise down.
	spectralFloor = 0.1

	minFrameSize = 256
	maxFrameSize = 4096
)

// NoiseReducer removes stationary noise by spectral subtraction. The noise
// profile is the mean magnitude spectrum of the first second of the chunk,
// or of the whole chunk when it is shorter, so anything audible in that
// window is treated as noise too.
type NoiseReducer struct {
	Strength float64
}

func (nr *NoiseReducer) Name() string { return "noise_reduce" }

func (nr *NoiseReducer) Process(samples []float64, sampleRate int) ([]float64, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if nr.Strength <= 0 || len(samples) == 0 {
		return samples, nil
	}

	st := newSTFT(frameSizeFor(sampleRate))
	frames := st.analyze(samples)

	profileLen := min(len(samples), int(int64(sampleRate)*int64(profileDuration)/int64(time.Second)))
	noise := st.profile(frames, profileLen)

	factor := overSubtraction * nr.Strength
	for _, spectrum := range frames {
		for b, c := range spectrum {
			mag := cmplx.Abs(c)
			if mag == 0 {
				continue
			}
			clean := max(mag-factor*noise[b], spectralFloor*mag)
			spectrum[b] = c * complex(clean/mag, 0)
		}
	}

	out := st.synthesize(frames, len(samples))

	logrus.WithFields(logrus.Fields{
		"function":    "NoiseReducer.Process",
		"strength":    nr.Strength,
		"frame_size":  st.size,
		"frame_count": len(frames),
	}).Debug("Noise reduction completed")

	return out, nil
}

// frameSizeFor picks a power of two close to 32 ms at sampleRate.
func frameSizeFor(sampleRate int) int {
	size := minFrameSize
	for size < sampleRate/32 && size < maxFrameSize {
		size <<= 1
	}

	return size
}

// stft is a Hann-windowed short-time Fourier transform with 50% overlap.
// A periodic Hann window at half-frame hop sums to one, so analysis
// followed by plain overlap-add gives back the input.
type stft struct {
	size   int
	hop    int
	window []float64
	fft    *fourier.FFT
	// scale undoes whatever gain the inverse transform applies
	scale float64
}

func newSTFT(size int) *stft {
	window := make([]float64, size)
	for i := range window {
		window[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(size))
	}

	fft := fourier.NewFFT(size)

	// Calibrate the round trip on an impulse.
	impulse := make([]float64, size)
	impulse[0] = 1
	back := fft.Sequence(nil, fft.Coefficients(nil, impulse))

	return &stft{
		size:   size,
		hop:    size / 2,
		window: window,
		fft:    fft,
		scale:  1 / back[0],
	}
}

// padded returns samples with one hop of leading silence and enough
// trailing silence that every input sample is covered by two frames.
func (s *stft) padded(samples []float64) []float64 {
	n := s.hop + len(samples) + s.hop
	if rem := (n - s.size) % s.hop; rem != 0 {
		n += s.hop - rem
	}

	buf := make([]float64, n)
	copy(buf[s.hop:], samples)

	return buf
}

func (s *stft) analyze(samples []float64) [][]complex128 {
	buf := s.padded(samples)
	count := (len(buf)-s.size)/s.hop + 1

	frames := make([][]complex128, count)
	seg := make([]float64, s.size)
	for k := range frames {
		start := k * s.hop
		for i, w := range s.window {
			seg[i] = buf[start+i] * w
		}
		frames[k] = s.fft.Coefficients(nil, seg)
	}

	return frames
}

// profile averages bin magnitudes over the frames that end inside the
// first n input samples. Frame k spans input [(k-1)*hop, (k+1)*hop).
func (s *stft) profile(frames [][]complex128, n int) []float64 {
	count := max(1, min(len(frames), n/s.hop))

	noise := make([]float64, len(frames[0]))
	for _, spectrum := range frames[:count] {
		for b, c := range spectrum {
			noise[b] += cmplx.Abs(c)
		}
	}
	for b := range noise {
		noise[b] /= float64(count)
	}

	return noise
}

func (s *stft) synthesize(frames [][]complex128, n int) []float64 {
	buf := make([]float64, (len(frames)-1)*s.hop+s.size)
	seq := make([]float64, s.size)

	for k, spectrum := range frames {
		seq = s.fft.Sequence(seq, spectrum)
		start := k * s.hop
		for i, v := range seq {
			buf[start+i] += v * s.scale
		}
	}

	return buf[s.hop : s.hop+n]
}
