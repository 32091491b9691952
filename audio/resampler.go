// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audenhance/internal/sample"
)

// lowPassAlpha is the coefficient of the one-pole smoother applied to source
// frames when downsampling.
const lowPassAlpha = 0.5

// Resampler converts src to another sample rate with Catmull-Rom
// interpolation. Channel count and interleaving are preserved.
type Resampler struct {
	src      Source
	rate     int
	step     float64 // source frames consumed per output frame
	channels int

	// hist holds the frames at t-1, t, t+1, t+2; output is interpolated
	// between hist[1] and hist[2] at offset pos.
	hist [4][]float32
	real [4]bool
	pos  float64

	in     []float32
	primed bool
	eof    bool
	idle   int

	lowPass bool
	lpInit  bool
	lpState []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := max(src.Channels(), 1)
	step := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		rate:     dstRate,
		step:     step,
		channels: channels,
		in:       make([]float32, channels),
		lowPass:  step > 1.0,
		lpState:  make([]float32, channels),
	}
	for i := range r.hist {
		r.hist[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.rate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// ReadSamples produces interleaved samples at the target rate.
// len(dst) must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	for written+r.channels <= len(dst) {
		for r.pos >= 1.0 {
			if err := r.advance(); err != nil {
				return written, err
			}
			r.pos -= 1.0
		}

		if !r.real[1] {
			return written, io.EOF
		}

		x := float32(r.pos)
		for c := range r.channels {
			dst[written+c] = sample.CubicInterpolate(
				r.hist[0][c], r.hist[1][c], r.hist[2][c], r.hist[3][c], x)
		}
		written += r.channels
		r.pos += r.step
	}

	return written, nil
}

// prime loads the first frames, duplicating the edge frame for t-1 and for
// any look-ahead slot the source cannot fill.
func (r *Resampler) prime() error {
	r.primed = true

	ok, err := r.readFrame(r.hist[1])
	if err != nil || !ok {
		return err
	}
	r.real[1] = true
	copy(r.hist[0], r.hist[1])
	r.real[0] = true

	for i := 2; i < len(r.hist); i++ {
		ok, err := r.readFrame(r.hist[i])
		if err != nil {
			return err
		}
		if !ok {
			copy(r.hist[i], r.hist[i-1])
		}
		r.real[i] = ok
	}

	return nil
}

// advance shifts the history one frame to the left and pulls the next frame.
func (r *Resampler) advance() error {
	first := r.hist[0]
	copy(r.hist[:], r.hist[1:])
	r.hist[3] = first
	copy(r.real[:], r.real[1:])

	ok, err := r.readFrame(r.hist[3])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.hist[3], r.hist[2])
	}
	r.real[3] = ok

	return nil
}

// readFrame reads exactly one frame into dst. It reports false once the
// source is exhausted; partial trailing frames are dropped.
func (r *Resampler) readFrame(dst []float32) (bool, error) {
	for !r.eof {
		n, err := r.src.ReadSamples(r.in)
		if errors.Is(err, io.EOF) {
			r.eof = true
		} else if err != nil {
			return false, fmt.Errorf("%w", err)
		}

		if n >= r.channels {
			r.idle = 0
			copy(dst, r.in)
			r.filter(dst)
			return true, nil
		}

		if n == 0 && err == nil {
			r.idle++
			if r.idle > maxIdleReads {
				return false, io.ErrNoProgress
			}
		}
	}

	return false, nil
}

// filter applies the anti-aliasing smoother when downsampling.
func (r *Resampler) filter(frame []float32) {
	if !r.lowPass {
		return
	}
	if !r.lpInit {
		copy(r.lpState, frame)
		r.lpInit = true
	}

	for c := range frame {
		frame[c] = lowPassAlpha*frame[c] + (1-lowPassAlpha)*r.lpState[c]
		r.lpState[c] = frame[c]
	}
}
