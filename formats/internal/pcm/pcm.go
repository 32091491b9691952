// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts the go-audio integer PCM decoders to audio.Source.
package pcm

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audenhance/internal/sample"
)

// Reader is the part of the go-audio wav and aiff decoders the Source needs.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source streams integer PCM from a go-audio decoder as float32.
type Source struct {
	dec      Reader
	format   *goaudio.Format
	bitDepth int
	// bias is subtracted from every raw sample; non-zero for offset
	// binary data.
	bias   int
	intBuf *goaudio.IntBuffer
	done   bool
}

// NewSource wraps dec. format must carry the channel count and sample rate.
func NewSource(dec Reader, format *goaudio.Format, bitDepth int) *Source {
	return &Source{
		dec:      dec,
		format:   format,
		bitDepth: bitDepth,
		intBuf: &goaudio.IntBuffer{
			Format: format,
			Data:   make([]int, 4096),
		},
	}
}

// Unsigned marks the stream as offset binary, as 8-bit WAV is.
func (s *Source) Unsigned() *Source {
	s.bias = 1 << (s.bitDepth - 1)
	return s
}

func (s *Source) SampleRate() int { return s.format.SampleRate }
func (s *Source) Channels() int   { return s.format.NumChannels }
func (s *Source) BufSize() int    { return cap(s.intBuf.Data) }
func (s *Source) Close() error    { return nil }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.done {
		return 0, io.EOF
	}

	want := len(dst) - len(dst)%s.format.NumChannels
	if want == 0 {
		return 0, nil
	}

	if cap(s.intBuf.Data) < want {
		s.intBuf.Data = make([]int, want)
	}
	s.intBuf.Data = s.intBuf.Data[:want]

	n, err := s.dec.PCMBuffer(s.intBuf)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("%w", err)
	}

	for i, v := range s.intBuf.Data[:n] {
		dst[i] = sample.IntToFloat32(v-s.bias, s.bitDepth)
	}

	// go-audio signals the end of the data chunk with a short read.
	if n < want || err != nil {
		s.done = true
		if n == 0 {
			return 0, io.EOF
		}
	}

	return n, nil
}

// ReadSeeker returns r itself when it can seek, otherwise buffers it in
// memory. The go-audio decoders jump between chunks and need to seek.
func ReadSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering input: %w", err)
	}

	return bytes.NewReader(data), nil
}
