// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Header limits. Decoders reject streams outside them before sizing any
// buffer from the header.
const (
	MaxChannels   = 32
	MaxSampleRate = 768000
)

// ValidateFormat checks a stream's sample rate and channel count against
// the header limits.
func ValidateFormat(sampleRate, channels int) error {
	if sampleRate <= 0 || sampleRate > MaxSampleRate {
		return fmt.Errorf("%w: %d Hz", ErrInvalidSampleRate, sampleRate)
	}
	if channels <= 0 || channels > MaxChannels {
		return fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}

	return nil
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Encoder serializes a mono Buffer into a container. Containers that
// patch their headers after the payload need a seekable writer.
type Encoder interface {
	Encode(w io.WriteSeeker, buf *Buffer) error
}

// Registry maps file extensions (e.g. "wav", "mp3", "ogg") to the
// decoders and encoders able to handle them.
type Registry struct {
	decoders map[string]Decoder
	encoders map[string]Encoder

	mtx *sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		decoders: make(map[string]Decoder),
		encoders: make(map[string]Encoder),
		mtx:      &sync.RWMutex{},
	}
}

// NormalizeExt turns ".WAV", "Wav" or "wav" into "wav".
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

func (r *Registry) RegisterDecoder(ext string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.decoders[NormalizeExt(ext)] = d
}

func (r *Registry) RegisterEncoder(ext string, e Encoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.encoders[NormalizeExt(ext)] = e
}

func (r *Registry) Decoder(ext string) (Decoder, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	d, ok := r.decoders[NormalizeExt(ext)]
	return d, ok
}

func (r *Registry) Encoder(ext string) (Encoder, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	e, ok := r.encoders[NormalizeExt(ext)]
	return e, ok
}

// DecoderFormats lists the registered input extensions in sorted order.
func (r *Registry) DecoderFormats() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	return sortedKeys(r.decoders)
}

// EncoderFormats lists the registered output extensions in sorted order.
func (r *Registry) EncoderFormats() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	return sortedKeys(r.encoders)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return keys
}
