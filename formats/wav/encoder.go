// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"

	"github.com/ik5/audenhance/audio"
)

// Encoder writes mono integer PCM WAV. A zero BitDepth means 16-bit.
type Encoder struct {
	BitDepth int
}

func (e Encoder) Encode(w io.WriteSeeker, buf *audio.Buffer) error {
	if buf.SampleRate <= 0 {
		return audio.ErrInvalidSampleRate
	}

	depth := e.BitDepth
	if depth == 0 {
		depth = 16
	}
	switch depth {
	case 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, depth)
	}

	enc := wav.NewEncoder(w, buf.SampleRate, depth, 1, wavFormatPCM)
	if err := enc.Write(buf.PCM(depth)); err != nil {
		return fmt.Errorf("writing WAV samples: %w", err)
	}

	// Close patches the RIFF and data sizes.
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing WAV: %w", err)
	}

	return nil
}
