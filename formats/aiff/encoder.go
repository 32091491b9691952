// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"

	"github.com/ik5/audenhance/audio"
)

// Encoder writes mono 16-bit AIFF.
type Encoder struct{}

func (Encoder) Encode(w io.WriteSeeker, buf *audio.Buffer) error {
	if buf.SampleRate <= 0 {
		return audio.ErrInvalidSampleRate
	}

	enc := aiff.NewEncoder(w, buf.SampleRate, 16, 1)
	if err := enc.Write(buf.PCM(16)); err != nil {
		return fmt.Errorf("writing aiff samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing aiff: %w", err)
	}

	return nil
}
