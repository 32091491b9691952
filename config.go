// SPDX-License-Identifier: EPL-2.0

package audenhance

import (
	"fmt"
	"time"

	"github.com/ik5/audenhance/audio"
	"github.com/ik5/audenhance/chunk"
	"github.com/ik5/audenhance/convert"
)

// Config holds every path and knob a Pipeline uses. Nothing is read from
// the environment here; front-ends fill it in.
type Config struct {
	// ChunkDuration is the length of each enhancement chunk.
	ChunkDuration time.Duration
	// SampleRate resamples decoded audio when positive, up to
	// audio.MaxSampleRate; zero keeps the file's own rate.
	SampleRate int
	// OutputDir receives the finished files.
	OutputDir string
	// TempDir is where per-batch run directories are created. Empty means
	// the OS default.
	TempDir string
	// Format is the output container: wav, aiff, mp3, ogg or flac.
	Format string
}

func DefaultConfig() Config {
	return Config{
		ChunkDuration: chunk.DefaultDuration,
		OutputDir:     "output",
		Format:        convert.DefaultFormat,
	}
}

func (c Config) Validate() error {
	if err := chunk.Validate(c.ChunkDuration); err != nil {
		return fmt.Errorf("%w: %v", err, c.ChunkDuration)
	}
	if c.SampleRate < 0 || c.SampleRate > audio.MaxSampleRate {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, c.SampleRate)
	}
	if c.OutputDir == "" {
		return ErrNoOutputDir
	}
	if !convert.Supported(c.Format) {
		return fmt.Errorf("%w: %q", convert.ErrUnsupportedFormat, c.Format)
	}

	return nil
}
