// SPDX-License-Identifier: EPL-2.0

// Package convert re-encodes finished files into another container.
// wav and aiff are written natively through the codec registry; every
// other target goes through ffmpeg.
package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ik5/audenhance/audio"
	"github.com/ik5/audenhance/internal/outfile"
)

// Converter picks the native path when both ends have a registered codec
// and falls back to FFmpeg otherwise.
type Converter struct {
	Registry *audio.Registry
	FFmpeg   Transcoder
}

// New returns a converter using reg for native codecs and ffmpeg for the
// rest. Either may be nil.
func New(reg *audio.Registry, ffmpeg Transcoder) *Converter {
	return &Converter{Registry: reg, FFmpeg: ffmpeg}
}

// Convert writes srcPath re-encoded as format next to the source, with
// the extension swapped, and returns the new path. When that name is
// taken a _N suffix is added; nothing existing is overwritten. A source
// already in format is returned as is.
func (c *Converter) Convert(ctx context.Context, srcPath, format string) (string, error) {
	format = audio.NormalizeExt(format)
	if !Supported(format) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	srcExt := audio.NormalizeExt(filepath.Ext(srcPath))
	if srcExt == format {
		return srcPath, nil
	}

	log := logrus.WithFields(logrus.Fields{
		"function": "Converter.Convert",
		"src":      srcPath,
		"format":   format,
	})

	var (
		dec          audio.Decoder
		enc          audio.Encoder
		okDec, okEnc bool
	)
	if c.Registry != nil {
		dec, okDec = c.Registry.Decoder(srcExt)
		enc, okEnc = c.Registry.Encoder(format)
	}
	native := okDec && okEnc

	if !native && c.FFmpeg == nil {
		return "", ErrFFmpegNotFound
	}

	stem := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	out, err := outfile.Create(filepath.Dir(srcPath), stem+"."+format)
	if err != nil {
		return "", err
	}
	dst := out.Name()

	if native {
		log.WithField("dst", dst).Debug("Converting natively")
		err = convertNative(srcPath, out, dec, enc)
	} else {
		out.Close()
		log.WithField("dst", dst).Debug("Converting with ffmpeg")
		err = c.FFmpeg.Transcode(ctx, srcPath, dst, format)
	}
	if err != nil {
		_ = os.Remove(dst)
		return "", err
	}

	return dst, nil
}

// convertNative decodes srcPath and encodes it into out, closing out. A
// codec panic is returned as an error.
func convertNative(srcPath string, out *os.File, dec audio.Decoder, enc audio.Encoder) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrCodecPanic, srcPath, r)
		}
	}()
	defer out.Close()

	in, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	defer in.Close()

	src, err := dec.Decode(in)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", srcPath, err)
	}
	defer src.Close()

	buf, err := audio.ReadAll(src, 0)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", srcPath, err)
	}

	if err := enc.Encode(out, buf); err != nil {
		return fmt.Errorf("encoding %s: %w", out.Name(), err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
