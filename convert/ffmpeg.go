// SPDX-License-Identifier: EPL-2.0

package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ik5/audenhance/audio"
)

// Transcoder turns the file at src into dst encoded as format.
type Transcoder interface {
	Transcode(ctx context.Context, src, dst, format string) error
}

// FFmpeg shells out to the ffmpeg binary. An empty Binary means "ffmpeg"
// from PATH.
type FFmpeg struct {
	Binary string
}

func (f FFmpeg) binary() string {
	if f.Binary == "" {
		return "ffmpeg"
	}

	return f.Binary
}

// Available resolves the binary, returning ErrFFmpegNotFound when it is
// missing.
func (f FFmpeg) Available() (string, error) {
	path, err := exec.LookPath(f.binary())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFFmpegNotFound, err)
	}

	return path, nil
}

// Args builds the ffmpeg command line for one conversion.
func Args(src, dst, format string) ([]string, error) {
	out, ok := outputs[audio.NormalizeExt(format)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	args := []string{"-y", "-i", src, "-vn", "-map_metadata", "-1"}
	args = append(args, out.codec...)
	args = append(args, "-loglevel", "error", dst)

	return args, nil
}

func (f FFmpeg) Transcode(ctx context.Context, src, dst, format string) error {
	bin, err := f.Available()
	if err != nil {
		return err
	}

	args, err := Args(src, dst, format)
	if err != nil {
		return err
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stderr = &stderr

	logrus.WithFields(logrus.Fields{
		"function": "FFmpeg.Transcode",
		"src":      src,
		"dst":      dst,
		"format":   format,
	}).Debug("Running ffmpeg")

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("ffmpeg %s: %w", src, ctxErr)
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("ffmpeg %s: %w: %s", src, err, strings.TrimSpace(stderr.String()))
		}

		return fmt.Errorf("ffmpeg %s: %w", src, err)
	}

	return nil
}
