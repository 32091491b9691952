// SPDX-License-Identifier: EPL-2.0

package convert

import (
	"slices"

	"github.com/ik5/audenhance/audio"
)

// outputs maps every supported output format to its MIME type and the
// ffmpeg codec arguments used when it cannot be written natively.
var outputs = map[string]struct {
	mime  string
	codec []string
}{
	"wav":  {"audio/wav", []string{"-codec:a", "pcm_s16le"}},
	"mp3":  {"audio/mpeg", []string{"-codec:a", "libmp3lame", "-b:a", "192k"}},
	"ogg":  {"audio/ogg", []string{"-codec:a", "libvorbis", "-q:a", "5"}},
	"flac": {"audio/flac", []string{"-codec:a", "flac"}},
	"aiff": {"audio/aiff", []string{"-codec:a", "pcm_s16be"}},
}

// DefaultFormat is the output format when none is chosen.
const DefaultFormat = "wav"

// MIMEType returns the content type for an output format, or
// application/octet-stream for anything unknown.
func MIMEType(format string) string {
	if out, ok := outputs[audio.NormalizeExt(format)]; ok {
		return out.mime
	}

	return "application/octet-stream"
}

// Formats lists the supported output formats, sorted.
func Formats() []string {
	formats := make([]string, 0, len(outputs))
	for f := range outputs {
		formats = append(formats, f)
	}
	slices.Sort(formats)

	return formats
}

// Supported reports whether format can be produced.
func Supported(format string) bool {
	_, ok := outputs[audio.NormalizeExt(format)]
	return ok
}
