// SPDX-License-Identifier: EPL-2.0

// Package formats wires every container codec into an audio.Registry.
package formats

import (
	"github.com/ik5/audenhance/audio"
	"github.com/ik5/audenhance/formats/aiff"
	"github.com/ik5/audenhance/formats/flac"
	"github.com/ik5/audenhance/formats/mp3"
	"github.com/ik5/audenhance/formats/vorbis"
	"github.com/ik5/audenhance/formats/wav"
)

// UploadExtensions lists the extensions accepted for upload, in the order
// they are shown to users.
var UploadExtensions = []string{"mp3", "wav", "ogg", "flac", "aiff"}

// NewRegistry returns a registry with all built-in decoders and the native
// wav and aiff encoders.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()

	for _, ext := range []string{"wav", "wave"} {
		reg.RegisterDecoder(ext, wav.Decoder{})
	}
	for _, ext := range []string{"aiff", "aif"} {
		reg.RegisterDecoder(ext, aiff.Decoder{})
	}
	reg.RegisterDecoder("mp3", mp3.Decoder{})
	for _, ext := range []string{"ogg", "oga"} {
		reg.RegisterDecoder(ext, vorbis.Decoder{})
	}
	reg.RegisterDecoder("flac", flac.Decoder{})

	reg.RegisterEncoder("wav", wav.Encoder{})
	reg.RegisterEncoder("aiff", aiff.Encoder{})

	return reg
}
