// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio with
// github.com/hajimehoshi/go-mp3.
//
// The Source is always stereo at the file's native rate; fold it with
// audio.NewMonoMixer or let audio.ReadAll do it. Encoding MP3 is left to
// the convert package, which shells out to ffmpeg.
package mp3
