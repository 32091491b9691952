// SPDX-License-Identifier: EPL-2.0

package audenhance

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDownloadName(t *testing.T) {
	tests := []struct {
		name   string
		format string
		want   string
	}{
		{"talk.mp3", "wav", "final_talk.wav"},
		{"My Interview.final.ogg", "mp3", "final_My Interview.final.mp3"},
		{`C:\Users\me\voice.wav`, "wav", "final_voice.wav"},
		{"../../etc/passwd", "wav", "final_passwd.wav"},
		{"wëird*name?.flac", "aiff", "final_w_ird_name_.aiff"},
		{"", "wav", "enhanced_audio.wav"},
		{".wav", "ogg", "enhanced_audio.ogg"},
		{"   ", "wav", "enhanced_audio.wav"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DownloadName(tt.name, tt.format))
		})
	}
}

func TestStageError(t *testing.T) {
	inner := errors.New("bad header")
	err := error(&StageError{Stage: StageDecode, Name: "x.wav", Err: inner})

	assert.EqualError(t, err, "x.wav: decode failed: bad header")
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, StageDecode, StageOf(err))
	assert.Equal(t, Stage(""), StageOf(inner))
}
