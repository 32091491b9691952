// SPDX-License-Identifier: EPL-2.0

package audenhance

import (
	"errors"
	"fmt"
)

var (
	ErrNoOutputDir       = errors.New("output directory is required")
	ErrInvalidSampleRate = errors.New("sample rate out of range")
	ErrEmptyAudio        = errors.New("decoded audio has no samples")
	ErrPanicked          = errors.New("recovered from panic")
)

// Stage names the pipeline step a file failed in.
type Stage string

const (
	StageUpload  Stage = "upload"
	StageDecode  Stage = "decode"
	StageEnhance Stage = "enhance"
	StageEncode  Stage = "encode"
	StageConvert Stage = "convert"
)

// StageError ties a failure to the file and the stage it happened in.
type StageError struct {
	Stage Stage
	Name  string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", e.Name, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// StageOf returns the stage recorded in err, or "" when err carries none.
func StageOf(err error) Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}

	return ""
}
