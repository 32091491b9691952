// SPDX-License-Identifier: EPL-2.0

package audenhance

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// fallbackStem names downloads whose upload had no usable name.
const fallbackStem = "enhanced_audio"

// Result describes the outcome for one file. Err is nil on success and a
// *StageError otherwise.
type Result struct {
	Name         string
	OutputPath   string
	Format       string
	MIMEType     string
	DownloadName string
	Chunks       int
	Duration     time.Duration
	Err          error
}

func (r Result) OK() bool { return r.Err == nil }

// DownloadName is the file name offered for download: final_<stem>.<ext>,
// or enhanced_audio.<ext> when name has no usable stem.
func DownloadName(name, format string) string {
	stem := sanitizeStem(name)
	if stem == "" {
		return fallbackStem + "." + format
	}

	return "final_" + stem + "." + format
}

// sanitizeStem keeps the base name without extension and replaces
// anything outside a conservative file name alphabet.
func sanitizeStem(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	base := filepath.Base(strings.TrimSpace(name))
	if base == "." || base == "/" {
		return ""
	}

	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.' || r == ' ':
			return r
		}
		return '_'
	}, stem)

	return strings.Trim(stem, " .")
}

// Upload is one file handed to ProcessBatch. Open is called once.
type Upload struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// FileUpload reads the upload from disk.
func FileUpload(path string) Upload {
	return Upload{
		Name: filepath.Base(path),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// BytesUpload serves the upload from memory.
func BytesUpload(name string, data []byte) Upload {
	return Upload{
		Name: name,
		Open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
	}
}

// Observer is told about batch progress. Calls come from the goroutine
// running ProcessBatch, in order.
type Observer interface {
	FileStarted(index, total int, name string)
	ChunkDone(index int, name string, done, chunks int)
	FileFinished(index int, res Result)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) FileStarted(int, int, string)    {}
func (NopObserver) ChunkDone(int, string, int, int) {}
func (NopObserver) FileFinished(int, Result)        {}
