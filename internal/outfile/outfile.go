// SPDX-License-Identifier: EPL-2.0

// Package outfile claims output file names without racing other writers.
package outfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// maxAttempts bounds the stem_N probing.
const maxAttempts = 10000

var ErrNoFreeName = errors.New("no free output name")

// Create opens a new file dir/name for writing, or dir/stem_N.ext for the
// first N whose name is not taken. The file is created with O_EXCL, so two
// concurrent callers never get the same path.
func Create(dir, name string) (*os.File, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	candidate := filepath.Join(dir, name)
	for i := 2; i <= maxAttempts; i++ {
		f, err := os.OpenFile(candidate, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w", err)
		}

		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, i, ext))
	}

	return nil, fmt.Errorf("%w: %s", ErrNoFreeName, filepath.Join(dir, name))
}
