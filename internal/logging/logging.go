// SPDX-License-Identifier: EPL-2.0

// Package logging applies the command-line log settings to a logrus
// logger.
package logging

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

var ErrUnknownFormat = errors.New("unknown log format")

// Formats accepted by Configure.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Configure sets level, formatter and output on logger. out may be nil to
// keep the current writer.
func Configure(logger *logrus.Logger, level, format string, out io.Writer) error {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05.000",
		})
	case FormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	logger.SetLevel(lvl)
	if out != nil {
		logger.SetOutput(out)
	}

	return nil
}
