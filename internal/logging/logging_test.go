// SPDX-License-Identifier: EPL-2.0

package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()

	require.NoError(t, Configure(logger, "debug", "json", &buf))
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger.WithFields(logrus.Fields{"function": "TestConfigure_JSON"}).Debug("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "TestConfigure_JSON", entry["function"])
}

func TestConfigure_TextFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()

	require.NoError(t, Configure(logger, "warn", "", &buf))

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestConfigure_Errors(t *testing.T) {
	logger := logrus.New()

	assert.Error(t, Configure(logger, "loud", "text", nil))
	assert.ErrorIs(t, Configure(logger, "info", "xml", nil), ErrUnknownFormat)
}
