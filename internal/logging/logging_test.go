package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithWriter_RenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, slog.LevelInfo)

	logger.Error("rename failed", "error", errors.New("exit status 2"))
	logger.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, `err="exit status 2"`)
	assert.NotContains(t, out, "hidden")
}
