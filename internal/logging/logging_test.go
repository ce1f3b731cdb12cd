package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestInitializeWriterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	InitializeWriter(Config{Level: "warn", Format: "json"}, &buf)
	defer InitializeDefault()

	Info("hidden")
	Warn("shown", zap.String("ingredient", "flour"))
	Sync()

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"ingredient":"flour"`)
}

func TestInvalidLevelFallsBackToWarn(t *testing.T) {
	var buf bytes.Buffer
	InitializeWriter(Config{Level: "chatty", Format: "json"}, &buf)
	defer InitializeDefault()

	Info("quiet")
	Error("loud")
	Sync()

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}

func TestNamedLogger(t *testing.T) {
	var buf bytes.Buffer
	InitializeWriter(Config{Level: "debug", Format: "json"}, &buf)
	defer InitializeDefault()

	Named("editor").Debug("line added")
	Sync()

	assert.Contains(t, buf.String(), `"logger":"editor"`)
}
