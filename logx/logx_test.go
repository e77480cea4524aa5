package logx_test

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/localrivet/mcpcore/logx"
	"github.com/stretchr/testify/assert"
)

func newBufferedLogger(buf *bytes.Buffer) *logx.DefaultLogger {
	return logx.NewStandardLoggerAdapter(log.New(buf, "", 0))
}

func TestDefaultLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferedLogger(&buf)
	l.SetLevel(logx.LevelWarn)

	l.Debug("debug message")
	l.Info("info message")
	assert.Empty(t, buf.String())

	l.Warn("warn message")
	assert.True(t, strings.Contains(buf.String(), "WARN: warn message"))
}

func TestDefaultLoggerErrorAlwaysLogs(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferedLogger(&buf)
	l.SetLevel(logx.LevelError)

	l.Info("should not appear")
	l.Error("boom: %s", "reason")

	out := buf.String()
	assert.False(t, strings.Contains(out, "should not appear"))
	assert.True(t, strings.Contains(out, "ERROR: boom: reason"))
}

func TestNopLoggerDoesNotPanic(t *testing.T) {
	var l logx.Logger = logx.NopLogger{}
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x")
}
