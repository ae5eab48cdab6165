package logging

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.level.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		ok       bool
	}{
		{"debug", LevelDebug, true},
		{"DEBUG", LevelDebug, true},
		{" info ", LevelInfo, true},
		{"warning", LevelWarn, true},
		{"Error", LevelError, true},
		{"verbose", LevelInfo, false},
		{"", LevelInfo, false},
	}

	for _, tt := range tests {
		got, ok := ParseLevel(tt.input)
		assert.Equal(t, tt.expected, got, tt.input)
		assert.Equal(t, tt.ok, ok, tt.input)
	}
}

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelDebug, Output: &buf, Prefix: "test", Clock: fixedClock})

	l.WithComponent("view").WithField("doc", 7).Debug("render", "fragments", 3, "dangling")

	assert.Equal(t,
		"2024-03-01T12:00:00.000 [DEBUG] test: render fragments=3 dangling=? {component=view, doc=7}\n",
		buf.String())
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelWarn, Output: &buf, Clock: fixedClock})
	child := l.WithComponent("history")

	child.Info("dropped")
	assert.Empty(t, buf.String())
	assert.False(t, child.Enabled(LevelInfo))

	l.SetLevel(LevelInfo)
	child.Info("kept")
	assert.Contains(t, buf.String(), "[INFO] kept")
	assert.Equal(t, LevelInfo, child.Level())
}

func TestDiscard(t *testing.T) {
	l := Discard()
	assert.False(t, l.Enabled(LevelError))
	l.Error("nothing")
}
