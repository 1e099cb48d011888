package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/felixgeelhaar/mote/internal/ports"
)

func TestConsoleLogger(t *testing.T) {
	t.Parallel()

	t.Run("filters below minimum level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewConsoleLogger(WithOutput(&buf), WithLevel(ports.LevelWarn))

		logger.Debug("debug message")
		logger.Info("info message")
		logger.Warn("warn message")

		assert.NotContains(t, buf.String(), "debug message")
		assert.NotContains(t, buf.String(), "info message")
		assert.Contains(t, buf.String(), "warn message")
	})

	t.Run("formats fields as key=value", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewConsoleLogger(WithOutput(&buf), WithLevel(ports.LevelDebug))

		logger.Warn("failed to store", ports.F("path", "a.txt"))

		assert.Contains(t, buf.String(), "warning: failed to store path=a.txt")
	})

	t.Run("with adds persistent fields", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewConsoleLogger(WithOutput(&buf), WithLevel(ports.LevelDebug))

		child := logger.With(ports.F("component", "scanner"))
		child.Error("boom")

		assert.Contains(t, buf.String(), "component=scanner")
	})

	t.Run("set level changes filtering", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewConsoleLogger(WithOutput(&buf), WithLevel(ports.LevelError))

		logger.SetLevel(ports.LevelDebug)
		logger.Debug("now visible")

		assert.Contains(t, buf.String(), "now visible")
		assert.Equal(t, ports.LevelDebug, logger.Level())
	})
}

func TestNopLogger(t *testing.T) {
	t.Parallel()

	logger := NewNopLogger()
	logger.Debug("a")
	logger.Info("b")
	logger.Warn("c")
	logger.Error("d")
	assert.Same(t, ports.Logger(logger), logger.With(ports.F("k", "v")))
}
