package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func newBufferLogger(level slog.Level) (*SlogLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLoggerLevels(t *testing.T) {
	ctx := context.Background()

	l, buf := newBufferLogger(slog.LevelDebug)
	l.Debug(ctx, "d")
	l.Info(ctx, "i")
	l.Warn(ctx, "w")
	l.Error(ctx, "e")

	out := buf.String()
	require.Contains(t, out, "level=DEBUG")
	require.Contains(t, out, "level=INFO")
	require.Contains(t, out, "level=WARN")
	require.Contains(t, out, "level=ERROR")
}

func TestSlogLoggerWith(t *testing.T) {
	l, buf := newBufferLogger(slog.LevelInfo)

	child := l.With("component", "session")
	child.Info(context.Background(), "refreshed", "username", "admin")

	out := buf.String()
	require.Contains(t, out, "component=session")
	require.Contains(t, out, "username=admin")
}
