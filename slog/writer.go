package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docdig"
)

// Ensure LoggingWriter implements docdig.Writer.
var _ docdig.Writer = (*LoggingWriter)(nil)

// LoggingWriter wraps a Writer with debug logging.
type LoggingWriter struct {
	next   docdig.Writer
	logger *slog.Logger
}

// NewLoggingWriter creates a new LoggingWriter.
func NewLoggingWriter(next docdig.Writer, logger *slog.Logger) *LoggingWriter {
	return &LoggingWriter{next: next, logger: logger}
}

// Write delegates to the wrapped writer and logs the operation.
func (w *LoggingWriter) Write(ctx context.Context, req docdig.WriteRequest) (res docdig.WriteResult, err error) {
	defer func(begin time.Time) {
		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelError
		}
		w.logger.Log(ctx, level, "write",
			"path", req.Path,
			"format", string(req.Format),
			"unchanged", res.Unchanged,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.Write(ctx, req)
}
