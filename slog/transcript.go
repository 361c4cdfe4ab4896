package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/soask"
)

// Ensure LoggingTranscriptWriter implements soask.TranscriptWriter.
var _ soask.TranscriptWriter = (*LoggingTranscriptWriter)(nil)

// LoggingTranscriptWriter wraps a TranscriptWriter with logging.
type LoggingTranscriptWriter struct {
	next   soask.TranscriptWriter
	name   string
	logger *slog.Logger
}

// NewLoggingTranscriptWriter creates a new LoggingTranscriptWriter. name
// identifies the destination in log records.
func NewLoggingTranscriptWriter(next soask.TranscriptWriter, name string, logger *slog.Logger) *LoggingTranscriptWriter {
	return &LoggingTranscriptWriter{next: next, name: name, logger: logger}
}

// WriteTranscript delegates to the wrapped writer and logs the operation.
func (w *LoggingTranscriptWriter) WriteTranscript(ctx context.Context, t *soask.Transcript) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("transcript write",
			"dest", w.name,
			"answers", len(t.Answers),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteTranscript(ctx, t)
}
