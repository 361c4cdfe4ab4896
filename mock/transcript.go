package mock

import (
	"context"

	"github.com/fwojciec/soask"
)

var _ soask.TranscriptWriter = (*TranscriptWriter)(nil)

// TranscriptWriter is a mock implementation of soask.TranscriptWriter.
type TranscriptWriter struct {
	WriteTranscriptFn func(ctx context.Context, t *soask.Transcript) error
}

func (w *TranscriptWriter) WriteTranscript(ctx context.Context, t *soask.Transcript) error {
	return w.WriteTranscriptFn(ctx, t)
}
