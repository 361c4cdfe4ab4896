package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/soask"
)

// Ensure LoggingSynthesizer implements soask.Synthesizer.
var _ soask.Synthesizer = (*LoggingSynthesizer)(nil)

// LoggingSynthesizer wraps a Synthesizer with logging.
type LoggingSynthesizer struct {
	next   soask.Synthesizer
	logger *slog.Logger
}

// NewLoggingSynthesizer creates a new LoggingSynthesizer.
func NewLoggingSynthesizer(next soask.Synthesizer, logger *slog.Logger) *LoggingSynthesizer {
	return &LoggingSynthesizer{next: next, logger: logger}
}

// Synthesize delegates to the wrapped synthesizer and logs the answer size,
// the number of streamed updates and the time to the first one.
func (s *LoggingSynthesizer) Synthesize(ctx context.Context, req *soask.SynthesisRequest, fn soask.SynthesisFunc) (answer string, err error) {
	var (
		updates int
		first   time.Duration
	)
	begin := time.Now()
	defer func() {
		s.logger.Info("synthesis",
			"answers", len(req.Answers),
			"bytes", len(answer),
			"updates", updates,
			"first", first,
			"duration", time.Since(begin),
			"err", err,
		)
	}()

	return s.next.Synthesize(ctx, req, func(accumulated string) {
		if updates == 0 {
			first = time.Since(begin)
		}
		updates++
		if fn != nil {
			fn(accumulated)
		}
	})
}
