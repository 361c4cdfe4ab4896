package mock

import (
	"context"

	"github.com/fwojciec/soask"
)

var _ soask.Synthesizer = (*Synthesizer)(nil)

// Synthesizer is a mock implementation of soask.Synthesizer.
type Synthesizer struct {
	SynthesizeFn func(ctx context.Context, req *soask.SynthesisRequest, fn soask.SynthesisFunc) (string, error)
}

func (s *Synthesizer) Synthesize(ctx context.Context, req *soask.SynthesisRequest, fn soask.SynthesisFunc) (string, error) {
	return s.SynthesizeFn(ctx, req, fn)
}
