package soask

import "context"

// SynthesisRequest carries everything needed to synthesize one answer.
type SynthesisRequest struct {
	Question string
	Answers  AnswerSet
}

// Validate returns an error if the request contains invalid fields.
func (r *SynthesisRequest) Validate() error {
	if r.Question == "" {
		return Errorf(EINVALID, "question required")
	}
	if len(r.Answers) == 0 {
		return Errorf(EINVALID, "at least one answer required")
	}
	return nil
}

// Prompt returns the single prompt string sent to the language model.
func (r *SynthesisRequest) Prompt() string {
	return BuildPrompt(r.Question, r.Answers)
}

// SynthesisFunc is called with the accumulated answer every time it grows.
// Successive calls always receive longer prefixes of the final text.
type SynthesisFunc func(accumulated string)

// Synthesizer produces a simplified answer from a question and its answers.
type Synthesizer interface {
	// Synthesize streams the answer, calling fn as text accumulates, and
	// returns the full text once the response ends. Returns EUPSTREAM when
	// the service rejects the request.
	Synthesize(ctx context.Context, req *SynthesisRequest, fn SynthesisFunc) (string, error)
}
