// Package gemini implements soask.Synthesizer and soask.TokenCounter using
// Google Gemini.
package gemini

import (
	"context"
	"iter"
	"strings"

	"github.com/fwojciec/soask"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Synthesizer implements soask.Synthesizer at compile time.
var _ soask.Synthesizer = (*Synthesizer)(nil)

// streamFunc matches genai's Models.GenerateContentStream.
type streamFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error]

// Synthesizer implements soask.Synthesizer with a streamed Gemini completion.
type Synthesizer struct {
	stream streamFunc
	model  string
}

// NewSynthesizer creates a new Synthesizer. An empty model selects DefaultModel.
func NewSynthesizer(client *genai.Client, model string) *Synthesizer {
	s := &Synthesizer{model: model}
	if client != nil {
		s.stream = client.Models.GenerateContentStream
	}
	if s.model == "" {
		s.model = DefaultModel
	}
	return s
}

// Synthesize sends the prompt as a single user turn and accumulates the
// streamed reply, calling fn with the text gathered so far.
func (s *Synthesizer) Synthesize(ctx context.Context, req *soask.SynthesisRequest, fn soask.SynthesisFunc) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	if s.stream == nil {
		return "", soask.Errorf(soask.EINTERNAL, "gemini client not configured")
	}

	contents := []*genai.Content{
		genai.NewContentFromText(req.Prompt(), genai.RoleUser),
	}

	var answer strings.Builder
	for resp, err := range s.stream(ctx, s.model, contents, BuildConfig()) {
		if err != nil {
			if answer.Len() == 0 {
				return "", soask.Errorf(soask.EUPSTREAM, "gemini: %v", err)
			}
			return answer.String(), err
		}
		if resp == nil {
			continue
		}

		delta := resp.Text()
		if delta == "" {
			continue
		}
		answer.WriteString(delta)
		if fn != nil {
			fn(answer.String())
		}
	}

	return answer.String(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		Temperature: &temp,
	}
}
