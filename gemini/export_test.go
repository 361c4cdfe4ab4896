package gemini

import (
	"context"
	"iter"

	"google.golang.org/genai"
)

// NewSynthesizerWithStream creates a Synthesizer backed by stream instead of
// a live client.
func NewSynthesizerWithStream(model string, stream func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error]) *Synthesizer {
	s := NewSynthesizer(nil, model)
	s.stream = stream
	return s
}
