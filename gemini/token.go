package gemini

import (
	"context"

	"github.com/fwojciec/soask"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ soask.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts prompt tokens offline with the Gemini tokenizer.
// The count is an estimate for other backends.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a new TokenCounter for the given model.
// An empty model selects DefaultModel.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = DefaultModel
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, soask.Errorf(soask.EINVALID, "no tokenizer for model %q: %v", model, err)
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens counts the tokens a user turn containing text would use.
func (tc *TokenCounter) CountTokens(_ context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	result, err := tc.tok.CountTokens([]*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}, nil)
	if err != nil {
		return 0, err
	}

	return int(result.TotalTokens), nil
}
