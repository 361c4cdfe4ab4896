package mock

import (
	"context"

	"github.com/fwojciec/soask"
)

var _ soask.QuestionSearcher = (*QuestionSearcher)(nil)

// QuestionSearcher is a mock implementation of soask.QuestionSearcher.
type QuestionSearcher struct {
	SearchQuestionsFn func(ctx context.Context, query string, opts soask.SearchOptions) ([]soask.QuestionCandidate, error)
}

func (s *QuestionSearcher) SearchQuestions(ctx context.Context, query string, opts soask.SearchOptions) ([]soask.QuestionCandidate, error) {
	return s.SearchQuestionsFn(ctx, query, opts)
}
