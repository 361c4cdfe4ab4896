package mock

import (
	"context"

	"github.com/fwojciec/soask"
)

var _ soask.AnswerFetcher = (*AnswerFetcher)(nil)

// AnswerFetcher is a mock implementation of soask.AnswerFetcher.
type AnswerFetcher struct {
	FetchAnswersFn func(ctx context.Context, questionID int64, limit int) ([]*soask.Answer, error)
}

func (f *AnswerFetcher) FetchAnswers(ctx context.Context, questionID int64, limit int) ([]*soask.Answer, error) {
	return f.FetchAnswersFn(ctx, questionID, limit)
}
