package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/soask"
	"github.com/fwojciec/soask/mock"
	soslog "github.com/fwojciec/soask/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSearcher_SearchQuestions(t *testing.T) {
	t.Parallel()

	t.Run("logs query, count and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.QuestionSearcher{
			SearchQuestionsFn: func(ctx context.Context, query string, opts soask.SearchOptions) ([]soask.QuestionCandidate, error) {
				return []soask.QuestionCandidate{{ID: 42, Rank: 1}, {ID: 17, Rank: 2}}, nil
			},
		}

		searcher := soslog.NewLoggingSearcher(inner, logger)
		got, err := searcher.SearchQuestions(context.Background(), "reverse list", soask.SearchOptions{Limit: 2})

		require.NoError(t, err)
		assert.Len(t, got, 2)
		output := buf.String()
		assert.Contains(t, output, "question search")
		assert.Contains(t, output, `query="reverse list"`)
		assert.Contains(t, output, "limit=2")
		assert.Contains(t, output, "count=2")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.QuestionSearcher{
			SearchQuestionsFn: func(ctx context.Context, query string, opts soask.SearchOptions) ([]soask.QuestionCandidate, error) {
				return nil, errors.New("network error")
			},
		}

		searcher := soslog.NewLoggingSearcher(inner, logger)
		_, err := searcher.SearchQuestions(context.Background(), "q", soask.SearchOptions{Limit: 1})

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="network error"`)
	})
}

func TestLoggingAnswerFetcher_FetchAnswers(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.AnswerFetcher{
		FetchAnswersFn: func(ctx context.Context, questionID int64, limit int) ([]*soask.Answer, error) {
			return []*soask.Answer{{ID: 1, QuestionID: questionID}}, nil
		},
	}

	fetcher := soslog.NewLoggingAnswerFetcher(inner, logger)
	got, err := fetcher.FetchAnswers(context.Background(), 42, 3)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(42), got[0].QuestionID)
	output := buf.String()
	assert.Contains(t, output, "answer fetch")
	assert.Contains(t, output, "question=42")
	assert.Contains(t, output, "count=1")
}
