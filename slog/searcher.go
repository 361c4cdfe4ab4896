// Package slog provides logging decorators for soask services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/soask"
)

// Ensure LoggingSearcher implements soask.QuestionSearcher.
var _ soask.QuestionSearcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a QuestionSearcher with logging.
type LoggingSearcher struct {
	next   soask.QuestionSearcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next soask.QuestionSearcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// SearchQuestions delegates to the wrapped searcher and logs the operation.
func (s *LoggingSearcher) SearchQuestions(ctx context.Context, query string, opts soask.SearchOptions) (questions []soask.QuestionCandidate, err error) {
	defer func(begin time.Time) {
		s.logger.Info("question search",
			"query", query,
			"limit", opts.Limit,
			"accepted", opts.AcceptedOnly,
			"count", len(questions),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SearchQuestions(ctx, query, opts)
}

// Ensure LoggingAnswerFetcher implements soask.AnswerFetcher.
var _ soask.AnswerFetcher = (*LoggingAnswerFetcher)(nil)

// LoggingAnswerFetcher wraps an AnswerFetcher with logging.
type LoggingAnswerFetcher struct {
	next   soask.AnswerFetcher
	logger *slog.Logger
}

// NewLoggingAnswerFetcher creates a new LoggingAnswerFetcher.
func NewLoggingAnswerFetcher(next soask.AnswerFetcher, logger *slog.Logger) *LoggingAnswerFetcher {
	return &LoggingAnswerFetcher{next: next, logger: logger}
}

// FetchAnswers delegates to the wrapped fetcher and logs the operation.
func (f *LoggingAnswerFetcher) FetchAnswers(ctx context.Context, questionID int64, limit int) (answers []*soask.Answer, err error) {
	defer func(begin time.Time) {
		f.logger.Info("answer fetch",
			"question", questionID,
			"limit", limit,
			"count", len(answers),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchAnswers(ctx, questionID, limit)
}
