package soask

import (
	"context"
	"sort"
)

// DefaultMaxAnswers is the default size of an AnswerSet.
const DefaultMaxAnswers = 3

// Answer represents a single answer to a question.
type Answer struct {
	ID         int64 `json:"id"`
	QuestionID int64 `json:"questionId"`
	Score      int   `json:"score"`
	IsAccepted bool  `json:"isAccepted"`

	// RawBody is the answer body as returned by the API (HTML).
	RawBody string `json:"rawBody"`

	// CleanedText is RawBody rendered as plain text by a Normalizer.
	CleanedText string `json:"cleanedText"`
}

// AnswerFetcher retrieves answers for a question.
type AnswerFetcher interface {
	// FetchAnswers returns up to limit answers for the question, highest
	// score first. A question without answers yields an empty slice.
	FetchAnswers(ctx context.Context, questionID int64, limit int) ([]*Answer, error)
}

// AnswerSet is an ordered sequence of answers, highest score first.
type AnswerSet []*Answer

// NewAnswerSet orders answers by descending score and keeps the first max.
// Answers with equal scores keep their relative order. The input slice is
// not modified. A max below 1 keeps every answer.
func NewAnswerSet(answers []*Answer, max int) AnswerSet {
	set := make(AnswerSet, len(answers))
	copy(set, answers)
	sort.SliceStable(set, func(i, j int) bool {
		return set[i].Score > set[j].Score
	})
	if max > 0 && len(set) > max {
		set = set[:max]
	}
	return set
}

// Sorted reports whether every answer scores at least as high as the next.
func (s AnswerSet) Sorted() bool {
	for i := 1; i < len(s); i++ {
		if s[i-1].Score < s[i].Score {
			return false
		}
	}
	return true
}

// Scores returns the vote scores of the set in order.
func (s AnswerSet) Scores() []int {
	scores := make([]int, 0, len(s))
	for _, a := range s {
		scores = append(scores, a.Score)
	}
	return scores
}
