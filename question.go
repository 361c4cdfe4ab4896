package soask

import "context"

// DefaultSite is the Stack Exchange site searched when none is configured.
const DefaultSite = "stackoverflow"

// QuestionCandidate is a question returned by a relevance-ranked search.
type QuestionCandidate struct {
	ID         int64  `json:"id"`
	Rank       int    `json:"rank"`
	Title      string `json:"title"`
	Link       string `json:"link"`
	Score      int    `json:"score"`
	IsAnswered bool   `json:"isAnswered"`
}

// SearchOptions controls a question search.
type SearchOptions struct {
	// Limit is the maximum number of candidates returned. Must be >= 1.
	Limit int

	// AcceptedOnly restricts results to questions with an accepted answer.
	AcceptedOnly bool

	// WithBody asks the API to include question bodies.
	WithBody bool
}

// Validate returns an error if the options contain invalid fields.
func (o SearchOptions) Validate() error {
	if o.Limit < 1 {
		return Errorf(EINVALID, "search limit must be at least 1")
	}
	return nil
}

// QuestionSearcher finds questions relevant to a free-text query.
type QuestionSearcher interface {
	// SearchQuestions returns candidates in relevance order.
	// Upstream failures degrade to an empty result rather than an error.
	SearchQuestions(ctx context.Context, query string, opts SearchOptions) ([]QuestionCandidate, error)
}

// QuestionIDs returns the identifiers of candidates in order.
func QuestionIDs(candidates []QuestionCandidate) []int64 {
	ids := make([]int64, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.ID)
	}
	return ids
}
