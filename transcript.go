package soask

import (
	"context"
	"time"
)

// DefaultTranscriptPath is the file a run's transcript is written to.
const DefaultTranscriptPath = "llm_response.txt"

// Transcript is the persisted record of one pipeline run.
type Transcript struct {
	ID          string    `json:"id"`
	Question    string    `json:"question"`
	QuestionIDs []int64   `json:"questionIds"`
	Answers     AnswerSet `json:"answers"`
	Synthesis   string    `json:"synthesis"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate returns an error if the transcript contains invalid fields.
func (t *Transcript) Validate() error {
	if t.Question == "" {
		return Errorf(EINVALID, "transcript question required")
	}
	if len(t.QuestionIDs) == 0 {
		return Errorf(EINVALID, "transcript question ID required")
	}
	return nil
}

// TranscriptWriter persists transcripts.
type TranscriptWriter interface {
	WriteTranscript(ctx context.Context, t *Transcript) error
}

// TranscriptService represents a service for managing archived transcripts.
type TranscriptService interface {
	TranscriptWriter

	// FindTranscriptByID retrieves a transcript by ID.
	// Returns ENOTFOUND if transcript does not exist.
	FindTranscriptByID(ctx context.Context, id string) (*Transcript, error)

	// FindTranscripts retrieves transcripts matching the filter, newest first.
	FindTranscripts(ctx context.Context, filter TranscriptFilter) ([]*Transcript, error)
}

// TranscriptFilter represents a filter for FindTranscripts.
type TranscriptFilter struct {
	Question *string `json:"question"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// MultiTranscriptWriter returns a TranscriptWriter that writes to each
// writer in order, stopping at the first error.
func MultiTranscriptWriter(writers ...TranscriptWriter) TranscriptWriter {
	return multiTranscriptWriter(writers)
}

type multiTranscriptWriter []TranscriptWriter

func (m multiTranscriptWriter) WriteTranscript(ctx context.Context, t *Transcript) error {
	for _, w := range m {
		if err := w.WriteTranscript(ctx, t); err != nil {
			return err
		}
	}
	return nil
}
