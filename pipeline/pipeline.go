// Package pipeline runs one question through search, answer retrieval,
// normalization, synthesis, presentation and persistence.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/soask"
)

// Pipeline holds the collaborators and limits for a run. Each field is set
// at construction; a Pipeline carries no state between runs.
type Pipeline struct {
	Searcher    soask.QuestionSearcher
	Answers     soask.AnswerFetcher
	Normalizer  soask.Normalizer
	Synthesizer soask.Synthesizer
	Presenter   soask.Presenter
	Transcripts soask.TranscriptWriter

	// TokenCounter, if set, reports the prompt size at debug level.
	TokenCounter soask.TokenCounter

	Logger *slog.Logger

	// RunID becomes the transcript ID.
	RunID string

	// OutputPath is reported to the presenter once the transcript is saved.
	OutputPath string

	// QuestionCount is how many matched questions contribute answers.
	// Above 1 the search is restricted to questions with an accepted answer.
	QuestionCount int

	// AnswersPerQuestion caps the answers taken from each question.
	AnswersPerQuestion int

	// MaxAnswers caps the merged answer set.
	MaxAnswers int

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Run answers question and returns the persisted transcript.
//
// Returns ENOMATCH when the search finds nothing and ENOANSWERS when no
// usable answer is retrieved; no transcript is written in either case. A
// failed synthesis does not fail the run: its error message becomes the
// synthesized answer.
func (p *Pipeline) Run(ctx context.Context, question string) (*soask.Transcript, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, soask.Errorf(soask.EINVALID, "question required")
	}
	logger := p.logger()

	p.Presenter.ShowQuestion(question)

	candidates, err := p.Searcher.SearchQuestions(ctx, question, soask.SearchOptions{
		Limit:        p.questionCount(),
		AcceptedOnly: p.questionCount() > 1,
	})
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, soask.Errorf(soask.ENOMATCH, "No matching questions found.")
	}
	ids := soask.QuestionIDs(candidates)
	p.Presenter.ShowMatch(ids)

	answers, err := p.collectAnswers(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(answers) == 0 {
		return nil, soask.Errorf(soask.ENOANSWERS, "No answers found.")
	}
	p.Presenter.ShowAnswers(answers)

	req := &soask.SynthesisRequest{Question: question, Answers: answers}
	p.logPromptSize(ctx, logger, req)

	synthesis, err := p.Synthesizer.Synthesize(ctx, req, p.Presenter.ShowSynthesis)
	if err != nil {
		if synthesis == "" {
			synthesis = "Error: " + describe(err)
		}
		logger.Warn("synthesis failed", "partial", len(synthesis), "err", err)
	}
	p.Presenter.EndSynthesis(synthesis)

	transcript := &soask.Transcript{
		ID:          p.RunID,
		Question:    question,
		QuestionIDs: ids,
		Answers:     answers,
		Synthesis:   synthesis,
		CreatedAt:   p.now().UTC(),
	}
	if err := p.Transcripts.WriteTranscript(ctx, transcript); err != nil {
		return nil, fmt.Errorf("failed to save transcript: %w", err)
	}
	if p.OutputPath != "" {
		p.Presenter.ShowSaved(p.OutputPath)
	}

	return transcript, nil
}

// collectAnswers fetches each question's top answers in match order,
// normalizes them, and ranks the merged result by score. Answers the
// normalizer rejects are dropped.
func (p *Pipeline) collectAnswers(ctx context.Context, ids []int64) (soask.AnswerSet, error) {
	logger := p.logger()

	var merged []*soask.Answer
	for _, id := range ids {
		answers, err := p.Answers.FetchAnswers(ctx, id, p.answersPerQuestion())
		if err != nil {
			return nil, err
		}
		for _, a := range answers {
			text, err := p.Normalizer.Normalize(a.RawBody)
			if err != nil {
				logger.Warn("answer dropped", "answer", a.ID, "question", id, "err", err)
				continue
			}
			a.CleanedText = text
			merged = append(merged, a)
		}
	}

	return soask.NewAnswerSet(merged, p.maxAnswers()), nil
}

func (p *Pipeline) logPromptSize(ctx context.Context, logger *slog.Logger, req *soask.SynthesisRequest) {
	if p.TokenCounter == nil {
		return
	}
	n, err := p.TokenCounter.CountTokens(ctx, req.Prompt())
	if err != nil {
		logger.Debug("prompt token count failed", "err", err)
		return
	}
	logger.Debug("prompt", "answers", len(req.Answers), "tokens", n)
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.Logger
}

func (p *Pipeline) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

func (p *Pipeline) questionCount() int {
	if p.QuestionCount < 1 {
		return 1
	}
	return p.QuestionCount
}

func (p *Pipeline) answersPerQuestion() int {
	if p.AnswersPerQuestion < 1 {
		return soask.DefaultMaxAnswers
	}
	return p.AnswersPerQuestion
}

func (p *Pipeline) maxAnswers() int {
	if p.MaxAnswers < 1 {
		return soask.DefaultMaxAnswers
	}
	return p.MaxAnswers
}

// describe returns the message shown in place of a failed synthesis.
func describe(err error) string {
	var e *soask.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
