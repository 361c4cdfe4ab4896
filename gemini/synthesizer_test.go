package gemini_test

import (
	"context"
	"errors"
	"iter"
	"testing"

	"github.com/fwojciec/soask"
	"github.com/fwojciec/soask/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: genai.NewContentFromText(text, genai.RoleModel),
		}},
	}
}

type step struct {
	resp *genai.GenerateContentResponse
	err  error
}

func fakeStream(steps ...step) func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error] {
	return func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error] {
		return func(yield func(*genai.GenerateContentResponse, error) bool) {
			for _, s := range steps {
				if !yield(s.resp, s.err) {
					return
				}
			}
		}
	}
}

func request() *soask.SynthesisRequest {
	return &soask.SynthesisRequest{
		Question: "How do I reverse a list?",
		Answers:  soask.AnswerSet{{ID: 1, Score: 3, CleanedText: "Use reversed()."}},
	}
}

func TestSynthesizer_Synthesize_AccumulatesChunks(t *testing.T) {
	t.Parallel()

	s := gemini.NewSynthesizerWithStream("", fakeStream(
		step{resp: textResponse("Hello")},
		step{resp: textResponse("")},
		step{resp: textResponse(" world")},
	))

	var updates []string
	got, err := s.Synthesize(context.Background(), request(), func(acc string) {
		updates = append(updates, acc)
	})

	require.NoError(t, err)
	assert.Equal(t, "Hello world", got)
	assert.Equal(t, []string{"Hello", "Hello world"}, updates)
}

func TestSynthesizer_Synthesize_SendsPromptAndModel(t *testing.T) {
	t.Parallel()

	var (
		gotModel    string
		gotContents []*genai.Content
	)
	s := gemini.NewSynthesizerWithStream("gemini-test", func(_ context.Context, model string, contents []*genai.Content, _ *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error] {
		gotModel = model
		gotContents = contents
		return fakeStream(step{resp: textResponse("ok")})(nil, "", nil, nil)
	})

	req := request()
	_, err := s.Synthesize(context.Background(), req, nil)

	require.NoError(t, err)
	assert.Equal(t, "gemini-test", gotModel)
	require.Len(t, gotContents, 1)
	require.Len(t, gotContents[0].Parts, 1)
	assert.Equal(t, req.Prompt(), gotContents[0].Parts[0].Text)
}

func TestSynthesizer_Synthesize_DefaultsModel(t *testing.T) {
	t.Parallel()

	var gotModel string
	s := gemini.NewSynthesizerWithStream("", func(_ context.Context, model string, _ []*genai.Content, _ *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error] {
		gotModel = model
		return fakeStream()(nil, "", nil, nil)
	})

	_, err := s.Synthesize(context.Background(), request(), nil)

	require.NoError(t, err)
	assert.Equal(t, gemini.DefaultModel, gotModel)
}

func TestSynthesizer_Synthesize_ReturnsEUPSTREAMWhenFirstChunkFails(t *testing.T) {
	t.Parallel()

	s := gemini.NewSynthesizerWithStream("", fakeStream(
		step{err: errors.New("permission denied")},
	))

	got, err := s.Synthesize(context.Background(), request(), nil)

	require.Error(t, err)
	assert.Empty(t, got)
	assert.Equal(t, soask.EUPSTREAM, soask.ErrorCode(err))
	assert.Contains(t, soask.ErrorMessage(err), "permission denied")
}

func TestSynthesizer_Synthesize_KeepsPartialTextOnMidStreamError(t *testing.T) {
	t.Parallel()

	s := gemini.NewSynthesizerWithStream("", fakeStream(
		step{resp: textResponse("partial")},
		step{err: errors.New("connection reset")},
		step{resp: textResponse(" never")},
	))

	got, err := s.Synthesize(context.Background(), request(), nil)

	require.Error(t, err)
	assert.Equal(t, "partial", got)
}

func TestSynthesizer_Synthesize_ReturnsErrorWhenQuestionEmpty(t *testing.T) {
	t.Parallel()

	s := gemini.NewSynthesizer(nil, "")

	_, err := s.Synthesize(context.Background(), &soask.SynthesisRequest{}, nil)

	require.Error(t, err)
	assert.Equal(t, soask.EINVALID, soask.ErrorCode(err))
	assert.Contains(t, soask.ErrorMessage(err), "question required")
}

func TestSynthesizer_Synthesize_ReturnsErrorWithoutClient(t *testing.T) {
	t.Parallel()

	s := gemini.NewSynthesizer(nil, "")

	_, err := s.Synthesize(context.Background(), request(), nil)

	require.Error(t, err)
	assert.Equal(t, soask.EINTERNAL, soask.ErrorCode(err))
}

func TestBuildConfig_SetsTemperature(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.4, *config.Temperature, 0.001)
}
