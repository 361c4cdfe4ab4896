package sqlite_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/soask"
	"github.com/fwojciec/soask/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTranscript(question string) *soask.Transcript {
	return &soask.Transcript{
		Question:    question,
		QuestionIDs: []int64{42, 17},
		Answers: soask.AnswerSet{
			{ID: 100, QuestionID: 42, Score: 50, IsAccepted: true, RawBody: "<p>Use reversed().</p>", CleanedText: "Use reversed()."},
			{ID: 200, QuestionID: 17, Score: 9, RawBody: "<p>Slice.</p>", CleanedText: "Slice."},
		},
		Synthesis: "Reverse it.",
	}
}

func TestTranscriptService_WriteTranscript(t *testing.T) {
	t.Parallel()

	t.Run("assigns ID and timestamp", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewTranscriptService(setupTestDB(t))
		tr := newTranscript("How do I reverse a list?")

		err := svc.WriteTranscript(context.Background(), tr)

		require.NoError(t, err)
		assert.NotEmpty(t, tr.ID)
		assert.False(t, tr.CreatedAt.IsZero())
	})

	t.Run("keeps a provided ID", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewTranscriptService(setupTestDB(t))
		tr := newTranscript("q")
		tr.ID = "run-1"

		require.NoError(t, svc.WriteTranscript(context.Background(), tr))

		got, err := svc.FindTranscriptByID(context.Background(), "run-1")
		require.NoError(t, err)
		assert.Equal(t, "q", got.Question)
	})

	t.Run("rejects invalid transcript", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewTranscriptService(setupTestDB(t))

		err := svc.WriteTranscript(context.Background(), &soask.Transcript{})

		require.Error(t, err)
		assert.Equal(t, soask.EINVALID, soask.ErrorCode(err))
	})

	t.Run("rejects duplicate ID without partial rows", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewTranscriptService(db)
		ctx := context.Background()

		first := newTranscript("q")
		first.ID = "dup"
		require.NoError(t, svc.WriteTranscript(ctx, first))

		second := newTranscript("q")
		second.ID = "dup"
		require.Error(t, svc.WriteTranscript(ctx, second))

		var answers int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transcript_answers").Scan(&answers))
		assert.Equal(t, 2, answers)
	})
}

func TestTranscriptService_FindTranscriptByID(t *testing.T) {
	t.Parallel()

	t.Run("round trips every field", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewTranscriptService(setupTestDB(t))
		ctx := context.Background()
		tr := newTranscript("How do I reverse a list?")
		tr.CreatedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		require.NoError(t, svc.WriteTranscript(ctx, tr))

		got, err := svc.FindTranscriptByID(ctx, tr.ID)

		require.NoError(t, err)
		assert.Equal(t, tr.Question, got.Question)
		assert.Equal(t, []int64{42, 17}, got.QuestionIDs)
		assert.Equal(t, "Reverse it.", got.Synthesis)
		assert.True(t, tr.CreatedAt.Equal(got.CreatedAt))
		require.Len(t, got.Answers, 2)
		assert.Equal(t, *tr.Answers[0], *got.Answers[0])
		assert.Equal(t, *tr.Answers[1], *got.Answers[1])
	})

	t.Run("returns ENOTFOUND for missing transcript", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewTranscriptService(setupTestDB(t))

		_, err := svc.FindTranscriptByID(context.Background(), "nope")

		require.Error(t, err)
		assert.Equal(t, soask.ENOTFOUND, soask.ErrorCode(err))
	})
}

func TestTranscriptService_FindTranscripts(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T, svc *sqlite.TranscriptService, questions ...string) {
		t.Helper()
		base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		for i, q := range questions {
			tr := newTranscript(q)
			tr.CreatedAt = base.Add(time.Duration(i) * time.Minute)
			require.NoError(t, svc.WriteTranscript(context.Background(), tr))
		}
	}

	t.Run("returns newest first", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewTranscriptService(setupTestDB(t))
		seed(t, svc, "first", "second", "third")

		got, err := svc.FindTranscripts(context.Background(), soask.TranscriptFilter{})

		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "third", got[0].Question)
		assert.Equal(t, "first", got[2].Question)
		assert.Len(t, got[0].Answers, 2)
	})

	t.Run("filters by question", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewTranscriptService(setupTestDB(t))
		seed(t, svc, "alpha", "beta", "alpha")

		q := "  alpha "
		got, err := svc.FindTranscripts(context.Background(), soask.TranscriptFilter{Question: &q})

		require.NoError(t, err)
		require.Len(t, got, 2)
		for _, tr := range got {
			assert.Equal(t, "alpha", tr.Question)
		}
	})

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewTranscriptService(setupTestDB(t))
		var questions []string
		for i := 0; i < 5; i++ {
			questions = append(questions, fmt.Sprintf("q%d", i))
		}
		seed(t, svc, questions...)

		page, err := svc.FindTranscripts(context.Background(), soask.TranscriptFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, "q3", page[0].Question)
		assert.Equal(t, "q2", page[1].Question)

		rest, err := svc.FindTranscripts(context.Background(), soask.TranscriptFilter{Offset: 3})
		require.NoError(t, err)
		require.Len(t, rest, 2)
		assert.Equal(t, "q1", rest[0].Question)
	})

	t.Run("returns empty for no match", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewTranscriptService(setupTestDB(t))
		seed(t, svc, "alpha")

		q := "gamma"
		got, err := svc.FindTranscripts(context.Background(), soask.TranscriptFilter{Question: &q})

		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
