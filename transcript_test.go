package soask_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/soask"
	"github.com/fwojciec/soask/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscript_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires question", func(t *testing.T) {
		t.Parallel()

		tr := &soask.Transcript{QuestionIDs: []int64{1}}

		assert.Equal(t, soask.EINVALID, soask.ErrorCode(tr.Validate()))
	})

	t.Run("requires question ID", func(t *testing.T) {
		t.Parallel()

		tr := &soask.Transcript{Question: "q"}

		assert.Equal(t, soask.EINVALID, soask.ErrorCode(tr.Validate()))
	})

	t.Run("accepts complete transcript", func(t *testing.T) {
		t.Parallel()

		tr := &soask.Transcript{Question: "q", QuestionIDs: []int64{1}}

		assert.NoError(t, tr.Validate())
	})
}

func TestMultiTranscriptWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to every writer in order", func(t *testing.T) {
		t.Parallel()

		var calls []string
		first := &mock.TranscriptWriter{
			WriteTranscriptFn: func(context.Context, *soask.Transcript) error {
				calls = append(calls, "first")
				return nil
			},
		}
		second := &mock.TranscriptWriter{
			WriteTranscriptFn: func(context.Context, *soask.Transcript) error {
				calls = append(calls, "second")
				return nil
			},
		}

		err := soask.MultiTranscriptWriter(first, second).WriteTranscript(context.Background(), &soask.Transcript{})

		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second"}, calls)
	})

	t.Run("stops at first error", func(t *testing.T) {
		t.Parallel()

		secondCalled := false
		first := &mock.TranscriptWriter{
			WriteTranscriptFn: func(context.Context, *soask.Transcript) error {
				return errors.New("disk full")
			},
		}
		second := &mock.TranscriptWriter{
			WriteTranscriptFn: func(context.Context, *soask.Transcript) error {
				secondCalled = true
				return nil
			},
		}

		err := soask.MultiTranscriptWriter(first, second).WriteTranscript(context.Background(), &soask.Transcript{})

		require.EqualError(t, err, "disk full")
		assert.False(t, secondCalled)
	})
}
