package soask_test

import (
	"testing"

	"github.com/fwojciec/soask"
	"github.com/stretchr/testify/assert"
)

func TestNewAnswerSet(t *testing.T) {
	t.Parallel()

	t.Run("orders answers by descending score", func(t *testing.T) {
		t.Parallel()

		answers := []*soask.Answer{
			{ID: 1, Score: 17},
			{ID: 2, Score: 42},
		}

		set := soask.NewAnswerSet(answers, 3)

		assert.Equal(t, []int{42, 17}, set.Scores())
		assert.True(t, set.Sorted())
	})

	t.Run("truncates to max", func(t *testing.T) {
		t.Parallel()

		answers := []*soask.Answer{
			{Score: 1}, {Score: 5}, {Score: 3}, {Score: 9}, {Score: 7},
		}

		set := soask.NewAnswerSet(answers, 3)

		assert.Equal(t, []int{9, 7, 5}, set.Scores())
	})

	t.Run("keeps arrival order for equal scores", func(t *testing.T) {
		t.Parallel()

		answers := []*soask.Answer{
			{ID: 1, Score: 10},
			{ID: 2, Score: 20},
			{ID: 3, Score: 10},
		}

		set := soask.NewAnswerSet(answers, 0)

		assert.Len(t, set, 3)
		assert.Equal(t, int64(2), set[0].ID)
		assert.Equal(t, int64(1), set[1].ID)
		assert.Equal(t, int64(3), set[2].ID)
	})

	t.Run("does not modify input", func(t *testing.T) {
		t.Parallel()

		answers := []*soask.Answer{{Score: 1}, {Score: 2}}

		_ = soask.NewAnswerSet(answers, 1)

		assert.Equal(t, 1, answers[0].Score)
		assert.Equal(t, 2, answers[1].Score)
	})

	t.Run("returns empty set for no answers", func(t *testing.T) {
		t.Parallel()

		set := soask.NewAnswerSet(nil, 3)

		assert.Empty(t, set)
		assert.True(t, set.Sorted())
	})
}

func TestAnswerSet_Sorted(t *testing.T) {
	t.Parallel()

	set := soask.AnswerSet{{Score: 3}, {Score: 8}}

	assert.False(t, set.Sorted())
}
