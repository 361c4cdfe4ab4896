package soask_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/soask"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := soask.Errorf(soask.ENOMATCH, "no question matches %q", "test")

	assert.Equal(t, soask.ENOMATCH, soask.ErrorCode(err))
	assert.Equal(t, "no question matches \"test\"", soask.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("fetch: %w", soask.Errorf(soask.EUPSTREAM, "HTTP 502"))

	assert.Equal(t, soask.EUPSTREAM, soask.ErrorCode(err))
	assert.Equal(t, "HTTP 502", soask.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("boom")

	assert.Equal(t, soask.EINTERNAL, soask.ErrorCode(err))
	assert.Equal(t, "Internal error.", soask.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, soask.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, soask.ErrorMessage(nil))
}
