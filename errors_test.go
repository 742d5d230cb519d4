package depot

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorConstructors_MatchSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		contains string
	}{
		{
			name:     "service not found",
			err:      ErrServiceNotFound("db"),
			sentinel: ErrServiceNotFoundSentinel,
			contains: "service 'db' not found",
		},
		{
			name:     "factory not found",
			err:      ErrFactoryNotFound("db"),
			sentinel: ErrServiceNotFoundSentinel,
			contains: "are you certain you provided it during configuration?",
		},
		{
			name:     "cyclic alias",
			err:      ErrCyclicAlias(map[string]string{"a": "b", "b": "a"}),
			sentinel: ErrCyclicAliasSentinel,
			contains: "[a -> b, b -> a]",
		},
		{
			name:     "invalid argument",
			err:      ErrInvalidArgument("bad input"),
			sentinel: ErrInvalidArgumentSentinel,
			contains: "bad input",
		},
		{
			name:     "type mismatch",
			err:      ErrTypeMismatch("db", 42),
			sentinel: ErrTypeMismatchSentinel,
			contains: "got int",
		},
		{
			name:     "not created",
			err:      ErrServiceNotCreated("db", errors.New("boom")),
			sentinel: ErrServiceNotCreatedSentinel,
			contains: "service with id 'db' could not be created. Reason: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.Contains(t, tt.err.Error(), tt.contains)
		})
	}
}

func TestErrCyclicAlias_SnapshotsMapping(t *testing.T) {
	aliases := map[string]string{"a": "a"}
	err := ErrCyclicAlias(aliases)

	aliases["b"] = "c"

	assert.NotContains(t, err.Error(), "b -> c")
}

func TestServiceNotCreated_Unwrap(t *testing.T) {
	cause := &codedError{code: 7}
	err := ErrServiceNotCreated("svc", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 7, err.Code)
	assert.Equal(t, "svc", err.ID)

	var coded *codedError
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, 7, coded.code)

	wrapped := fmt.Errorf("bootstrap: %w", err)
	assert.ErrorIs(t, wrapped, ErrServiceNotCreatedSentinel)
	assert.Equal(t, 7, ErrorCode(wrapped))
}

func TestServiceNotCreated_NilCause(t *testing.T) {
	err := ErrServiceNotCreated("svc", nil)

	assert.Contains(t, err.Error(), "Reason: <nil>")
	assert.Equal(t, 0, err.Code)
	assert.NoError(t, err.Unwrap())
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, 0, ErrorCode(nil))
	assert.Equal(t, 0, ErrorCode(errors.New("plain")))
	assert.Equal(t, 3, ErrorCode(&codedError{code: 3}))
	assert.Equal(t, 12, ErrorCode(&stringCodedError{code: "12"}))
	assert.Equal(t, 0, ErrorCode(&stringCodedError{code: "twelve"}))
	assert.Equal(t, 0, ErrorCode(&stringCodedError{code: "12abc"}))
	assert.Equal(t, -4, ErrorCode(&stringCodedError{code: "-4"}))
	assert.Equal(t, 5, ErrorCode(fmt.Errorf("wrapped: %w", &codedError{code: 5})))
}

func TestIsContainerError(t *testing.T) {
	assert.True(t, IsContainerError(ErrServiceNotFound("x")))
	assert.True(t, IsContainerError(ErrFactoryNotFound("x")))
	assert.True(t, IsContainerError(ErrServiceNotCreated("x", errors.New("boom"))))
	assert.True(t, IsContainerError(ErrCyclicAlias(map[string]string{"a": "a"})))
	assert.True(t, IsContainerError(ErrInvalidArgument("x")))
	assert.True(t, IsContainerError(fmt.Errorf("wrapped: %w", ErrServiceNotFound("x"))))

	assert.False(t, IsContainerError(errors.New("plain")))
	assert.False(t, IsContainerError(ErrTypeMismatch("x", 1)))
}
