package apperror

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindBusinessRule, http.StatusBadRequest},
		{KindNotFound, http.StatusNotFound},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindUnexpected, http.StatusInternalServerError},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.kind.Status())
	}
}

func TestAsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("submit: %w", AlreadySubmitted())

	appErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindBusinessRule, appErr.Kind)
	assert.Equal(t, MsgAlreadySubmitted, appErr.Detail)
	assert.True(t, Is(wrapped, KindBusinessRule))
	assert.False(t, Is(wrapped, KindNotFound))

	_, ok = As(fmt.Errorf("plain"))
	assert.False(t, ok)
}

func TestUnexpectedKeepsCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Unexpected(cause, MsgAnswersNotSaved)

	assert.Equal(t, MsgAnswersNotSaved, err.Message)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")
}
