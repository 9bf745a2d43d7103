package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	err := New(KindConflictState, "order already exists for this offer")

	kind, ok := KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, KindConflictState, kind)

	_, ok = KindOf(errors.New("db error"))
	assert.False(t, ok)
}

func TestKindSurvivesWrapping(t *testing.T) {
	inner := New(KindForbiddenOwner, "not participant of this order")
	wrapped := fmt.Errorf("transition order: %w", inner)

	assert.True(t, IsKind(wrapped, KindForbiddenOwner))
	assert.False(t, IsKind(wrapped, KindConflictState))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("unique_violation")
	err := Wrap(KindConflictState, "order already exists for this offer", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "CONFLICT_STATE")
	assert.Contains(t, err.Error(), "unique_violation")
}
