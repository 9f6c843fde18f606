package mq

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemporary(t *testing.T) {
	base := errors.New("connection reset")

	err := Temporary(base)

	var te TempError
	assert.True(t, errors.As(err, &te))
	assert.True(t, te.Temporary())
	assert.Equal(t, "connection reset", err.Error())
}

func TestShouldRequeue(t *testing.T) {
	t.Run("temporary error requeues", func(t *testing.T) {
		assert.True(t, shouldRequeue(Temporary(errors.New("db down"))))
	})

	t.Run("wrapped temporary error requeues", func(t *testing.T) {
		assert.True(t, shouldRequeue(fmt.Errorf("handle: %w", Temporary(errors.New("db down")))))
	})

	t.Run("plain error does not requeue", func(t *testing.T) {
		assert.False(t, shouldRequeue(errors.New("bad payload")))
	})
}
