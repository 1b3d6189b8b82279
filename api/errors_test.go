package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMatchesSentinel(t *testing.T) {
	err := NewError(ErrCodeInvalidArgument, "threads must be >= 0").WithContext("threads", -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.NotErrorIs(t, err, ErrPoolShutdown)
	assert.Contains(t, err.Error(), "threads")

	wrapped := fmt.Errorf("config: %w", err)
	var se *Error
	assert.True(t, errors.As(wrapped, &se))
	assert.Equal(t, "invalid_argument", se.Code.String())
}

func TestTaskFuncInvoke(t *testing.T) {
	called := false
	var task Task = TaskFunc(func() { called = true })
	task.Invoke()
	assert.True(t, called)
}

func TestResult(t *testing.T) {
	r := Result[int]{Value: 3}
	assert.True(t, r.Ok())
	v, err := Result[int]{Value: 1, Err: ErrNilTask}.Get()
	assert.Equal(t, 1, v)
	assert.ErrorIs(t, err, ErrNilTask)
}

func TestErrorCodeSentinels(t *testing.T) {
	assert.ErrorIs(t, NewError(ErrCodeShutdown, "stopped"), ErrPoolShutdown)
	assert.NotErrorIs(t, NewError(ErrCodeInternal, "boom"), ErrInvalidArgument)
	assert.Equal(t, "shutdown", ErrCodeShutdown.String())
	assert.Equal(t, "internal", ErrCodeInternal.String())
}
