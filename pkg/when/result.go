package when

import (
	"time"

	"github.com/google/uuid"
)

// Result is the settled outcome of a resolution: either a value or an error.
type Result[T any] struct {
	id        uuid.UUID
	createdAt time.Time
	result    T
	err       error
	isSuccess bool
	isCancel  bool
}

func Success[T any](r T) Result[T] {
	return Result[T]{
		result:    r,
		isSuccess: true,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

func Fail[T any](err error) Result[T] {
	return Result[T]{
		err:       err,
		isCancel:  IsCancellationError(err),
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

// From builds a Result from the usual (value, error) pair.
func From[T any](r T, err error) Result[T] {
	if err != nil {
		return Fail[T](err)
	}
	return Success(r)
}

func (r Result[T]) Result() T {
	return r.result
}

func (r Result[T]) Err() error {
	return r.err
}

func (r Result[T]) IsSuccess() bool {
	return r.isSuccess
}

func (r Result[T]) IsFailure() bool {
	return !r.isSuccess && r.err != nil
}

func (r Result[T]) IsCancel() bool {
	return r.isCancel
}

func (r Result[T]) CreatedAt() time.Time {
	return r.createdAt
}

// IsEmpty reports a zero Result that was never settled.
func (r Result[T]) IsEmpty() bool {
	return r.err == nil && !r.isSuccess
}

func (r Result[T]) Id() uuid.UUID {
	return r.id
}

// Unpack returns the value and error as a pair.
func (r Result[T]) Unpack() (T, error) {
	return r.result, r.err
}
