package future

import (
	"context"

	"github.com/google/uuid"
	"github.com/ib-77/when3/pkg/when"
)

// Awaitable is a pending completion whose value type is not known statically.
type Awaitable interface {
	AwaitAny(ctx context.Context) (any, error)
	Done() <-chan struct{}
}

// Future is a value that becomes available later.
type Future[T any] struct {
	id   uuid.UUID
	done chan struct{}
	res  when.Result[T]
}

var (
	_ Awaitable = (*Future[int])(nil)
)

func newFuture[T any]() *Future[T] {
	return &Future[T]{
		id:   uuid.New(),
		done: make(chan struct{}),
	}
}

// Go runs f in a new goroutine and returns a Future settled with its outcome.
// A panic inside f, or f calling runtime.Goexit, rejects the future with
// when.ErrCallbackPanicked.
func Go[T any](ctx context.Context, f func(ctx context.Context) (T, error)) *Future[T] {
	fut := newFuture[T]()

	go func() {
		settled := false
		defer func() {
			r := recover()
			if !settled {
				fut.settle(when.Fail[T](when.Panicked(r)))
			}
		}()

		res := when.From(f(ctx))
		settled = true
		fut.settle(res)
	}()

	return fut
}

// Resolved returns a Future already settled with v.
func Resolved[T any](v T) *Future[T] {
	fut := newFuture[T]()
	fut.settle(when.Success(v))
	return fut
}

// Rejected returns a Future already settled with err.
func Rejected[T any](err error) *Future[T] {
	fut := newFuture[T]()
	fut.settle(when.Fail[T](err))
	return fut
}

// FromChan settles with the first value received from ch. A channel closed
// before delivering a value rejects the future with when.ErrNoValue, and an
// expired ctx rejects it with the context error.
func FromChan[T any](ctx context.Context, ch <-chan T) *Future[T] {
	return Go(ctx, func(ctx context.Context) (T, error) {
		var zero T
		select {
		case v, ok := <-ch:
			if !ok {
				return zero, when.WrapSentinel(when.ErrNoValue, "", nil)
			}
			return v, nil
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	})
}

func (f *Future[T]) settle(res when.Result[T]) {
	f.res = res
	close(f.done)
}

// ID identifies the future.
func (f *Future[T]) ID() uuid.UUID {
	return f.id
}

// Done is closed once the future has settled.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the future settles or ctx ends.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.res.Unpack()
	default:
	}

	select {
	case <-f.done:
		return f.res.Unpack()
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// AwaitAny implements Awaitable.
func (f *Future[T]) AwaitAny(ctx context.Context) (any, error) {
	v, err := f.Await(ctx)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Peek returns the settled result without blocking. The boolean is false
// while the future is pending.
func (f *Future[T]) Peek() (when.Result[T], bool) {
	select {
	case <-f.done:
		return f.res, true
	default:
		return when.Result[T]{}, false
	}
}

// Chan returns a channel that delivers the settled result once and is then
// closed. Nothing is delivered if ctx ends first.
func (f *Future[T]) Chan(ctx context.Context) <-chan when.Result[T] {
	out := make(chan when.Result[T], 1)

	go func() {
		defer close(out)

		select {
		case <-f.done:
			out <- f.res
		case <-ctx.Done():
		}
	}()

	return out
}
