package lazy

import (
	"context"
	"reflect"

	"github.com/ib-77/when3/pkg/when"
	"github.com/ib-77/when3/pkg/when/future"
)

// AsyncFunc resolves a value for a subject, awaiting any pending completion
// on the way.
type AsyncFunc[S, T any] func(ctx context.Context, subject S) (T, error)

var awaitableType = reflect.TypeFor[future.Awaitable]()

// OfAsync normalizes v into an AsyncFunc. Everything Of accepts is accepted,
// plus futures and future-returning or context-aware callables.
func OfAsync[S, T any](v any) (AsyncFunc[S, T], error) {
	switch f := v.(type) {
	case AsyncFunc[S, T]:
		if f != nil {
			return f, nil
		}
	case func(context.Context, S) (T, error):
		if f != nil {
			return f, nil
		}
	case func(context.Context, S) *future.Future[T]:
		if f != nil {
			return func(ctx context.Context, s S) (T, error) {
				return await(ctx, f(ctx, s))
			}, nil
		}
	case *future.Future[T]:
		if f != nil && !isAwaitableType[T]() {
			return func(ctx context.Context, _ S) (T, error) {
				return f.Await(ctx)
			}, nil
		}
	case func(S) *future.Future[T]:
		if f != nil {
			return func(ctx context.Context, s S) (T, error) {
				return await(ctx, f(s))
			}, nil
		}
	case func() *future.Future[T]:
		if f != nil {
			return func(ctx context.Context, _ S) (T, error) {
				return await(ctx, f())
			}, nil
		}
	}

	if isAwaitableType[T]() {
		sync, err := Of[S, T](v)
		if err != nil {
			return nil, err
		}
		return func(_ context.Context, s S) (T, error) {
			return sync(s)
		}, nil
	}

	var base func(ctx context.Context, s S) (any, error)
	if takesContext(v) {
		call, err := reflectCall[S, any](v, true)
		if err != nil {
			return nil, err
		}
		base = call
	} else {
		sync, err := Of[S, any](v)
		if err != nil {
			return nil, err
		}
		base = func(_ context.Context, s S) (any, error) { return sync(s) }
	}

	return func(ctx context.Context, s S) (T, error) {
		var zero T
		raw, err := base(ctx, s)
		if err != nil {
			return zero, err
		}
		if pending, ok := raw.(future.Awaitable); ok {
			if when.IsNil(pending) {
				return zero, when.InvalidValue(raw, reflect.TypeFor[T]().String(), nil)
			}
			if raw, err = pending.AwaitAny(ctx); err != nil {
				return zero, err
			}
		}
		return Literal[T](raw)
	}, nil
}

func await[T any](ctx context.Context, f *future.Future[T]) (T, error) {
	if f == nil {
		var zero T
		return zero, when.InvalidValue(nil, reflect.TypeFor[*future.Future[T]]().String(), nil)
	}
	return f.Await(ctx)
}

// isAwaitableType reports whether T is itself a pending completion, in which
// case values of T are results in their own right and are not awaited.
func isAwaitableType[T any]() bool {
	t := reflect.TypeFor[T]()
	return t.Kind() != reflect.Interface && t.Implements(awaitableType)
}
