// Package lazy turns "a value or something that computes it" into a plain
// function of the subject.
//
// Every argument a comparison chain accepts, comparisons, conditions,
// results and fallbacks, may be a literal or a callable. Of normalizes such
// an argument for synchronous resolution and OfAsync does the same for the
// asynchronous path, where a callable may also hand back a future that has
// to be awaited first.
//
// Accepted callables, for subject type S and value type T:
//
//	func(S) T            func(S) (T, error)
//	func() T             func() (T, error)
//	any other func of zero or one parameter returning X or (X, error),
//	called reflectively; X must fit T when the call returns
//
// OfAsync also accepts:
//
//	*future.Future[T]                       func(S) *future.Future[T]
//	func() *future.Future[T]                func(context.Context, S) (T, error)
//	func(context.Context, S) *future.Future[T]
//
// and awaits any future.Awaitable a callable or literal produces.
//
// Func values are always treated as callables unless T itself is a func
// type. Numeric literals convert to a numeric T when the value survives the
// conversion, so an untyped constant 1 can serve an int64 or float64 result.
package lazy
