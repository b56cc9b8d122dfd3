// Package future provides Future[T], the pending completion an asynchronous
// comparison chain awaits and returns.
//
// A Future settles exactly once, either with a value or with an error, and
// can be awaited any number of times from any number of goroutines. Futures
// are created by running a function in its own goroutine (Go), from an
// already known outcome (Resolved, Rejected) or from the first value of a
// channel (FromChan).
//
// Awaiting honours the caller's context, but an abandoned await does not
// stop the computation behind the future.
package future
