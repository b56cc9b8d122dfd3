// Package chain provides the comparison chain: a fluent replacement for
// long if/else-if ladders and switch statements that tests one subject
// against an ordered list of comparisons and resolves to the result of the
// first one that matches, or to a fallback when none does.
//
// A chain is built in one of two modes:
//   - immediate: New, NewCondition, NewLazy or NewPending bind the subject
//     up front and Else resolves on the spot;
//   - deferred: Deferred leaves the subject open, Default stores the fallback
//     and Resolve may then be called any number of times with different
//     subjects, reusing the registered tests.
//
// Tests are registered with Equals, EqualsLoosely, NotEquals,
// NotEqualsLoosely and When. Every comparison, condition, result and
// fallback may be a literal or a callable of the subject (see package lazy).
// Tests are evaluated in registration order and the first match wins; later
// tests, their results and the fallback are never evaluated.
//
//	label, err := chain.Deferred[int, string]().
//		Equals(200, "ok").
//		EqualsLoosely("404", "not found").
//		When(func(code int) bool { return code >= 500 }, "server error").
//		Default(func(code int) string { return "status " + strconv.Itoa(code) }).
//		Resolve(503)
//
// Async switches a chain to the asynchronous strategy. Every step may then
// produce a future.Future that is awaited in order, one step at a time, and
// the terminal operations of AsyncChain return futures themselves.
package chain
