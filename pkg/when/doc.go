// Package when contains the shared vocabulary of the comparison chain:
// the settled Result[T] of a pending computation, the provider interfaces
// it satisfies, the error taxonomy raised by misused chains and a few
// reflection helpers used by the equality and normalization packages.
//
// The builder itself lives in package chain; see its documentation for
// the fluent API.
package when
