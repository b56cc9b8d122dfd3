package chain

import (
	"context"

	"github.com/google/uuid"
	"github.com/ib-77/when3/pkg/when"
	"github.com/ib-77/when3/pkg/when/equal"
	"github.com/ib-77/when3/pkg/when/future"
	"github.com/ib-77/when3/pkg/when/lazy"
)

// Chain is a comparison chain resolved synchronously. S is the subject type
// and R the result type.
type Chain[S, R any] struct {
	c *core[S, R]
}

// New creates an immediate chain bound to subject.
func New[S, R any](subject S) *Chain[S, R] {
	return &Chain[S, R]{c: newCore[S, R](valueSource(subject))}
}

// NewCondition creates an immediate chain whose subject is true, for chains
// built purely from When conditions.
func NewCondition[R any]() *Chain[bool, R] {
	return New[bool, R](true)
}

// NewLazy creates an immediate chain whose subject is produced by calling
// produce once per resolution.
func NewLazy[S, R any](produce func() S) *Chain[S, R] {
	return &Chain[S, R]{c: newCore[S, R](lazySource(produce))}
}

// NewPending creates an immediate chain whose subject is a pending
// completion. Such a chain has to be switched to Async before it resolves.
func NewPending[S, R any](subject *future.Future[S]) *Chain[S, R] {
	return &Chain[S, R]{c: newCore[S, R](pendingSource(subject))}
}

// Deferred creates a chain without a subject. Register tests and a Default
// once, then Resolve against as many subjects as needed.
func Deferred[S, R any]() *Chain[S, R] {
	return &Chain[S, R]{c: newCore[S, R](source[S]{})}
}

// ID identifies the chain in error metadata.
func (c *Chain[S, R]) ID() uuid.UUID {
	return c.c.id
}

// Len returns the number of registered tests.
func (c *Chain[S, R]) Len() int {
	return len(c.c.tests)
}

// IsAsync reports whether Async has been called on the chain.
func (c *Chain[S, R]) IsAsync() bool {
	return c.c.isAsync()
}

// Equals matches when comparison is strictly equal to the subject.
func (c *Chain[S, R]) Equals(comparison, result any) *Chain[S, R] {
	c.c.add(test{kind: checkEquals, mode: equal.ModeStrict, comparison: comparison, result: result})
	return c
}

// EqualsLoosely matches when comparison equals the subject after coercion.
func (c *Chain[S, R]) EqualsLoosely(comparison, result any) *Chain[S, R] {
	c.c.add(test{kind: checkEquals, mode: equal.ModeLoose, comparison: comparison, result: result})
	return c
}

// NotEquals matches when comparison is not strictly equal to the subject.
func (c *Chain[S, R]) NotEquals(comparison, result any) *Chain[S, R] {
	c.c.add(test{kind: checkEquals, mode: equal.ModeStrict, negated: true, comparison: comparison, result: result})
	return c
}

// NotEqualsLoosely matches when comparison differs from the subject even
// after coercion.
func (c *Chain[S, R]) NotEqualsLoosely(comparison, result any) *Chain[S, R] {
	c.c.add(test{kind: checkEquals, mode: equal.ModeLoose, negated: true, comparison: comparison, result: result})
	return c
}

// When matches when condition, a bool or a callable returning one, is true.
func (c *Chain[S, R]) When(condition, result any) *Chain[S, R] {
	c.c.add(test{kind: checkCondition, comparison: condition, result: result})
	return c
}

// Default stores the fallback without resolving. Calling it again replaces
// the previous fallback.
func (c *Chain[S, R]) Default(result any) *Chain[S, R] {
	c.c.setFallback(result)
	return c
}

// Else stores the fallback and resolves against the chain's own subject.
// On a deferred chain it fails before any test runs with an error matching
// both when.ErrInvalidTerminal and when.ErrMissingSubject.
func (c *Chain[S, R]) Else(result any) (R, error) {
	c.c.setFallback(result)
	if c.c.subject.kind == subjectNone {
		var zero R
		return zero, c.c.invalidTerminal()
	}
	return c.c.resolve(context.Background(), c.c.subject)
}

// Run resolves against the chain's own subject using the fallback stored
// by Default.
func (c *Chain[S, R]) Run() (R, error) {
	return c.c.resolve(context.Background(), c.c.subject)
}

// Resolve evaluates the chain against subject.
func (c *Chain[S, R]) Resolve(subject S) (R, error) {
	return c.c.resolve(context.Background(), valueSource(subject))
}

// ResolveLazy evaluates the chain against the subject produce returns.
func (c *Chain[S, R]) ResolveLazy(produce func() S) (R, error) {
	return c.c.resolve(context.Background(), lazySource(produce))
}

// Async switches the chain to asynchronous resolution and returns its async
// view. Tests registered before the switch are kept.
func (c *Chain[S, R]) Async() *AsyncChain[S, R] {
	c.c.strategy = asyncResolver[S, R]{}
	return &AsyncChain[S, R]{c: c.c}
}

type syncResolver[S, R any] struct{}

func (syncResolver[S, R]) name() string {
	return "sync"
}

func (syncResolver[S, R]) resolve(_ context.Context, c *core[S, R], src source[S]) (R, error) {
	var zero R

	subject, err := syncSubject(c, src)
	if err != nil {
		return zero, err
	}

	if !c.hasFallback {
		return zero, c.missingFallback("resolve")
	}

	for i, t := range c.tests {
		check, err := lazy.Of[S, any](t.comparison)
		if err != nil {
			return zero, c.annotate(err, "comparison", i)
		}
		resolved, err := check(subject)
		if err != nil {
			return zero, c.annotate(err, "comparison", i)
		}
		if !t.passes(resolved, subject) {
			continue
		}

		result, err := lazy.Of[S, R](t.result)
		if err != nil {
			return zero, c.annotate(err, "result", i)
		}
		out, err := result(subject)
		return out, c.annotate(err, "result", i)
	}

	fallback, err := lazy.Of[S, R](c.fallback)
	if err != nil {
		return zero, c.annotate(err, "fallback", -1)
	}
	out, err := fallback(subject)
	return out, c.annotate(err, "fallback", -1)
}

func syncSubject[S, R any](c *core[S, R], src source[S]) (S, error) {
	var zero S
	switch src.kind {
	case subjectValue:
		return src.value, nil
	case subjectLazy:
		return src.produce(), nil
	case subjectPending:
		return zero, c.annotate(when.InvalidValue(src.pending, "a synchronous subject", nil), "subject", -1)
	}
	return zero, c.missingSubject("resolve")
}
