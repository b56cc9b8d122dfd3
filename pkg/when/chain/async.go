package chain

import (
	"context"

	"github.com/google/uuid"
	"github.com/ib-77/when3/pkg/when/equal"
	"github.com/ib-77/when3/pkg/when/future"
	"github.com/ib-77/when3/pkg/when/lazy"
)

// AsyncChain is the asynchronous view of a chain. Its terminal operations
// return futures; evaluation still happens one step at a time in
// registration order.
type AsyncChain[S, R any] struct {
	c *core[S, R]
}

// ID identifies the chain in error metadata.
func (a *AsyncChain[S, R]) ID() uuid.UUID {
	return a.c.id
}

// Len returns the number of registered tests.
func (a *AsyncChain[S, R]) Len() int {
	return len(a.c.tests)
}

// Equals is the async form of Chain.Equals.
func (a *AsyncChain[S, R]) Equals(comparison, result any) *AsyncChain[S, R] {
	a.c.add(test{kind: checkEquals, mode: equal.ModeStrict, comparison: comparison, result: result})
	return a
}

// EqualsLoosely is the async form of Chain.EqualsLoosely.
func (a *AsyncChain[S, R]) EqualsLoosely(comparison, result any) *AsyncChain[S, R] {
	a.c.add(test{kind: checkEquals, mode: equal.ModeLoose, comparison: comparison, result: result})
	return a
}

// NotEquals is the async form of Chain.NotEquals.
func (a *AsyncChain[S, R]) NotEquals(comparison, result any) *AsyncChain[S, R] {
	a.c.add(test{kind: checkEquals, mode: equal.ModeStrict, negated: true, comparison: comparison, result: result})
	return a
}

// NotEqualsLoosely is the async form of Chain.NotEqualsLoosely.
func (a *AsyncChain[S, R]) NotEqualsLoosely(comparison, result any) *AsyncChain[S, R] {
	a.c.add(test{kind: checkEquals, mode: equal.ModeLoose, negated: true, comparison: comparison, result: result})
	return a
}

// When matches when condition, which may also be a pending bool, is true.
func (a *AsyncChain[S, R]) When(condition, result any) *AsyncChain[S, R] {
	a.c.add(test{kind: checkCondition, comparison: condition, result: result})
	return a
}

// Default stores the fallback without resolving; the last call wins.
func (a *AsyncChain[S, R]) Default(result any) *AsyncChain[S, R] {
	a.c.setFallback(result)
	return a
}

// Else stores the fallback and resolves against the chain's own subject.
// On a deferred chain the returned future is already rejected.
func (a *AsyncChain[S, R]) Else(ctx context.Context, result any) *future.Future[R] {
	a.c.setFallback(result)
	if a.c.subject.kind == subjectNone {
		return future.Rejected[R](a.c.invalidTerminal())
	}
	return a.run(ctx, a.c.subject)
}

// Run resolves against the chain's own subject using the stored fallback.
func (a *AsyncChain[S, R]) Run(ctx context.Context) *future.Future[R] {
	return a.run(ctx, a.c.subject)
}

// Resolve evaluates the chain against subject.
func (a *AsyncChain[S, R]) Resolve(ctx context.Context, subject S) *future.Future[R] {
	return a.run(ctx, valueSource(subject))
}

// ResolvePending evaluates the chain against the value subject settles with.
func (a *AsyncChain[S, R]) ResolvePending(ctx context.Context, subject *future.Future[S]) *future.Future[R] {
	return a.run(ctx, pendingSource(subject))
}

// Sync returns the blocking view of the chain. The chain stays in async
// mode: its terminals await every step and return once resolution ends.
func (a *AsyncChain[S, R]) Sync() *Chain[S, R] {
	return &Chain[S, R]{c: a.c}
}

func (a *AsyncChain[S, R]) run(ctx context.Context, src source[S]) *future.Future[R] {
	return future.Go(ctx, func(ctx context.Context) (R, error) {
		return a.c.resolve(ctx, src)
	})
}

type asyncResolver[S, R any] struct{}

func (asyncResolver[S, R]) name() string {
	return "async"
}

func (asyncResolver[S, R]) resolve(ctx context.Context, c *core[S, R], src source[S]) (R, error) {
	var zero R

	subject, err := asyncSubject(ctx, c, src)
	if err != nil {
		return zero, err
	}

	if !c.hasFallback {
		return zero, c.missingFallback("resolve")
	}

	for i, t := range c.tests {
		check, err := lazy.OfAsync[S, any](t.comparison)
		if err != nil {
			return zero, c.annotate(err, "comparison", i)
		}
		resolved, err := check(ctx, subject)
		if err != nil {
			return zero, c.annotate(err, "comparison", i)
		}
		if !t.passes(resolved, subject) {
			continue
		}

		result, err := lazy.OfAsync[S, R](t.result)
		if err != nil {
			return zero, c.annotate(err, "result", i)
		}
		out, err := result(ctx, subject)
		return out, c.annotate(err, "result", i)
	}

	fallback, err := lazy.OfAsync[S, R](c.fallback)
	if err != nil {
		return zero, c.annotate(err, "fallback", -1)
	}
	out, err := fallback(ctx, subject)
	return out, c.annotate(err, "fallback", -1)
}

func asyncSubject[S, R any](ctx context.Context, c *core[S, R], src source[S]) (S, error) {
	var zero S
	switch src.kind {
	case subjectValue:
		return src.value, nil
	case subjectLazy:
		return src.produce(), nil
	case subjectPending:
		return src.pending.Await(ctx)
	}
	return zero, c.missingSubject("resolve")
}
