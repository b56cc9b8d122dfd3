package chain

import (
	"context"

	"github.com/google/uuid"
	"github.com/ib-77/when3/pkg/when"
	"github.com/ib-77/when3/pkg/when/equal"
	"github.com/ib-77/when3/pkg/when/future"
)

type subjectKind int

const (
	subjectNone subjectKind = iota
	subjectValue
	subjectLazy
	subjectPending
)

// source is where a resolution takes its subject from.
type source[S any] struct {
	kind    subjectKind
	value   S
	produce func() S
	pending *future.Future[S]
}

func valueSource[S any](v S) source[S] {
	return source[S]{kind: subjectValue, value: v}
}

func lazySource[S any](f func() S) source[S] {
	if f == nil {
		return source[S]{}
	}
	return source[S]{kind: subjectLazy, produce: f}
}

func pendingSource[S any](f *future.Future[S]) source[S] {
	if f == nil {
		return source[S]{}
	}
	return source[S]{kind: subjectPending, pending: f}
}

type checkKind int

const (
	checkEquals checkKind = iota
	checkCondition
)

// test is one registered comparison. Values are kept as supplied and
// normalized by the strategy that resolves them.
type test struct {
	kind       checkKind
	mode       equal.Mode
	negated    bool
	comparison any
	result     any
}

// passes reports whether the resolved comparison value matches subject.
// A condition passes only when it resolved to the boolean true.
func (t test) passes(resolved, subject any) bool {
	if t.kind == checkCondition {
		return equal.Strict(true, resolved)
	}
	return equal.Matcher(t.mode, t.negated)(resolved, subject)
}

// resolver is a resolution strategy.
type resolver[S, R any] interface {
	name() string
	resolve(ctx context.Context, c *core[S, R], subject source[S]) (R, error)
}

// core is the state shared by the sync and async views of one chain.
type core[S, R any] struct {
	id          uuid.UUID
	subject     source[S]
	tests       []test
	fallback    any
	hasFallback bool
	strategy    resolver[S, R]
}

func newCore[S, R any](subject source[S]) *core[S, R] {
	return &core[S, R]{
		id:       uuid.New(),
		subject:  subject,
		strategy: syncResolver[S, R]{},
	}
}

func (c *core[S, R]) add(t test) {
	c.tests = append(c.tests, t)
}

func (c *core[S, R]) setFallback(result any) {
	c.fallback = result
	c.hasFallback = true
}

func (c *core[S, R]) resolve(ctx context.Context, subject source[S]) (R, error) {
	return c.strategy.resolve(ctx, c, subject)
}

func (c *core[S, R]) isAsync() bool {
	_, ok := c.strategy.(asyncResolver[S, R])
	return ok
}

func (c *core[S, R]) meta(operation string) map[string]any {
	return map[string]any{
		when.MetaChainID:   c.id.String(),
		when.MetaOperation: operation,
		when.MetaMode:      c.strategy.name(),
	}
}

func (c *core[S, R]) missingSubject(operation string) error {
	return when.WrapSentinel(when.ErrMissingSubject, "", c.meta(operation))
}

func (c *core[S, R]) missingFallback(operation string) error {
	return when.WrapSentinel(when.ErrMissingFallback, "", c.meta(operation))
}

func (c *core[S, R]) invalidTerminal() error {
	return when.InvalidTerminal(c.meta("else"))
}

// annotate returns a copy of an invalid-value error carrying chain metadata.
// The original error is left as it was; any other error is returned
// untouched.
func (c *core[S, R]) annotate(err error, operation string, index int) error {
	rich, ok := when.As(err)
	if !ok || rich.TextCode != when.TextCodeInvalidValue {
		return err
	}
	fields := make(map[string]any, len(rich.Metadata)+4)
	for k, v := range rich.Metadata {
		fields[k] = v
	}
	for k, v := range c.meta(operation) {
		fields[k] = v
	}
	if index >= 0 {
		fields[when.MetaTestIndex] = index
	}
	return when.WrapSentinel(rich, "", fields)
}
