package lazy

import (
	"errors"
	"strconv"
	"testing"

	"github.com/ib-77/when3/pkg/when"
)

func TestOf_Literal(t *testing.T) {
	t.Parallel()

	f, err := Of[int, string]("x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := f(1)
	if err != nil || got != "x" {
		t.Fatalf("expected x, got %q err=%v", got, err)
	}
}

func TestOf_TypedShapes(t *testing.T) {
	t.Parallel()

	shapes := map[string]any{
		"func":             Func[int, string](func(s int) (string, error) { return strconv.Itoa(s), nil }),
		"subject":          func(s int) string { return strconv.Itoa(s) },
		"subject+err":      func(s int) (string, error) { return strconv.Itoa(s), nil },
		"reflective":       func(s any) string { return strconv.Itoa(s.(int)) },
		"reflective wider": func(s int) any { return strconv.Itoa(s) },
	}

	for name, shape := range shapes {
		f, err := Of[int, string](shape)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		got, err := f(7)
		if err != nil || got != "7" {
			t.Fatalf("%s: expected 7, got %q err=%v", name, got, err)
		}
	}
}

func TestOf_ZeroArgCallable(t *testing.T) {
	t.Parallel()

	calls := 0
	f, err := Of[string, int](func() int { calls++; return 5 })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 0 {
		t.Fatalf("normalization must not invoke the callable")
	}
	for range 3 {
		if got, _ := f("ignored"); got != 5 {
			t.Fatalf("expected 5, got %d", got)
		}
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestOf_CallableAndLiteralAgree(t *testing.T) {
	t.Parallel()

	literal, _ := Of[int, string]("same")
	callable, _ := Of[int, string](func() string { return "same" })

	a, _ := literal(1)
	b, _ := callable(1)
	if a != b {
		t.Fatalf("literal %q and callable %q disagree", a, b)
	}
}

func TestOf_ErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	f, err := Of[int, int](func(int) (int, error) { return 0, boom })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f(1); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	g, err := Of[int, any](func(int) (string, error) { return "", boom })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := g(1); !errors.Is(err, boom) {
		t.Fatalf("expected boom from reflective call, got %v", err)
	}
}

func TestOf_InvalidValues(t *testing.T) {
	t.Parallel()

	invalid := map[string]any{
		"wrong literal":     42,
		"two params":        func(a, b int) string { return "" },
		"variadic":          func(a ...int) string { return "" },
		"no results":        func(int) {},
		"bad second result": func(int) (string, int) { return "", 0 },
		"wrong param":       func(s string) string { return s },
		"nil literal":       nil,
		"nil typed func":    (func(int) string)(nil),
	}

	for name, v := range invalid {
		if _, err := Of[int, string](v); !errors.Is(err, when.ErrInvalidValue) {
			t.Fatalf("%s: expected ErrInvalidValue, got %v", name, err)
		}
	}
}

func TestOf_ReflectiveResultMismatch(t *testing.T) {
	t.Parallel()

	f, err := Of[int, string](func(int) int { return 1 })
	if err != nil {
		t.Fatalf("unexpected error at normalization: %v", err)
	}
	if _, err := f(1); !errors.Is(err, when.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue at call time, got %v", err)
	}
}

func TestOf_NilLiteralForNilableType(t *testing.T) {
	t.Parallel()

	f, err := Of[int, *int](nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := f(1); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}

	g, err := Of[int, any](nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := g(1); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestOf_FuncTypedValueIsLiteral(t *testing.T) {
	t.Parallel()

	handler := func() int { return 9 }
	f, err := Of[string, func() int](handler)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := f("x")
	if got() != 9 {
		t.Fatalf("expected the func itself to be returned")
	}
}

func TestOf_NilSubjectForInterfaceParam(t *testing.T) {
	t.Parallel()

	f, err := Of[any, bool](func(s any) bool { return s == nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, err := f(nil); err != nil || !got {
		t.Fatalf("expected true for nil subject, got %v err=%v", got, err)
	}

	g, err := Of[any, bool](func(s *int) bool { return s == nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, err := g(nil); err != nil || !got {
		t.Fatalf("expected nil pointer argument, got %v err=%v", got, err)
	}
	if _, err := g("not a pointer"); !errors.Is(err, when.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue for mismatched subject, got %v", err)
	}
}

func TestLiteral_NumericConversion(t *testing.T) {
	t.Parallel()

	if v, err := Literal[int64](1); err != nil || v != 1 {
		t.Fatalf("expected int64(1), got %v err=%v", v, err)
	}
	if v, err := Literal[float64](3); err != nil || v != 3 {
		t.Fatalf("expected 3.0, got %v err=%v", v, err)
	}
	if _, err := Literal[int](1.5); !errors.Is(err, when.ErrInvalidValue) {
		t.Fatalf("expected lossy conversion to fail, got %v", err)
	}
	if _, err := Literal[uint](-1); !errors.Is(err, when.ErrInvalidValue) {
		t.Fatalf("expected negative to unsigned to fail, got %v", err)
	}
	if _, err := Literal[int8](300); !errors.Is(err, when.ErrInvalidValue) {
		t.Fatalf("expected overflow to fail, got %v", err)
	}
	if _, err := Literal[string](1); !errors.Is(err, when.ErrInvalidValue) {
		t.Fatalf("numbers must not convert to strings, got %v", err)
	}
	if v, err := Literal[float32](0.1); err != nil || v != float32(0.1) {
		t.Fatalf("expected float32(0.1), got %v err=%v", v, err)
	}
	if v, err := Literal[float32](1.5); err != nil || v != 1.5 {
		t.Fatalf("expected float32(1.5), got %v err=%v", v, err)
	}
	if _, err := Literal[float32](0.123456789); !errors.Is(err, when.ErrInvalidValue) {
		t.Fatalf("expected float32 rounding to fail, got %v", err)
	}
	if _, err := Literal[float32](1e300); !errors.Is(err, when.ErrInvalidValue) {
		t.Fatalf("expected float32 overflow to fail, got %v", err)
	}
}

type label string

type enabled bool

func TestLiteral_NamedKinds(t *testing.T) {
	t.Parallel()

	if v, err := Literal[label]("other"); err != nil || v != label("other") {
		t.Fatalf("expected label(other), got %v err=%v", v, err)
	}
	if v, err := Literal[string](label("x")); err != nil || v != "x" {
		t.Fatalf("expected x, got %v err=%v", v, err)
	}
	if v, err := Literal[enabled](true); err != nil || !bool(v) {
		t.Fatalf("expected enabled(true), got %v err=%v", v, err)
	}
	if _, err := Literal[label](65); !errors.Is(err, when.ErrInvalidValue) {
		t.Fatalf("numbers must not convert to named strings, got %v", err)
	}
	if _, err := Literal[enabled]("true"); !errors.Is(err, when.ErrInvalidValue) {
		t.Fatalf("strings must not convert to named bools, got %v", err)
	}
}
