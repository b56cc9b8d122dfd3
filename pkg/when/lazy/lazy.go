package lazy

import (
	"context"
	"math"
	"reflect"
	"strconv"

	"github.com/ib-77/when3/pkg/when"
	"github.com/ib-77/when3/pkg/when/equal"
)

// Func resolves a value for a subject.
type Func[S, T any] func(subject S) (T, error)

var (
	errorType   = reflect.TypeFor[error]()
	contextType = reflect.TypeFor[context.Context]()
)

// Value returns a Func that ignores the subject and yields v.
func Value[S, T any](v T) Func[S, T] {
	return func(S) (T, error) {
		return v, nil
	}
}

// Of normalizes v into a Func. It fails with when.ErrInvalidValue when v is
// neither a usable callable nor a literal of type T.
func Of[S, T any](v any) (Func[S, T], error) {
	switch f := v.(type) {
	case Func[S, T]:
		if f == nil {
			break
		}
		return f, nil
	case func(S) (T, error):
		if f == nil {
			break
		}
		return f, nil
	case func(S) T:
		if f == nil {
			break
		}
		return func(s S) (T, error) { return f(s), nil }, nil
	case func() (T, error):
		if f == nil {
			break
		}
		return func(S) (T, error) { return f() }, nil
	case func() T:
		if f == nil {
			break
		}
		return func(S) (T, error) { return f(), nil }, nil
	}

	if isFunc(v) && !isFuncType[T]() {
		return reflective[S, T](v)
	}

	t, err := Literal[T](v)
	if err != nil {
		return nil, err
	}
	return Value[S](t), nil
}

// Literal converts v to T: by assertion, as the zero value for a nil v and a
// nil-able T, between string or bool types of the same kind, or by a
// value-preserving numeric conversion.
func Literal[T any](v any) (T, error) {
	if t, ok := v.(T); ok {
		return t, nil
	}

	var zero T
	target := reflect.TypeFor[T]()
	if v == nil {
		if when.IsNilable(target) {
			return zero, nil
		}
		return zero, when.InvalidValue(v, target.String(), nil)
	}

	rv := reflect.ValueOf(v)
	if converted, ok := convertKind(rv, target); ok {
		return converted.Interface().(T), nil
	}
	if converted, ok := convertNumber(rv, target); ok {
		return converted.Interface().(T), nil
	}
	return zero, when.InvalidValue(v, target.String(), nil)
}

// convertKind converts between named and unnamed string or bool types.
func convertKind(v reflect.Value, target reflect.Type) (reflect.Value, bool) {
	switch v.Kind() {
	case reflect.String, reflect.Bool:
	default:
		return reflect.Value{}, false
	}
	if v.Kind() != target.Kind() || !v.Type().ConvertibleTo(target) {
		return reflect.Value{}, false
	}
	return v.Convert(target), true
}

func convertNumber(v reflect.Value, target reflect.Type) (reflect.Value, bool) {
	if !isNumberKind(v.Kind()) || !isNumberKind(target.Kind()) {
		return reflect.Value{}, false
	}
	converted := v.Convert(target)
	if target.Kind() == reflect.Float32 && v.Kind() == reflect.Float64 {
		return converted, sameDecimal(v.Float(), converted.Float())
	}
	if !equal.Loose(v.Interface(), converted.Interface()) {
		return reflect.Value{}, false
	}
	return converted, true
}

// sameDecimal reports whether narrowed, printed as the shortest float32,
// reads back as wide. A float64 literal such as 0.1 is then accepted as the
// float32 0.1.
func sameDecimal(wide, narrowed float64) bool {
	if math.IsNaN(wide) {
		return math.IsNaN(narrowed)
	}
	if math.IsInf(wide, 0) {
		return wide == narrowed
	}
	back, err := strconv.ParseFloat(strconv.FormatFloat(narrowed, 'g', -1, 32), 64)
	return err == nil && back == wide
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func isFunc(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Func
}

func isFuncType[T any]() bool {
	return reflect.TypeFor[T]().Kind() == reflect.Func
}

// reflective wraps an arbitrary func of zero or one parameter returning X
// or (X, error).
func reflective[S, T any](v any) (Func[S, T], error) {
	call, err := reflectCall[S, T](v, false)
	if err != nil {
		return nil, err
	}
	return func(s S) (T, error) {
		return call(nil, s)
	}, nil
}

// reflectCall validates the shape of the func in v and returns a caller for
// it. With withContext set the func takes a context.Context first.
func reflectCall[S, T any](v any, withContext bool) (func(ctx context.Context, s S) (T, error), error) {
	fn := reflect.ValueOf(v)
	ft := fn.Type()
	want := reflect.TypeFor[T]().String()

	lead := 0
	if withContext {
		lead = 1
	}

	if fn.IsNil() || ft.IsVariadic() || ft.NumIn() < lead || ft.NumIn() > lead+1 {
		return nil, when.InvalidValue(v, want, nil)
	}
	if withContext && ft.In(0) != contextType {
		return nil, when.InvalidValue(v, want, nil)
	}

	takesSubject := ft.NumIn() == lead+1
	if takesSubject {
		subject := reflect.TypeFor[S]()
		if !subject.AssignableTo(ft.In(lead)) && subject.Kind() != reflect.Interface {
			return nil, when.InvalidValue(v, want, nil)
		}
	}

	switch ft.NumOut() {
	case 1:
	case 2:
		if ft.Out(1) != errorType {
			return nil, when.InvalidValue(v, want, nil)
		}
	default:
		return nil, when.InvalidValue(v, want, nil)
	}

	return func(ctx context.Context, s S) (T, error) {
		var zero T

		args := make([]reflect.Value, 0, 2)
		if withContext {
			if ctx == nil {
				ctx = context.Background()
			}
			args = append(args, reflect.ValueOf(ctx))
		}
		if takesSubject {
			arg, err := argument(ft.In(lead), s)
			if err != nil {
				return zero, err
			}
			args = append(args, arg)
		}

		out := fn.Call(args)
		if len(out) == 2 && !out[1].IsNil() {
			return zero, out[1].Interface().(error)
		}
		return Literal[T](out[0].Interface())
	}, nil
}

// takesContext reports whether v is a func whose first parameter is a
// context.Context.
func takesContext(v any) bool {
	if !isFunc(v) {
		return false
	}
	ft := reflect.TypeOf(v)
	return ft.NumIn() > 0 && ft.In(0) == contextType
}

func argument[S any](in reflect.Type, s S) (reflect.Value, error) {
	a := any(s)
	if a == nil {
		if when.IsNilable(in) {
			return reflect.Zero(in), nil
		}
		return reflect.Value{}, when.InvalidValue(a, in.String(), nil)
	}

	v := reflect.ValueOf(a)
	if !v.Type().AssignableTo(in) {
		return reflect.Value{}, when.InvalidValue(a, in.String(), nil)
	}
	return v, nil
}
