package when

import (
	"context"
	"errors"
	"reflect"
)

// IsNil reports whether i is nil or a nil value of a nil-able kind.
func IsNil(i any) bool {
	if i == nil {
		return true
	}
	v := reflect.ValueOf(i)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func,
		reflect.Interface, reflect.UnsafePointer:
		return v.IsNil()
	}
	return false
}

// IsNilable reports whether the zero value of t is nil.
func IsNilable(t reflect.Type) bool {
	if t == nil {
		return true
	}
	switch t.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func,
		reflect.Interface, reflect.UnsafePointer:
		return true
	}
	return false
}

// TypeName returns a printable type name for error metadata.
func TypeName(i any) string {
	if i == nil {
		return "nil"
	}
	return reflect.TypeOf(i).String()
}

func IsCancellationError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
