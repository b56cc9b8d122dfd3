package equal

import (
	"reflect"

	"github.com/ib-77/when3/pkg/when"
)

// Mode selects how two values are compared.
type Mode int

const (
	ModeStrict Mode = iota
	ModeLoose
)

func (m Mode) String() string {
	switch m {
	case ModeStrict:
		return "strict"
	case ModeLoose:
		return "loose"
	}
	return "unknown"
}

// Equal compares a and b under the mode.
func (m Mode) Equal(a, b any) bool {
	if m == ModeLoose {
		return Loose(a, b)
	}
	return Strict(a, b)
}

// Matcher returns a function reporting whether want and got match under
// mode, inverted when negated is set.
func Matcher(mode Mode, negated bool) func(want, got any) bool {
	return func(want, got any) bool {
		return mode.Equal(want, got) != negated
	}
}

// Strict reports whether a and b have the same dynamic type and value.
// Maps and slices are equal only to themselves; funcs only when both are nil.
func Strict(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}

	if ta.Comparable() {
		return comparableEqual(a, b)
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch ta.Kind() {
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len() && va.IsNil() == vb.IsNil()
	case reflect.Map:
		return va.Pointer() == vb.Pointer()
	case reflect.Func:
		return va.IsNil() && vb.IsNil()
	}
	return false
}

// comparableEqual guards against structs or arrays holding interfaces with
// uncomparable dynamic values, where == panics.
func comparableEqual(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

// Loose reports whether a and b are equal after coercion.
func Loose(a, b any) bool {
	if Strict(a, b) {
		return true
	}

	aNil, bNil := when.IsNil(a), when.IsNil(b)
	if aNil || bNil {
		return aNil && bNil
	}

	pa, aPrim := primitiveOf(a)
	pb, bPrim := primitiveOf(b)

	// two non-primitive values are only equal by identity, handled by Strict
	if !aPrim && !bPrim {
		return false
	}

	if !aPrim {
		if pa, aPrim = stringerOf(a); !aPrim {
			return false
		}
	}
	if !bPrim {
		if pb, bPrim = stringerOf(b); !bPrim {
			return false
		}
	}

	return pa.looseEqual(pb)
}
