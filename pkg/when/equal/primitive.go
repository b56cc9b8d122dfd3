package equal

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

type primitiveKind int

const (
	kindBool primitiveKind = iota
	kindNumber
	kindString
)

// primitive is a boolean, number or string reduced from any Go kind.
// A nil num on a number means NaN. bits is the width of a float operand and
// zero for exact numbers.
type primitive struct {
	kind primitiveKind
	b    bool
	num  *big.Float
	bits int
	str  string
}

func primitiveOf(v any) (primitive, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return primitive{kind: kindBool, b: rv.Bool()}, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return primitive{kind: kindNumber, num: new(big.Float).SetInt64(rv.Int())}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return primitive{kind: kindNumber, num: new(big.Float).SetUint64(rv.Uint())}, true
	case reflect.Float32, reflect.Float64:
		return floatPrimitive(rv.Float(), rv.Type().Bits()), true
	case reflect.String:
		return primitive{kind: kindString, str: rv.String()}, true
	}
	return primitive{}, false
}

func stringerOf(v any) (primitive, bool) {
	switch s := v.(type) {
	case fmt.Stringer:
		return primitive{kind: kindString, str: s.String()}, true
	case error:
		return primitive{kind: kindString, str: s.Error()}, true
	}
	return primitive{}, false
}

func floatPrimitive(f float64, bits int) primitive {
	if math.IsNaN(f) {
		return primitive{kind: kindNumber, bits: bits}
	}
	return primitive{kind: kindNumber, num: new(big.Float).SetFloat64(f), bits: bits}
}

func boolNumber(b bool) primitive {
	if b {
		return primitive{kind: kindNumber, num: big.NewFloat(1)}
	}
	return primitive{kind: kindNumber, num: big.NewFloat(0)}
}

func (p primitive) looseEqual(o primitive) bool {
	if p.kind == kindBool && o.kind == kindBool {
		return p.b == o.b
	}
	if p.kind == kindString && o.kind == kindString {
		return p.str == o.str
	}
	if p.kind == kindBool {
		return boolNumber(p.b).looseEqual(o)
	}
	if o.kind == kindBool {
		return p.looseEqual(boolNumber(o.b))
	}
	return p.toNumber(o.bits).numberEqual(o.toNumber(p.bits))
}

// toNumber converts a string to a number, rounded to a float of the given
// width when it is compared against one.
func (p primitive) toNumber(bits int) primitive {
	if p.kind != kindString {
		return p
	}
	if bits > 0 {
		return parseFloat(p.str, bits)
	}
	return parseNumber(p.str)
}

func (p primitive) numberEqual(o primitive) bool {
	if p.num == nil || o.num == nil {
		return false
	}
	return p.num.Cmp(o.num) == 0
}

var (
	decimalLiteral = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	prefixLiteral  = regexp.MustCompile(`^0([xX][0-9a-fA-F]+|[oO][0-7]+|[bB][01]+)$`)
)

const numberPrecision = 256

// parseNumber converts a string the way numeric coercion does: surrounding
// whitespace is ignored, the empty string is zero and anything that is not a
// decimal, prefixed integer or signed Infinity is NaN.
func parseNumber(s string) primitive {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return primitive{kind: kindNumber, num: big.NewFloat(0)}
	case "Infinity", "+Infinity":
		return primitive{kind: kindNumber, num: new(big.Float).SetInf(false)}
	case "-Infinity":
		return primitive{kind: kindNumber, num: new(big.Float).SetInf(true)}
	}

	base := 10
	switch {
	case decimalLiteral.MatchString(s):
	case prefixLiteral.MatchString(s):
		base = 0
	default:
		return primitive{kind: kindNumber}
	}

	f, _, err := new(big.Float).SetPrec(numberPrecision).Parse(s, base)
	if err != nil {
		return primitive{kind: kindNumber}
	}
	return primitive{kind: kindNumber, num: f}
}

// parseFloat is parseNumber rounded to the nearest float of the given width.
// Decimals too large for it become infinite.
func parseFloat(s string, bits int) primitive {
	n := parseNumber(s)
	if n.num == nil || n.num.IsInf() {
		return n
	}

	if t := strings.TrimSpace(s); decimalLiteral.MatchString(t) {
		f, err := strconv.ParseFloat(t, bits)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return primitive{kind: kindNumber, bits: bits}
		}
		return floatPrimitive(f, bits)
	}

	if bits == 32 {
		f, _ := n.num.Float32()
		return floatPrimitive(float64(f), bits)
	}
	f, _ := n.num.Float64()
	return floatPrimitive(f, bits)
}
