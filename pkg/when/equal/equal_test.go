package equal

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

type level int

type color string

type flag bool

type point struct{ X, Y int }

type named struct{ name string }

func (n named) String() string { return n.name }

type holder struct{ v any }

func TestStrict(t *testing.T) {
	t.Parallel()

	shared := []int{1, 2}
	m := map[string]int{"a": 1}
	p := &point{1, 2}

	cases := []struct {
		name string
		a, b any
		want bool
	}{
		{"same ints", 1, 1, true},
		{"different ints", 1, 2, false},
		{"int vs int64", 1, int64(1), false},
		{"int vs float", 1, 1.0, false},
		{"zero vs false", 0, false, false},
		{"string vs int", "1", 1, false},
		{"same strings", "a", "a", true},
		{"named vs plain", level(1), 1, false},
		{"both nil", nil, nil, true},
		{"nil vs zero", nil, 0, false},
		{"nil vs typed nil", nil, (*point)(nil), false},
		{"structs by value", point{1, 2}, point{1, 2}, true},
		{"same pointer", p, p, true},
		{"distinct pointers", &point{1, 2}, &point{1, 2}, false},
		{"same slice", shared, shared, true},
		{"equal slices", []int{1, 2}, []int{1, 2}, false},
		{"same map", m, m, true},
		{"equal maps", map[string]int{"a": 1}, map[string]int{"a": 1}, false},
		{"nan", math.NaN(), math.NaN(), false},
		{"negative zero", 0.0, math.Copysign(0, -1), true},
		{"uncomparable inside interface", holder{[]int{1}}, holder{[]int{1}}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Strict(tc.a, tc.b))
		})
	}
}

func TestLoose(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		a, b any
		want bool
	}{
		{"zero vs false", 0, false, true},
		{"one vs true", 1, true, true},
		{"two vs true", 2, true, false},
		{"numeric string vs int", "1", 1, true},
		{"numeric string vs float", "1.5", 1.5, true},
		{"decimal string vs float", "0.1", 0.1, true},
		{"decimal string vs float32", "0.1", float32(0.1), true},
		{"decimal string vs other float", "0.1", 0.2, false},
		{"overflowing string vs inf", "1e400", math.Inf(1), true},
		{"long string vs exact int", "9007199254740993", int64(9007199254740993), true},
		{"long string vs neighbouring int", "9007199254740993", int64(9007199254740992), false},
		{"padded string", "  42 ", 42, true},
		{"empty string vs zero", "", 0, true},
		{"empty string vs false", "", false, true},
		{"string one vs true", "1", true, true},
		{"string zero vs false", "0", false, true},
		{"hex string", "0x1F", 31, true},
		{"binary string", "0b101", 5, true},
		{"octal string", "0o17", 15, true},
		{"exponent string", "1e3", 1000, true},
		{"infinity string", "-Infinity", math.Inf(-1), true},
		{"word string", "abc", 0, false},
		{"go inf spelling", "inf", math.Inf(1), false},
		{"strings stay strings", "1", "1.0", false},
		{"int widths", int8(7), uint64(7), true},
		{"int vs float", 3, 3.0, true},
		{"int vs fraction", 3, 3.5, false},
		{"large ints", int64(math.MaxInt64), uint64(math.MaxInt64), true},
		{"large int vs rounded float", int64(math.MaxInt64), float64(math.MaxInt64), false},
		{"nan", math.NaN(), math.NaN(), false},
		{"nan string", "NaN", math.NaN(), false},
		{"named int", level(2), 2, true},
		{"named string", color("red"), "red", true},
		{"named bool", flag(true), 1, true},
		{"nil vs nil pointer", nil, (*point)(nil), true},
		{"nil slice vs nil map", []int(nil), map[int]int(nil), true},
		{"nil vs zero", nil, 0, false},
		{"nil vs false", nil, false, false},
		{"nil vs empty string", nil, "", false},
		{"stringer vs string", named{"x"}, "x", true},
		{"stringer vs other string", named{"x"}, "y", false},
		{"error vs string", errors.New("boom"), "boom", true},
		{"two structs", point{1, 2}, point{1, 2}, true},
		{"distinct slices", []int{1}, []int{1}, false},
		{"struct vs number", point{1, 2}, 1, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Loose(tc.a, tc.b), "Loose(%#v, %#v)", tc.a, tc.b)
			assert.Equal(t, tc.want, Loose(tc.b, tc.a), "Loose is symmetric for %#v, %#v", tc.b, tc.a)
		})
	}
}

func TestMatcher_NegationDuality(t *testing.T) {
	t.Parallel()

	values := []any{0, 1, "1", "", false, true, nil, 1.0, level(1), point{}}
	for _, mode := range []Mode{ModeStrict, ModeLoose} {
		eq := Matcher(mode, false)
		neq := Matcher(mode, true)
		for _, a := range values {
			for _, b := range values {
				if eq(a, b) == neq(a, b) {
					t.Fatalf("%s: equality and negation agree for %#v, %#v", mode, a, b)
				}
			}
		}
	}
}

func TestMode_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "strict", ModeStrict.String())
	assert.Equal(t, "loose", ModeLoose.String())
	assert.Equal(t, "unknown", Mode(9).String())
}
