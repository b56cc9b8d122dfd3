// Package equal implements the two equality modes a comparison chain
// understands.
//
// Strict equality requires identical dynamic types and equal values, with
// identity semantics for uncomparable kinds. Loose equality applies the
// classic abstract-equality coercions mapped onto Go kinds: numbers of any
// width compare by value, booleans become 1 or 0, numeric strings become
// numbers, named types compare through their underlying kind and nil-able
// values are equal to nil.
//
//	equal.Strict(0, false)  // false
//	equal.Loose(0, false)   // true
//	equal.Strict("1", 1)    // false
//	equal.Loose("1", 1)     // true
package equal
