package main

import (
	"strconv"
	"strings"
)

// Value is the tagged sum of runtime values manipulated by the data and
// return stacks: a signed integer, an owned string, or an array of Values.
// The variant is closed by design (see DESIGN.md); a future numeric type
// would require extending every arithmetic method below.
type Value struct {
	kind  valueKind
	i     int64
	s     string
	array []Value
}

type valueKind uint8

const (
	kindInt valueKind = iota
	kindString
	kindArray
)

// nan is the sentinel string produced by mixed-type arithmetic, matching the
// source's Variable::Sub/Add/etc: "(Variable::Int(a), Variable::Int(b)) => ...,
// _ => Variable::String("NAN".into())".
const nan = "NAN"

// Int wraps an integer as a Value.
func Int(v int64) Value { return Value{kind: kindInt, i: v} }

// String wraps a string as a Value.
func String(v string) Value { return Value{kind: kindString, s: v} }

// Array wraps a sequence of Values as a Value.
func Array(vs []Value) Value { return Value{kind: kindArray, array: vs} }

// True and False are the canonical boolean Values: false is Int(0), true is
// Int(-1); any other non-zero Int is truthy on read (see Truthy).
var (
	True  = Int(-1)
	False = Int(0)
)

// Bool converts a Go bool to the canonical Forth boolean Value.
func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}

// IsInt reports whether v holds an integer.
func (v Value) IsInt() bool { return v.kind == kindInt }

// Int64 returns the integer payload, or 0 if v is not an Int.
func (v Value) Int64() int64 { return v.i }

// Truthy implements the boolean convention from spec.md §3: false is
// Int(0), true is Int(-1), any non-zero Int is truthy. Non-Int values are
// never truthy.
func (v Value) Truthy() bool { return v.kind == kindInt && v.i != 0 }

// Display renders a Value the way the runtime write sink receives it: an
// integer's decimal form, a string's raw characters, or the concatenation
// of an array's elements' own displays.
func (v Value) Display() string {
	switch v.kind {
	case kindInt:
		return strconv.FormatInt(v.i, 10)
	case kindString:
		return v.s
	case kindArray:
		var b strings.Builder
		for _, e := range v.array {
			b.WriteString(e.Display())
		}
		return b.String()
	default:
		return ""
	}
}

func binOp(a, b Value, intOp func(a, b int64) int64) Value {
	if a.kind == kindInt && b.kind == kindInt {
		return Int(intOp(a.i, b.i))
	}
	return String(nan)
}

// Add implements Forth `+`: integer addition, or the NAN sentinel for any
// mixed-type operand pair.
func (v Value) Add(o Value) Value { return binOp(v, o, func(a, b int64) int64 { return a + b }) }

// Sub implements Forth `-`.
func (v Value) Sub(o Value) Value { return binOp(v, o, func(a, b int64) int64 { return a - b }) }

// Mul implements Forth `*`.
func (v Value) Mul(o Value) Value { return binOp(v, o, func(a, b int64) int64 { return a * b }) }

// Div implements Forth `/`. Division by zero halts with a Go runtime panic
// the same way the source's i64 division would; callers (builtins.go) guard
// against it explicitly rather than relying on recover.
func (v Value) Div(o Value) Value { return binOp(v, o, func(a, b int64) int64 { return a / b }) }

// Mod implements Forth `mod`.
func (v Value) Mod(o Value) Value { return binOp(v, o, func(a, b int64) int64 { return a % b }) }

// Neg negates an Int in place semantics (returns a new Value); non-Int
// Values pass through unchanged, matching the source's negate builtin which
// only matches the Variable::Int arm and falls through otherwise.
func (v Value) Neg() Value {
	if v.kind == kindInt {
		return Int(-v.i)
	}
	return v
}

// Abs mirrors Neg but for absolute value.
func (v Value) Abs() Value {
	if v.kind == kindInt {
		if v.i < 0 {
			return Int(-v.i)
		}
		return v
	}
	return v
}

// Equal implements Forth `=`: structural equality across kinds (an Int
// never equals a String or Array).
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case kindInt:
		return v.i == o.i
	case kindString:
		return v.s == o.s
	case kindArray:
		if len(v.array) != len(o.array) {
			return false
		}
		for i := range v.array {
			if !v.array[i].Equal(o.array[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Less implements an ordering used by max/min: Ints compare numerically;
// Strings compare lexically; cross-kind comparisons (and Arrays) are always
// false, matching the closed, non-numeric treatment the source gives to
// anything that isn't a plain Int pair.
func (v Value) Less(o Value) bool {
	switch {
	case v.kind == kindInt && o.kind == kindInt:
		return v.i < o.i
	case v.kind == kindString && o.kind == kindString:
		return v.s < o.s
	default:
		return false
	}
}

// Max returns whichever of v, o is greater (v on a tie).
func (v Value) Max(o Value) Value {
	if v.Less(o) {
		return o
	}
	return v
}

// Min returns whichever of v, o is lesser (v on a tie).
func (v Value) Min(o Value) Value {
	if o.Less(v) {
		return o
	}
	return v
}

// ParseInt parses a base-10 signed 64-bit integer token, per spec.md §1
// ("Non-goals: ... multi-radix numeric input (base is fixed at 10)").
func ParseInt(token string) (Value, bool) {
	n, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return Value{}, false
	}
	return Int(n), true
}
