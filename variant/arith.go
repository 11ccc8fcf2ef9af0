package variant

import "math"

// numeric reports whether v is Int or Float.
func numeric(v Variant) bool { return v.kind == KindInt || v.kind == KindFloat }

// Add implements VM `+`: Int+Int wraps as int32, any Float operand promotes
// the whole expression to Float, and String+String concatenates.
func Add(a, b Variant) Variant {
	if a.kind == KindString && b.kind == KindString {
		return String(a.s + b.s)
	}
	if a.kind == KindInt && b.kind == KindInt {
		return Int(a.i + b.i)
	}
	if numeric(a) && numeric(b) {
		fa, _ := a.AsFloat64()
		fb, _ := b.AsFloat64()
		return Float(float32(fa + fb))
	}
	return Nil()
}

func Sub(a, b Variant) Variant {
	if a.kind == KindInt && b.kind == KindInt {
		return Int(a.i - b.i)
	}
	if numeric(a) && numeric(b) {
		fa, _ := a.AsFloat64()
		fb, _ := b.AsFloat64()
		return Float(float32(fa - fb))
	}
	return Nil()
}

// Mul keeps Int*Int in the integer domain (wrapping on overflow), matching
// the other four arithmetic operators; see DESIGN.md Open Question 4 for why
// this diverges from the original engine's Int*Int->Float promotion.
func Mul(a, b Variant) Variant {
	if a.kind == KindInt && b.kind == KindInt {
		return Int(a.i * b.i)
	}
	if numeric(a) && numeric(b) {
		fa, _ := a.AsFloat64()
		fb, _ := b.AsFloat64()
		return Float(float32(fa * fb))
	}
	return Nil()
}

// Div implements `/`. Division by zero always yields Nil, for both Int and
// Float operands (DESIGN.md Open Question 2).
func Div(a, b Variant) Variant {
	if a.kind == KindInt && b.kind == KindInt {
		if b.i == 0 {
			return Nil()
		}
		return Int(a.i / b.i)
	}
	if numeric(a) && numeric(b) {
		fa, _ := a.AsFloat64()
		fb, _ := b.AsFloat64()
		if fb == 0 {
			return Nil()
		}
		return Float(float32(fa / fb))
	}
	return Nil()
}

// Mod implements `mod`, with the same by-zero-yields-Nil rule as Div.
func Mod(a, b Variant) Variant {
	if a.kind == KindInt && b.kind == KindInt {
		if b.i == 0 {
			return Nil()
		}
		return Int(a.i % b.i)
	}
	if numeric(a) && numeric(b) {
		fa, _ := a.AsFloat64()
		fb, _ := b.AsFloat64()
		if fb == 0 {
			return Nil()
		}
		return Float(float32(math.Mod(fa, fb)))
	}
	return Nil()
}

// Neg is a no-op on non-numeric operands.
func Neg(a Variant) Variant {
	switch a.kind {
	case KindInt:
		return Int(-a.i)
	case KindFloat:
		return Float(-a.f)
	default:
		return a
	}
}

// And yields Nil if either operand is Nil, otherwise True.
func And(a, b Variant) Variant {
	if a.IsNil() || b.IsNil() {
		return Nil()
	}
	return True()
}

// Or yields Nil only when both operands are Nil.
func Or(a, b Variant) Variant {
	if a.IsNil() && b.IsNil() {
		return Nil()
	}
	return True()
}

// BitTest implements the BITTEST opcode: Int operands only, else Nil.
func BitTest(a, b Variant) Variant {
	ai, aok := a.Int32()
	bi, bok := b.Int32()
	if !aok || !bok {
		return Nil()
	}
	if ai&(1<<uint32(bi)) != 0 {
		return True()
	}
	return Nil()
}

// Equal implements structural/cross-numeric equality per §4.B: mixed numeric
// types compare as Float, strings compare byte-exact, Nil==Nil and
// True==True are equal, everything else is incomparable (Nil).
func Equal(a, b Variant) Variant { return Bool(equal(a, b)) }

func NotEqual(a, b Variant) Variant { return Bool(!equal(a, b)) }

func equal(a, b Variant) bool {
	switch {
	case a.kind == KindNil && b.kind == KindNil:
		return true
	case a.kind == KindTrue && b.kind == KindTrue:
		return true
	case a.kind == KindString && b.kind == KindString:
		return a.s == b.s
	case numeric(a) && numeric(b):
		fa, _ := a.AsFloat64()
		fb, _ := b.AsFloat64()
		return fa == fb
	default:
		return false
	}
}

// Greater, Less, GreaterEqual, LessEqual implement ordering comparisons: Int
// and Float compare numerically (cross-type allowed), strings compare
// lexicographically, any other combination of types yields Nil.
func Greater(a, b Variant) Variant { return orderCompare(a, b, func(c int) bool { return c > 0 }) }
func Less(a, b Variant) Variant    { return orderCompare(a, b, func(c int) bool { return c < 0 }) }
func GreaterEqual(a, b Variant) Variant {
	return orderCompare(a, b, func(c int) bool { return c >= 0 })
}
func LessEqual(a, b Variant) Variant {
	return orderCompare(a, b, func(c int) bool { return c <= 0 })
}

func orderCompare(a, b Variant, pred func(int) bool) Variant {
	if numeric(a) && numeric(b) {
		fa, _ := a.AsFloat64()
		fb, _ := b.AsFloat64()
		switch {
		case fa < fb:
			return Bool(pred(-1))
		case fa > fb:
			return Bool(pred(1))
		default:
			return Bool(pred(0))
		}
	}
	if a.kind == KindString && b.kind == KindString {
		switch {
		case a.s < b.s:
			return Bool(pred(-1))
		case a.s > b.s:
			return Bool(pred(1))
		default:
			return Bool(pred(0))
		}
	}
	return Nil()
}
