package variant

import "testing"

func TestTruthy(t *testing.T) {
	cases := []struct {
		name string
		v    Variant
		want bool
	}{
		{"nil", Nil(), false},
		{"true", True(), true},
		{"zero int", Int(0), true},
		{"empty string", String(""), true},
	}
	for _, c := range cases {
		if got := c.v.Truthy(); got != c.want {
			t.Errorf("%s: Truthy() = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestAddCrossType(t *testing.T) {
	if got := Add(Int(3), Float(2.5)); got.Kind() != KindFloat {
		t.Fatalf("Int+Float should promote to Float, got kind %v", got.Kind())
	} else if f, _ := got.Float32(); f != 5.5 {
		t.Errorf("Int(3)+Float(2.5) = %v, want 5.5", f)
	}
}

func TestAddStringConcat(t *testing.T) {
	got := Add(String("a"), String("b"))
	if s, ok := got.Str(); !ok || s != "ab" {
		t.Errorf("String+String = %v, want \"ab\"", got)
	}
}

func TestMulIntStaysInt(t *testing.T) {
	got := Mul(Int(6), Int(7))
	if got.Kind() != KindInt {
		t.Fatalf("Int*Int must stay Int, got kind %v", got.Kind())
	}
	if i, _ := got.Int32(); i != 42 {
		t.Errorf("Int(6)*Int(7) = %d, want 42", i)
	}
}

func TestMulIntOverflowWraps(t *testing.T) {
	got := Mul(Int(1<<30), Int(4))
	i, _ := got.Int32()
	if i != 0 { // 1<<30 * 4 = 1<<32, which wraps to 0 in 32-bit arithmetic
		t.Errorf("overflow did not wrap: got %d", i)
	}
}

func TestDivByZero(t *testing.T) {
	if got := Div(Int(1), Int(0)); !got.IsNil() {
		t.Errorf("Int/0 = %v, want Nil", got)
	}
	if got := Div(Float(1), Float(0)); !got.IsNil() {
		t.Errorf("Float/0 = %v, want Nil", got)
	}
}

func TestComparisonMixedTypesYieldNil(t *testing.T) {
	if got := Greater(String("a"), Int(1)); !got.IsNil() {
		t.Errorf("String > Int should be Nil, got %v", got)
	}
}

func TestSeteSelfEquality(t *testing.T) {
	if got := Equal(Int(5), Int(5)); !got.Truthy() {
		t.Errorf("SETE a a should be True")
	}
	if got := NotEqual(Int(5), Int(5)); got.Truthy() {
		t.Errorf("SETNE a a should be Nil")
	}
}

func TestAndOr(t *testing.T) {
	if And(Nil(), True()).Truthy() {
		t.Errorf("And with a Nil operand must be Nil")
	}
	if !Or(Nil(), True()).Truthy() {
		t.Errorf("Or with one True operand must be True")
	}
	if Or(Nil(), Nil()).Truthy() {
		t.Errorf("Or with both Nil must be Nil")
	}
}

func TestNegNonNumericNoOp(t *testing.T) {
	s := String("x")
	if got := Neg(s); got.Kind() != KindString {
		t.Errorf("Neg on non-numeric must be a no-op, got kind %v", got.Kind())
	}
}

func TestPromoteTable(t *testing.T) {
	v := PromoteTable(Nil())
	if !v.IsTable() {
		t.Fatalf("PromoteTable(Nil) should yield a Table")
	}
	v.Set(3, Int(9))
	if got := v.Get(3); got.Kind() != KindInt {
		t.Errorf("table write/read roundtrip failed: got %v", got)
	}
}
