// Package variant implements the VM's dynamically typed runtime value.
//
// A Variant is a tagged union over Nil, True, Int, Float, String, Table and
// SavedFrameInfo. Tables are keyed by uint32 and any non-Table value is
// implicitly promoted to an empty Table the first time it's written through
// a key (see PromoteTable). SavedFrameInfo never escapes to script code; it
// only ever lives in a context's own stack slots.
package variant

import "fmt"

// Kind identifies which alternative of the union is populated.
type Kind uint8

const (
	KindNil Kind = iota
	KindTrue
	KindInt
	KindFloat
	KindString
	KindTable
	KindSavedFrameInfo
)

// SavedFrameInfo is the VM-internal caller-state record pushed by CALL and
// consumed by RET/RETV. It is never visible to script code.
type SavedFrameInfo struct {
	StackBase  int32
	StackPos   int32
	ReturnAddr uint32
	Args       int32
}

// Variant is the VM's single value representation. Zero value is Nil.
type Variant struct {
	kind  Kind
	i     int32
	f     float32
	s     string
	table map[uint32]Variant
	frame SavedFrameInfo
}

// Nil is the canonical "no value" / boolean-false sentinel.
func Nil() Variant { return Variant{kind: KindNil} }

// True is the sole boolean-true value. There is no False constructor; use Nil.
func True() Variant { return Variant{kind: KindTrue} }

// Bool converts a Go bool into True or Nil, matching VM boolean conventions.
func Bool(b bool) Variant {
	if b {
		return True()
	}
	return Nil()
}

func Int(v int32) Variant   { return Variant{kind: KindInt, i: v} }
func Float(v float32) Variant { return Variant{kind: KindFloat, f: v} }
func String(v string) Variant { return Variant{kind: KindString, s: v} }

// Table constructs an empty table Variant.
func Table() Variant { return Variant{kind: KindTable, table: make(map[uint32]Variant)} }

func SavedFrame(f SavedFrameInfo) Variant { return Variant{kind: KindSavedFrameInfo, frame: f} }

func (v Variant) Kind() Kind { return v.kind }
func (v Variant) IsNil() bool { return v.kind == KindNil }
func (v Variant) IsTable() bool { return v.kind == KindTable }

// Truthy reports the VM's truthiness rule: any non-Nil value is truthy.
func (v Variant) Truthy() bool { return v.kind != KindNil }

// Int32 returns the underlying int32 and whether v is actually an Int.
func (v Variant) Int32() (int32, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// Float32 returns the underlying float32 and whether v is actually a Float.
func (v Variant) Float32() (float32, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.f, true
}

// AsFloat64 widens Int or Float to float64 for cross-type arithmetic; ok is
// false for any other kind.
func (v Variant) AsFloat64() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return float64(v.f), true
	default:
		return 0, false
	}
}

func (v Variant) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

func (v Variant) Frame() (SavedFrameInfo, bool) {
	if v.kind != KindSavedFrameInfo {
		return SavedFrameInfo{}, false
	}
	return v.frame, true
}

// Get reads a table key, returning Nil if v isn't a Table or the key is unset.
func (v Variant) Get(key uint32) Variant {
	if v.kind != KindTable {
		return Nil()
	}
	if val, ok := v.table[key]; ok {
		return val
	}
	return Nil()
}

// PromoteTable returns v unchanged if it's already a Table, otherwise a fresh
// empty Table — the VM's "non-table values implicitly promote to empty
// tables on write through a key" rule.
func PromoteTable(v Variant) Variant {
	if v.kind == KindTable {
		return v
	}
	return Table()
}

// Set writes key=val into a Table Variant in place (the map is shared, so
// callers holding the returned/promoted Variant observe the write).
func (v Variant) Set(key uint32, val Variant) {
	if v.kind != KindTable {
		return
	}
	v.table[key] = val
}

func (v Variant) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindTrue:
		return "true"
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindString:
		return v.s
	case KindTable:
		return fmt.Sprintf("table(%d)", len(v.table))
	case KindSavedFrameInfo:
		return fmt.Sprintf("frame{base=%d pos=%d ret=%d args=%d}", v.frame.StackBase, v.frame.StackPos, v.frame.ReturnAddr, v.frame.Args)
	default:
		return "?"
	}
}
