// Package syscalls implements the named syscall catalog (spec.md §6): one
// handler per declared name, each popping its declared-arity arguments off
// the calling context's stack and mutating the shared vm.World. Handlers
// never validate strictly — an invalid argument returns Nil rather than
// aborting the context, per spec.md §7's "syscall argument errors are local".
package syscalls

import "github.com/riftvm/hcbvm/variant"

// intArg reads args[i] as an Int, defaulting to 0 if missing or the wrong
// kind.
func intArg(args []variant.Variant, i int) int32 {
	if i < 0 || i >= len(args) {
		return 0
	}
	v, _ := args[i].Int32()
	return v
}

// floatArg widens args[i] (Int or Float) to float64, defaulting to 0.
func floatArg(args []variant.Variant, i int) float64 {
	if i < 0 || i >= len(args) {
		return 0
	}
	v, _ := args[i].AsFloat64()
	return v
}

// strArg reads args[i] as a String, defaulting to "".
func strArg(args []variant.Variant, i int) string {
	if i < 0 || i >= len(args) {
		return ""
	}
	v, _ := args[i].Str()
	return v
}

// boolArg reports args[i]'s VM truthiness, defaulting to false if missing.
func boolArg(args []variant.Variant, i int) bool {
	if i < 0 || i >= len(args) {
		return false
	}
	return args[i].Truthy()
}

// hasArg reports whether index i was actually supplied, distinguishing an
// explicit Nil argument (e.g. History's "nil fnid pushes a new record") from
// a caller that passed fewer arguments than declared.
func hasArg(args []variant.Variant, i int) bool {
	return i >= 0 && i < len(args)
}

func clamp32(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampF64(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
