package syscalls

import (
	"github.com/riftvm/hcbvm/effects"
	"github.com/riftvm/hcbvm/variant"
	"github.com/riftvm/hcbvm/vm"
)

// registerMotion wires the Motion group (spec.md §6): each MotionX call
// starts (or replaces) an eased property animation on a prim, driven
// forward by effects.State.AdvanceMotions once per tick. Duration is
// clamped to 1..300000ms per spec; an out-of-range curve id falls back to
// Linear rather than erroring. Each property (Alpha/Move/MoveR/MoveS2/
// MoveZ/Anim) is tracked independently per prim, so it gets its own Stop/
// Test names, matching original_source's motion.rs/world.rs registrations
// (MotionAlphaStop, MotionMoveTest, ...) rather than one generic pair --
// a script running a fade and a move on the same prim must be able to
// stop/query either without touching the other.
func registerMotion(r *vm.Registry) {
	curve := func(args []variant.Variant, i int) effects.MotionCurve {
		n := intArg(args, i)
		if n < int32(effects.CurveLinear) || n > int32(effects.CurveImmediate) {
			return effects.CurveLinear
		}
		return effects.MotionCurve(n)
	}
	duration := func(args []variant.Variant, i int) int32 {
		return clamp32(intArg(args, i), 1, 300000)
	}
	primOf := func(w *vm.World, args []variant.Variant, i int) (effects.PrimID, *effects.Prim, bool) {
		id := intArg(args, i)
		if id < 0 || id > 4095 {
			return 0, nil, false
		}
		pid := effects.PrimID(id)
		return pid, w.Effects.Prim(pid), true
	}
	stopTest := func(name string, prop effects.MotionProperty) {
		r.Register(name+"Stop", func(w *vm.World, args []variant.Variant) variant.Variant {
			pid, _, ok := primOf(w, args, 0)
			if !ok {
				return variant.Nil()
			}
			w.Effects.MotionStop(pid, prop)
			return variant.Nil()
		})
		r.Register(name+"Test", func(w *vm.World, args []variant.Variant) variant.Variant {
			pid, _, ok := primOf(w, args, 0)
			if !ok {
				return variant.Nil()
			}
			return variant.Bool(w.Effects.MotionTest(pid, prop))
		})
	}

	r.Register("MotionAlpha", func(w *vm.World, args []variant.Variant) variant.Variant {
		pid, p, ok := primOf(w, args, 0)
		if !ok {
			return variant.Nil()
		}
		w.Effects.StartMotion(pid, &effects.Motion{
			Property: effects.MotionAlpha, Curve: curve(args, 4), DurationMs: duration(args, 3),
			Reverse: boolArg(args, 5), FromOther: float64(p.Alpha), ToOther: floatArg(args, 1),
		})
		_ = intArg(args, 2) // reserved argument slot (unused by Alpha)
		return variant.Nil()
	})
	stopTest("MotionAlpha", effects.MotionAlpha)

	r.Register("MotionMove", func(w *vm.World, args []variant.Variant) variant.Variant {
		pid, p, ok := primOf(w, args, 0)
		if !ok {
			return variant.Nil()
		}
		w.Effects.StartMotion(pid, &effects.Motion{
			Property: effects.MotionMove, Curve: curve(args, 5), DurationMs: duration(args, 4),
			Reverse: boolArg(args, 6),
			FromX:   float64(p.X), FromY: float64(p.Y),
			ToX: floatArg(args, 1), ToY: floatArg(args, 2),
		})
		_ = intArg(args, 3)
		return variant.Nil()
	})
	stopTest("MotionMove", effects.MotionMove)

	r.Register("MotionMoveR", func(w *vm.World, args []variant.Variant) variant.Variant {
		pid, p, ok := primOf(w, args, 0)
		if !ok {
			return variant.Nil()
		}
		w.Effects.StartMotion(pid, &effects.Motion{
			Property: effects.MotionMoveR, Curve: curve(args, 3), DurationMs: duration(args, 2),
			Reverse: boolArg(args, 4), FromOther: float64(p.RotationTenths), ToOther: floatArg(args, 1),
		})
		return variant.Nil()
	})
	stopTest("MotionMoveR", effects.MotionMoveR)

	r.Register("MotionMoveS2", func(w *vm.World, args []variant.Variant) variant.Variant {
		pid, p, ok := primOf(w, args, 0)
		if !ok {
			return variant.Nil()
		}
		w.Effects.StartMotion(pid, &effects.Motion{
			Property: effects.MotionMoveS2, Curve: curve(args, 3), DurationMs: duration(args, 2),
			Reverse: boolArg(args, 4), FromOther: float64(p.ScalePerMille), ToOther: floatArg(args, 1),
		})
		return variant.Nil()
	})
	stopTest("MotionMoveS2", effects.MotionMoveS2)

	r.Register("MotionMoveZ", func(w *vm.World, args []variant.Variant) variant.Variant {
		pid, p, ok := primOf(w, args, 0)
		if !ok {
			return variant.Nil()
		}
		w.Effects.StartMotion(pid, &effects.Motion{
			Property: effects.MotionMoveZ, Curve: curve(args, 3), DurationMs: duration(args, 2),
			Reverse: boolArg(args, 4), FromOther: float64(p.Z), ToOther: floatArg(args, 1),
		})
		return variant.Nil()
	})
	stopTest("MotionMoveZ", effects.MotionMoveZ)

	// MotionAnim drives a prim's cel/frame index. original_source's
	// generated.rs declares it with argc 4 (id, target, duration, curve)
	// and no reverse slot, unlike the other per-property Motion* calls.
	r.Register("MotionAnim", func(w *vm.World, args []variant.Variant) variant.Variant {
		pid, p, ok := primOf(w, args, 0)
		if !ok {
			return variant.Nil()
		}
		w.Effects.StartMotion(pid, &effects.Motion{
			Property: effects.MotionAnim, Curve: curve(args, 3), DurationMs: duration(args, 2),
			FromOther: float64(p.AnimFrame), ToOther: floatArg(args, 1),
		})
		return variant.Nil()
	})
	stopTest("MotionAnim", effects.MotionAnim)

	// MotionPause pauses every motion currently in flight on the prim
	// (the original stores one pause bit on the prim itself, shared by
	// whichever motions happen to be running), not a single property.
	r.Register("MotionPause", func(w *vm.World, args []variant.Variant) variant.Variant {
		id := intArg(args, 0)
		if id < 0 || id > 4095 {
			return variant.Nil()
		}
		w.Effects.MotionPause(effects.PrimID(id), boolArg(args, 1))
		return variant.Nil()
	})

	// V3DMotion: the original's pseudo-3D camera motion is a global
	// singleton keyed by no prim id at all (dest x/y/z, duration, curve,
	// reverse) -- no 3D projection is implemented (rendering internals
	// are out of scope per spec.md §1), only its animated x/y/z state.
	r.Register("V3DMotion", func(w *vm.World, args []variant.Variant) variant.Variant {
		w.Effects.V3DMotionStart(&effects.Motion{
			Curve: curve(args, 4), DurationMs: duration(args, 3), Reverse: boolArg(args, 5),
			FromX: float64(w.Effects.CameraX), FromY: float64(w.Effects.CameraY), FromZ: float64(w.Effects.CameraZ),
			ToX: floatArg(args, 0), ToY: floatArg(args, 1), ToZ: floatArg(args, 2),
		})
		return variant.Nil()
	})

	r.Register("V3DMotionPause", func(w *vm.World, args []variant.Variant) variant.Variant {
		w.Effects.V3DMotionPause(boolArg(args, 0))
		return variant.Nil()
	})

	r.Register("V3DMotionStop", func(w *vm.World, args []variant.Variant) variant.Variant {
		w.Effects.V3DMotionStop()
		return variant.Nil()
	})

	r.Register("V3DMotionTest", func(w *vm.World, args []variant.Variant) variant.Variant {
		return variant.Bool(w.Effects.V3DMotionTest())
	})
}
