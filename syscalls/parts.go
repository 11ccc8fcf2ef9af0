package syscalls

import (
	"github.com/riftvm/hcbvm/effects"
	"github.com/riftvm/hcbvm/variant"
	"github.com/riftvm/hcbvm/vm"
)

// primIDFor maps a parts-slot id (0..63) into the prim id space reserved for
// parts motions (4096+), so PartsMotion* never aliases a real 1..4095 prim.
func primIDFor(partID int32) effects.PrimID { return effects.PrimID(4096 + partID) }

// registerParts wires the Parts group (spec.md §6): 64 parts-display slots,
// each with up to 256 selectable entries. Motion* reuses the same Motion
// machinery as the Graph/Prim group, keyed through a dedicated prim id
// range so parts and prims never collide.
func registerParts(r *vm.Registry) {
	part := func(w *vm.World, args []variant.Variant, i int) (int32, bool) {
		id := intArg(args, i)
		if id < 0 || id > 63 {
			return 0, false
		}
		return id, true
	}

	r.Register("PartsLoad", func(w *vm.World, args []variant.Variant) variant.Variant {
		id, ok := part(w, args, 0)
		if !ok {
			return variant.Nil()
		}
		w.Effects.Parts[id].SelectedEntry = 0
		return variant.Nil()
	})

	r.Register("PartsSelect", func(w *vm.World, args []variant.Variant) variant.Variant {
		id, ok := part(w, args, 0)
		if !ok {
			return variant.Nil()
		}
		w.Effects.Parts[id].SelectedEntry = clamp32(intArg(args, 1), 0, 255)
		return variant.Nil()
	})

	r.Register("PartsAssign", func(w *vm.World, args []variant.Variant) variant.Variant {
		id, ok := part(w, args, 0)
		if !ok {
			return variant.Nil()
		}
		w.Effects.Parts[id].SelectedEntry = clamp32(intArg(args, 1), 0, 255)
		return variant.Nil()
	})

	r.Register("PartsRGB", func(w *vm.World, args []variant.Variant) variant.Variant {
		id, ok := part(w, args, 0)
		if !ok {
			return variant.Nil()
		}
		w.Effects.Parts[id].EntryRGB = [3]uint8{
			uint8(clamp32(intArg(args, 1), 0, 255)),
			uint8(clamp32(intArg(args, 2), 0, 255)),
			uint8(clamp32(intArg(args, 3), 0, 255)),
		}
		return variant.Nil()
	})

	r.Register("PartsMotion", func(w *vm.World, args []variant.Variant) variant.Variant {
		id, ok := part(w, args, 0)
		if !ok {
			return variant.Nil()
		}
		pid := primIDFor(id)
		p := w.Effects.Prim(pid)
		w.Effects.StartMotion(pid, &effects.Motion{
			Property:   effects.MotionMove,
			Curve:      effects.CurveLinear,
			DurationMs: clamp32(intArg(args, 3), 1, 300000),
			FromX:      float64(p.X), FromY: float64(p.Y),
			ToX: floatArg(args, 1), ToY: floatArg(args, 2),
		})
		return variant.Nil()
	})

	r.Register("PartsMotionPause", func(w *vm.World, args []variant.Variant) variant.Variant {
		id, ok := part(w, args, 0)
		if !ok {
			return variant.Nil()
		}
		w.Effects.MotionPause(primIDFor(id), boolArg(args, 1))
		return variant.Nil()
	})

	r.Register("PartsMotionStop", func(w *vm.World, args []variant.Variant) variant.Variant {
		id, ok := part(w, args, 0)
		if !ok {
			return variant.Nil()
		}
		w.Effects.MotionStop(primIDFor(id), effects.MotionMove)
		return variant.Nil()
	})

	r.Register("PartsMotionTest", func(w *vm.World, args []variant.Variant) variant.Variant {
		id, ok := part(w, args, 0)
		if !ok {
			return variant.Nil()
		}
		return variant.Bool(w.Effects.MotionTest(primIDFor(id), effects.MotionMove))
	})
}
