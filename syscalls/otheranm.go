package syscalls

import (
	"github.com/riftvm/hcbvm/effects"
	"github.com/riftvm/hcbvm/variant"
	"github.com/riftvm/hcbvm/vm"
)

// registerOtherAnm wires the Other anm group (spec.md §6): Dissolve,
// Snow*, LipAnim, LipSync.
func registerOtherAnm(r *vm.Registry) {
	r.Register("Dissolve", func(w *vm.World, args []variant.Variant) variant.Variant {
		maskMode := boolArg(args, 1)
		duration := uint64(clamp32(intArg(args, 2), 0, 300000))
		kind := effects.DissolveColor
		if maskMode {
			kind = effects.DissolveMask
		}
		w.Effects.Dissolve(kind, duration)
		return variant.Nil()
	})

	r.Register("SnowStart", func(w *vm.World, args []variant.Variant) variant.Variant {
		w.Effects.SnowSet(true)
		return variant.Nil()
	})

	r.Register("SnowStop", func(w *vm.World, args []variant.Variant) variant.Variant {
		w.Effects.SnowSet(false)
		return variant.Nil()
	})

	r.Register("LipAnim", func(w *vm.World, args []variant.Variant) variant.Variant {
		return variant.Nil()
	})

	r.Register("LipSync", func(w *vm.World, args []variant.Variant) variant.Variant {
		return variant.Nil()
	})
}
