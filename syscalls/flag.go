package syscalls

import (
	"github.com/riftvm/hcbvm/variant"
	"github.com/riftvm/hcbvm/vm"
)

// registerFlag wires the 2048-bit packed flag field (spec.md §6 Flag group):
// id = pos/8, bit = pos&7, encoded transparently by effects.State.
func registerFlag(r *vm.Registry) {
	r.Register("FlagSet", func(w *vm.World, args []variant.Variant) variant.Variant {
		pos := int(intArg(args, 0))
		on := boolArg(args, 1)
		w.Effects.FlagSet(pos, on)
		return variant.Nil()
	})

	r.Register("FlagGet", func(w *vm.World, args []variant.Variant) variant.Variant {
		pos := int(intArg(args, 0))
		return variant.Bool(w.Effects.FlagGet(pos))
	})
}
