package syscalls

import (
	"github.com/riftvm/hcbvm/variant"
	"github.com/riftvm/hcbvm/vm"
)

// registerColor wires ColorSet (spec.md §6 Color group): writes one entry
// of the 256-slot color palette.
func registerColor(r *vm.Registry) {
	r.Register("ColorSet", func(w *vm.World, args []variant.Variant) variant.Variant {
		id := clamp32(intArg(args, 0), 0, 255)
		w.Effects.Palette[id] = [4]uint8{
			uint8(clamp32(intArg(args, 1), 0, 255)),
			uint8(clamp32(intArg(args, 2), 0, 255)),
			uint8(clamp32(intArg(args, 3), 0, 255)),
			uint8(clamp32(intArg(args, 4), 0, 255)),
		}
		return variant.Nil()
	})
}
