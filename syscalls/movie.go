package syscalls

import (
	"github.com/riftvm/hcbvm/variant"
	"github.com/riftvm/hcbvm/vm"
)

// registerMovie wires the Movie group (spec.md §6). Movie(path, flag) with a
// Nil flag is an effect (video only, non-blocking); a non-Nil flag is modal
// (video+audio) and halts the VM while playback is in flight. Actual video
// decode is out of scope (spec.md §1); this tracks the halt/modal state
// contract the scripts depend on.
func registerMovie(r *vm.Registry) {
	r.Register("Movie", func(w *vm.World, args []variant.Variant) variant.Variant {
		modal := hasArg(args, 1) && !args[1].IsNil()
		w.Halt = modal
		return variant.Nil()
	})

	r.Register("MovieState", func(w *vm.World, args []variant.Variant) variant.Variant {
		return variant.Bool(w.Halt)
	})

	r.Register("MovieStop", func(w *vm.World, args []variant.Variant) variant.Variant {
		w.Halt = false
		return variant.Nil()
	})
}
