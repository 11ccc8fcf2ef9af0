package syscalls

import (
	"github.com/riftvm/hcbvm/variant"
	"github.com/riftvm/hcbvm/vm"
)

// registerSave wires the Save/Load group (spec.md §6) onto the Effects
// Layer's save-staging helpers (effects/save.go), which in turn persist
// through a savegame.Manager the host attaches to Effects.State.SaveManager.
func registerSave(r *vm.Registry) {
	r.Register("SaveCreate", func(w *vm.World, args []variant.Variant) variant.Variant {
		w.Effects.SaveCreate(int(intArg(args, 0)))
		return variant.Nil()
	})

	r.Register("SaveThumbSize", func(w *vm.World, args []variant.Variant) variant.Variant {
		w.Effects.SaveThumbSize(intArg(args, 0), intArg(args, 1))
		return variant.Nil()
	})

	r.Register("SaveData", func(w *vm.World, args []variant.Variant) variant.Variant {
		v, ok := w.Effects.SaveData(intArg(args, 0))
		if !ok {
			return variant.Nil()
		}
		return variant.Int(v)
	})

	r.Register("SaveWrite", func(w *vm.World, args []variant.Variant) variant.Variant {
		title := strArg(args, 0)
		sceneTitle := strArg(args, 1)
		if err := w.Effects.SaveWrite(title, sceneTitle); err != nil {
			return variant.Bool(false)
		}
		return variant.Bool(true)
	})

	r.Register("Load", func(w *vm.World, args []variant.Variant) variant.Variant {
		title, ok := w.Effects.SaveLoad(int(intArg(args, 0)))
		if !ok {
			return variant.Nil()
		}
		return variant.String(title)
	})
}
