package syscalls

import (
	"github.com/riftvm/hcbvm/effects"
	"github.com/riftvm/hcbvm/variant"
	"github.com/riftvm/hcbvm/vm"
)

// registerHistory wires the dialogue/voice history log (spec.md §6 History
// group). fnid selects the field; a Nil fnid on HistorySet pushes a new
// blank record instead of writing one.
func registerHistory(r *vm.Registry) {
	r.Register("HistorySet", func(w *vm.World, args []variant.Variant) variant.Variant {
		if !hasArg(args, 0) || args[0].IsNil() {
			w.Effects.PushHistory()
			return variant.Nil()
		}
		field, ok := historyField(args, 0)
		if !ok {
			return variant.Nil()
		}
		w.Effects.HistorySet(field, strArg(args, 1))
		return variant.Nil()
	})

	r.Register("HistoryGet", func(w *vm.World, args []variant.Variant) variant.Variant {
		field, ok := historyField(args, 0)
		if !ok {
			return variant.Nil()
		}
		return variant.String(w.Effects.HistoryGet(field))
	})
}

func historyField(args []variant.Variant, i int) (effects.HistoryField, bool) {
	if !hasArg(args, i) {
		return 0, false
	}
	n, ok := args[i].Int32()
	if !ok {
		return 0, false
	}
	switch n {
	case 0:
		return effects.HistoryName, true
	case 1:
		return effects.HistoryContent, true
	case 2:
		return effects.HistoryVoice, true
	default:
		return 0, false
	}
}
