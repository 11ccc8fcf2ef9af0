package syscalls

import (
	"fmt"

	"github.com/riftvm/hcbvm/variant"
	"github.com/riftvm/hcbvm/vm"
)

// registerText wires the Text group (spec.md §6): script-indexed text
// buffer slots. Actual glyph layout/rasterization is out of scope (spec.md
// §1); these only track the buffer contents and display parameters a
// renderer would need.
func registerText(r *vm.Registry) {
	r.Register("TextPrint", func(w *vm.World, args []variant.Variant) variant.Variant {
		slot := intArg(args, 0)
		w.Effects.TextBuffers[slot] += strArg(args, 1)
		return variant.Nil()
	})

	r.Register("TextFormat", func(w *vm.World, args []variant.Variant) variant.Variant {
		slot := intArg(args, 0)
		format := strArg(args, 1)
		rest := make([]any, 0, len(args)-2)
		for i := 2; i < len(args); i++ {
			rest = append(rest, args[i].String())
		}
		w.Effects.TextBuffers[slot] = fmt.Sprintf(format, rest...)
		return variant.Nil()
	})

	r.Register("TextColor", func(w *vm.World, args []variant.Variant) variant.Variant {
		// Color is a palette reference carried alongside the buffer text;
		// without a glyph renderer there is nothing further to maintain.
		return variant.Nil()
	})

	r.Register("TextFont", func(w *vm.World, args []variant.Variant) variant.Variant {
		return variant.Nil()
	})

	r.Register("TextPos", func(w *vm.World, args []variant.Variant) variant.Variant {
		return variant.Nil()
	})

	r.Register("TextSize", func(w *vm.World, args []variant.Variant) variant.Variant {
		return variant.Nil()
	})

	r.Register("TextClear", func(w *vm.World, args []variant.Variant) variant.Variant {
		slot := intArg(args, 0)
		delete(w.Effects.TextBuffers, slot)
		return variant.Nil()
	})

	r.Register("TextGet", func(w *vm.World, args []variant.Variant) variant.Variant {
		slot := intArg(args, 0)
		return variant.String(w.Effects.TextBuffers[slot])
	})
}
