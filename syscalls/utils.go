package syscalls

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/riftvm/hcbvm/variant"
	"github.com/riftvm/hcbvm/vm"
)

// registerUtils wires the Utils group (spec.md §6): IntToText, Rand,
// FloatToInt, Debmess, WindowMode, ExitMode, Cursor{Show,Move,Change},
// DissolveWait.
func registerUtils(r *vm.Registry) {
	r.Register("IntToText", func(w *vm.World, args []variant.Variant) variant.Variant {
		return variant.String(fmt.Sprintf("%d", intArg(args, 0)))
	})

	r.Register("Rand", func(w *vm.World, args []variant.Variant) variant.Variant {
		n := intArg(args, 0)
		if n <= 0 {
			return variant.Int(0)
		}
		return variant.Int(rand.Int31n(n))
	})

	r.Register("FloatToInt", func(w *vm.World, args []variant.Variant) variant.Variant {
		return variant.Int(int32(floatArg(args, 0)))
	})

	r.Register("Debmess", func(w *vm.World, args []variant.Variant) variant.Variant {
		// The interactive display belongs to the debugconsole package; this
		// just gets the message into the process log.
		log.Printf("vm: debmess: %s", strArg(args, 0))
		return variant.Nil()
	})

	r.Register("WindowMode", func(w *vm.World, args []variant.Variant) variant.Variant {
		if hasArg(args, 0) {
			w.Effects.WindowFullscreen = boolArg(args, 0)
			return variant.Nil()
		}
		return variant.Bool(w.Effects.WindowFullscreen)
	})

	r.Register("ExitMode", func(w *vm.World, args []variant.Variant) variant.Variant {
		if intArg(args, 0) == 3 {
			w.GameShouldExit = true
		}
		return variant.Nil()
	})

	r.Register("CursorShow", func(w *vm.World, args []variant.Variant) variant.Variant {
		return variant.Nil()
	})

	r.Register("CursorMove", func(w *vm.World, args []variant.Variant) variant.Variant {
		w.Effects.InputCursorX = intArg(args, 0)
		w.Effects.InputCursorY = intArg(args, 1)
		return variant.Nil()
	})

	r.Register("CursorChange", func(w *vm.World, args []variant.Variant) variant.Variant {
		return variant.Nil()
	})

	r.Register("DissolveWait", func(w *vm.World, args []variant.Variant) variant.Variant {
		w.Requests.Post(vm.ThreadRequest{Kind: vm.ReqDissolveWait})
		return variant.Nil()
	})
}
