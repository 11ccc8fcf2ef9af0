package syscalls

import (
	"github.com/riftvm/hcbvm/effects"
	"github.com/riftvm/hcbvm/variant"
	"github.com/riftvm/hcbvm/vm"
)

// registerInput wires the Input group (spec.md §6): a 26-bit keycode
// bitmask, a cursor position/wheel delta, and an {keycode,x,y} event queue.
// Wheel and repeat are reset per frame by the host feeding effects.State,
// not by these handlers.
func registerInput(r *vm.Registry) {
	const keyMask = 0x03FFFFFF // 26 bits

	r.Register("InputGetDown", func(w *vm.World, args []variant.Variant) variant.Variant {
		bit := uint32(intArg(args, 0)) & 31
		return variant.Bool(w.Effects.InputKeyMask&keyMask&(1<<bit) != 0)
	})

	r.Register("InputGetUp", func(w *vm.World, args []variant.Variant) variant.Variant {
		bit := uint32(intArg(args, 0)) & 31
		return variant.Bool(w.Effects.InputKeyMask&keyMask&(1<<bit) == 0)
	})

	r.Register("InputGetState", func(w *vm.World, args []variant.Variant) variant.Variant {
		return variant.Int(int32(w.Effects.InputKeyMask & keyMask))
	})

	r.Register("InputGetEvent", func(w *vm.World, args []variant.Variant) variant.Variant {
		if len(w.Effects.InputEvents) == 0 {
			return variant.Nil()
		}
		ev := w.Effects.InputEvents[0]
		w.Effects.InputEvents = w.Effects.InputEvents[1:]
		t := variant.Table()
		t.Set(0, variant.Int(int32(ev.Keycode)))
		t.Set(1, variant.Int(ev.X))
		t.Set(2, variant.Int(ev.Y))
		return t
	})

	r.Register("InputGetRepeat", func(w *vm.World, args []variant.Variant) variant.Variant {
		return variant.Bool(w.Effects.InputRepeat)
	})

	r.Register("InputGetWheel", func(w *vm.World, args []variant.Variant) variant.Variant {
		return variant.Int(w.Effects.InputWheel)
	})

	r.Register("InputGetCursIn", func(w *vm.World, args []variant.Variant) variant.Variant {
		return variant.Bool(w.Effects.InputCursorX >= 0 && w.Effects.InputCursorY >= 0)
	})

	r.Register("InputGetCursX", func(w *vm.World, args []variant.Variant) variant.Variant {
		return variant.Int(w.Effects.InputCursorX)
	})

	r.Register("InputGetCursY", func(w *vm.World, args []variant.Variant) variant.Variant {
		return variant.Int(w.Effects.InputCursorY)
	})

	r.Register("InputFlash", func(w *vm.World, args []variant.Variant) variant.Variant {
		// Flashes the cursor/window focus -- a host affordance with no
		// Effects-Layer state to track.
		return variant.Nil()
	})

	r.Register("InputSetClick", func(w *vm.World, args []variant.Variant) variant.Variant {
		w.Effects.InputEvents = append(w.Effects.InputEvents, effects.InputEvent{
			Keycode: uint32(intArg(args, 0)),
			X:       w.Effects.InputCursorX,
			Y:       w.Effects.InputCursorY,
		})
		return variant.Nil()
	})

	r.Register("ControlPulse", func(w *vm.World, args []variant.Variant) variant.Variant {
		bit := uint32(intArg(args, 0)) & 31
		w.Effects.InputKeyMask |= 1 << bit
		return variant.Nil()
	})

	r.Register("ControlMask", func(w *vm.World, args []variant.Variant) variant.Variant {
		return variant.Int(int32(w.Effects.InputKeyMask & keyMask))
	})
}
