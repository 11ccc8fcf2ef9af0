package syscalls

import (
	"github.com/riftvm/hcbvm/variant"
	"github.com/riftvm/hcbvm/vm"
)

// registerTimer wires the Timer group (spec.md §6): 16 script-addressable
// timers, resolution 1..100000ms. TimerGet optionally scales elapsed by a
// caller-supplied maximum (1..10000).
func registerTimer(r *vm.Registry) {
	r.Register("TimerSet", func(w *vm.World, args []variant.Variant) variant.Variant {
		id := intArg(args, 0)
		if id < 0 || id > 15 {
			return variant.Nil()
		}
		res := clamp32(intArg(args, 1), 1, 100000)
		w.Effects.Timers[id].ResolutionMs = uint32(res)
		w.Effects.Timers[id].ElapsedMs = 0
		w.Effects.Timers[id].Suspended = false
		return variant.Nil()
	})

	r.Register("TimerGet", func(w *vm.World, args []variant.Variant) variant.Variant {
		id := intArg(args, 0)
		if id < 0 || id > 15 {
			return variant.Nil()
		}
		t := &w.Effects.Timers[id]
		if !hasArg(args, 1) {
			return variant.Int(int32(t.ElapsedMs))
		}
		max := clamp32(intArg(args, 1), 1, 10000)
		if t.ResolutionMs == 0 {
			return variant.Int(0)
		}
		scaled := int64(t.ElapsedMs) * int64(max) / int64(t.ResolutionMs)
		return variant.Int(int32(clamp32(int32(scaled), 0, max)))
	})

	r.Register("TimerSuspend", func(w *vm.World, args []variant.Variant) variant.Variant {
		id := intArg(args, 0)
		if id < 0 || id > 15 {
			return variant.Nil()
		}
		w.Effects.Timers[id].Suspended = boolArg(args, 1)
		return variant.Nil()
	})
}
