package syscalls

import (
	"github.com/riftvm/hcbvm/variant"
	"github.com/riftvm/hcbvm/vm"
)

// registerThread wires the thread-affecting syscalls (spec.md §4.E/§4.F):
// none of these mutate the ThreadManager directly — each posts a
// ThreadRequest for the Runner to drain after the current opcode, so a
// syscall handler never reenters the scheduler.
func registerThread(r *vm.Registry) {
	r.Register("ThreadStart", func(w *vm.World, args []variant.Variant) variant.Variant {
		id := uint32(intArg(args, 0))
		addr := uint32(intArg(args, 1))
		w.Requests.Post(vm.ThreadRequest{Kind: vm.ReqStart, ID: id, Addr: addr})
		return variant.Nil()
	})

	r.Register("ThreadExit", func(w *vm.World, args []variant.Variant) variant.Variant {
		req := vm.ThreadRequest{Kind: vm.ReqExit}
		if hasArg(args, 0) {
			req.ID = uint32(intArg(args, 0))
			req.HasID = true
		}
		w.Requests.Post(req)
		return variant.Nil()
	})

	r.Register("ThreadNext", func(w *vm.World, args []variant.Variant) variant.Variant {
		w.Requests.Post(vm.ThreadRequest{Kind: vm.ReqNext})
		return variant.Nil()
	})

	r.Register("ThreadWait", func(w *vm.World, args []variant.Variant) variant.Variant {
		ms := intArg(args, 0)
		if ms < 0 {
			ms = 0
		}
		w.Requests.Post(vm.ThreadRequest{Kind: vm.ReqWait, Time: uint64(ms)})
		return variant.Nil()
	})

	r.Register("ThreadSleep", func(w *vm.World, args []variant.Variant) variant.Variant {
		ms := intArg(args, 0)
		if ms < 0 {
			ms = 0
		}
		w.Requests.Post(vm.ThreadRequest{Kind: vm.ReqSleep, Time: uint64(ms)})
		return variant.Nil()
	})

	r.Register("ThreadRaise", func(w *vm.World, args []variant.Variant) variant.Variant {
		key := intArg(args, 0)
		w.Requests.Post(vm.ThreadRequest{Kind: vm.ReqRaise, Time: uint64(key)})
		return variant.Nil()
	})
}
