package vm

import (
	"log"

	"github.com/riftvm/hcbvm/variant"
)

// Handler is a syscall implementation: it reads its already-popped,
// script-ordered arguments and returns the VM's return-value result.
// Handlers must validate their own argument types and return Nil on
// invalid input rather than panicking (spec.md §6).
type Handler func(w *World, args []variant.Variant) variant.Variant

// Registry is the process-wide mapping from syscall name to Handler, built
// once at startup (mirroring the teacher's MapIO registration calls, but
// dispatching by name+arity instead of by memory address).
type Registry struct {
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register binds name to fn. Re-registering a name overwrites the previous
// handler (used by tests to stub individual syscalls).
func (r *Registry) Register(name string, fn Handler) {
	r.handlers[name] = fn
}

// Dispatch invokes the handler registered under name. An unregistered name
// logs and returns Nil — scripts routinely reference optional syscalls that
// a given build doesn't implement, and that must never crash the VM.
func (r *Registry) Dispatch(name string, w *World, args []variant.Variant) variant.Variant {
	fn, ok := r.handlers[name]
	if !ok {
		log.Printf("vm: unregistered syscall %q (args=%d)", name, len(args))
		return variant.Nil()
	}
	return fn(w, args)
}

// Registered reports whether name has a handler, for diagnostics.
func (r *Registry) Registered(name string) bool {
	_, ok := r.handlers[name]
	return ok
}
