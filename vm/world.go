package vm

import "github.com/riftvm/hcbvm/effects"

// World is the single shared-state container the Runner operates on: the
// Global Store, the syscall Registry, the thread-request queue, and the
// Effects Layer. SPEC_FULL.md §5 (concurrency): a host invoking Tick must
// hold an exclusive write guard over the World for the call's duration.
type World struct {
	Globals  *GlobalStore
	Registry *Registry
	Requests *RequestQueue
	Effects  *effects.State

	// Halt stops the Runner from advancing any context (e.g. modal movie
	// playback). GameShouldExit/MainThreadExited/LastMainTid implement the
	// ExitMode(3) shutdown cascade (spec.md §4.E, §4.G).
	Halt             bool
	GameShouldExit   bool
	MainThreadExited bool
	LastMainTid      uint32
}

// NewWorld builds a World sized from an image's descriptor-declared global
// counts, bound to the given Effects Layer (pass effects.NewState(nil, nil)
// for the headless default).
func NewWorld(nonVolatile, volatile int, eff *effects.State) *World {
	return &World{
		Globals:  NewGlobalStore(nonVolatile, volatile),
		Registry: NewRegistry(),
		Requests: NewRequestQueue(),
		Effects:  eff,
	}
}
