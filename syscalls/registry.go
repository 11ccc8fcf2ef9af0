package syscalls

import "github.com/riftvm/hcbvm/vm"

// NewRegistry builds a vm.Registry with every named handler in the ~140
// entry catalog registered, mirroring the teacher's MapIO registration
// calls in main.go (there: register a range of bus addresses to a
// read/write pair; here: register a name to a single dispatch handler).
func NewRegistry() *vm.Registry {
	r := vm.NewRegistry()
	registerThread(r)
	registerFlag(r)
	registerHistory(r)
	registerGraph(r)
	registerMotion(r)
	registerColor(r)
	registerSound(r)
	registerInput(r)
	registerTimer(r)
	registerMovie(r)
	registerParts(r)
	registerText(r)
	registerSave(r)
	registerOtherAnm(r)
	registerUtils(r)
	return r
}
