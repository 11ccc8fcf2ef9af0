package vm

import (
	"log"
	"os"
	"strconv"

	"github.com/riftvm/hcbvm/bytecode"
	"github.com/riftvm/hcbvm/effects"
)

const defaultMaxOpsPerContext = 2000

// Runner is the per-frame driver (spec.md §4.G): it advances timers, picks
// runnable contexts in ascending slot order, executes a bounded opcode
// burst per context, and drains the thread-request queue after every
// opcode.
type Runner struct {
	tm *ThreadManager
}

func NewRunner(tm *ThreadManager) *Runner { return &Runner{tm: tm} }

func (r *Runner) ThreadManager() *ThreadManager { return r.tm }

func (r *Runner) StartMain(entryPoint uint32) { r.tm.StartMain(entryPoint) }

func maxOpsPerContext() int {
	if v := os.Getenv("RFVP_VM_MAX_OPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return defaultMaxOpsPerContext
}

// Tick executes one engine frame's worth of script VM work. frameMs is the
// elapsed time budget for WAIT/SLEEP timers; a 0 value only propagates
// event-driven transitions (dissolve completion) without advancing timers,
// per the Determinism testable property.
func (r *Runner) Tick(world *World, img *bytecode.Image, frameMs uint64) {
	if world.Halt {
		return
	}

	dissolveType := effects.DissolveNone
	dissolve2Transitioning := false
	if world.Effects != nil {
		world.Effects.AdvanceDissolve(frameMs)
		dissolveType = world.Effects.DissolveType
		dissolve2Transitioning = world.Effects.Dissolve2Transitioning
		world.Effects.AdvanceMotions(frameMs)
		world.Effects.AdvanceTimers(frameMs)
	}

	budget := maxOpsPerContext()

	for tid := uint32(0); tid < uint32(r.tm.TotalContexts()); tid++ {
		if world.GameShouldExit && world.LastMainTid != tid {
			continue
		}

		r.advanceTimersAndState(tid, dissolveType, dissolve2Transitioning, frameMs)

		status := r.tm.GetContextStatus(tid)
		if status.Has(StatusRunning) &&
			!status.Has(StatusWait) &&
			!status.Has(StatusSleep) &&
			!status.Has(StatusDissolveWait) {
			r.runOneContext(tid, world, img, budget)
		}
	}

	if world.GameShouldExit {
		lastStatus := r.tm.GetContextStatus(world.LastMainTid)
		if lastStatus == StatusNone || r.tm.GetShouldBreak() {
			world.MainThreadExited = true
		}
	}
}

func (r *Runner) advanceTimersAndState(tid uint32, dissolveType effects.DissolveType, dissolve2Transitioning bool, frameMs uint64) {
	status := r.tm.GetContextStatus(tid)

	if status.Has(StatusWait) {
		wait := r.tm.GetContextWaitingTime(tid)
		if wait > frameMs {
			r.tm.SetContextWaitingTime(tid, wait-frameMs)
		} else {
			r.tm.SetContextWaitingTime(tid, 0)
			r.tm.SetContextStatus(tid, status.Clear(StatusWait).Set(StatusRunning))
		}
	}

	status = r.tm.GetContextStatus(tid)
	if status.Has(StatusSleep) {
		sleep := r.tm.GetContextSleepingTime(tid)
		if sleep > frameMs {
			r.tm.SetContextSleepingTime(tid, sleep-frameMs)
		} else {
			r.tm.SetContextSleepingTime(tid, 0)
			r.tm.SetContextStatus(tid, status.Clear(StatusSleep).Set(StatusRunning))
		}
	}

	status = r.tm.GetContextStatus(tid)
	if status.Has(StatusDissolveWait) &&
		(dissolveType == effects.DissolveNone || dissolveType == effects.DissolveStatic) &&
		!dissolve2Transitioning {
		r.tm.SetContextStatus(tid, status.Clear(StatusDissolveWait).Set(StatusRunning))
	}
}

// runOneContext executes opcodes for tid until it yields, exhausts its
// opcode budget, exits, or hits a context-fatal error. Per DESIGN.md Open
// Question 6, a dispatch error tears down this context, not the scheduler:
// it's logged, the context is torn down via ThreadExit (for context 0 that is
// the main-exit path, which resets every slot), LastError records the error,
// and the Runner moves on to the next context.
func (r *Runner) runOneContext(tid uint32, world *World, img *bytecode.Image, opcodeBudget int) {
	r.tm.SetCurrentID(tid)
	r.tm.SetContextShouldBreak(tid, false)
	ctx := r.tm.Context(tid)

	for !ctx.ShouldBreak {
		if opcodeBudget == 0 {
			ctx.ShouldBreak = true
			break
		}

		err := ctx.Dispatch(img, world)
		opcodeBudget--

		if ctx.ShouldExit {
			r.tm.ThreadExit(tid, true)
			break
		}

		if err != nil {
			log.Printf("vm: context %d aborted: %v", tid, err)
			r.tm.ThreadExit(tid, true)
			ctx.LastError = err // after ThreadExit, whose slot reset would clear it
			break
		}

		mustYield := false
		for {
			req, ok := world.Requests.Pop()
			if !ok {
				break
			}
			switch req.Kind {
			case ReqStart:
				r.tm.ThreadStart(req.ID, req.Addr)
			case ReqWait:
				r.tm.ThreadWait(req.Time)
				mustYield = true
			case ReqDissolveWait:
				r.tm.ThreadDissolveWait()
				mustYield = true
			case ReqSleep:
				r.tm.ThreadSleep(req.Time)
				mustYield = true
			case ReqRaise:
				r.tm.ThreadRaise(req.Time)
				mustYield = true
			case ReqNext:
				r.tm.ThreadNext()
				mustYield = true
			case ReqExit:
				r.tm.ThreadExit(req.ID, req.HasID)
				mustYield = true
			case ReqShouldBreak:
				r.tm.SetContextShouldBreak(tid, true)
				r.tm.SetShouldBreak(true)
				mustYield = true
			}
		}

		if mustYield {
			r.tm.SetContextShouldBreak(tid, true)
			break
		}
	}
}
