package vm

// NumContexts is the fixed size of the script-thread array (spec.md §2).
const NumContexts = 32

// ThreadManager owns the 32-slot context array and performs every lifecycle
// transition (start, wait, sleep, dissolve-wait, raise, next, exit). It
// never executes opcodes itself; that's Context.Dispatch, invoked by the
// Runner.
type ThreadManager struct {
	contexts    [NumContexts]Context
	currentID   uint32
	threadBreak bool // raised when the main context exits (ExitMode-3 cascade)
}

func NewThreadManager() *ThreadManager {
	tm := &ThreadManager{}
	for i := range tm.contexts {
		tm.contexts[i].ID = uint32(i)
	}
	return tm
}

func (tm *ThreadManager) TotalContexts() int { return NumContexts }

func (tm *ThreadManager) CurrentID() uint32     { return tm.currentID }
func (tm *ThreadManager) SetCurrentID(id uint32) { tm.currentID = id }

func (tm *ThreadManager) Context(tid uint32) *Context { return &tm.contexts[tid] }

func (tm *ThreadManager) GetContextStatus(tid uint32) Status { return tm.contexts[tid].Status }
func (tm *ThreadManager) SetContextStatus(tid uint32, s Status) { tm.contexts[tid].Status = s }

func (tm *ThreadManager) GetContextWaitingTime(tid uint32) uint64 { return tm.contexts[tid].WaitingTime }
func (tm *ThreadManager) SetContextWaitingTime(tid uint32, ms uint64) {
	tm.contexts[tid].WaitingTime = ms
}

func (tm *ThreadManager) GetContextSleepingTime(tid uint32) uint64 {
	return tm.contexts[tid].SleepingTime
}
func (tm *ThreadManager) SetContextSleepingTime(tid uint32, ms uint64) {
	tm.contexts[tid].SleepingTime = ms
}

func (tm *ThreadManager) GetContextShouldBreak(tid uint32) bool { return tm.contexts[tid].ShouldBreak }
func (tm *ThreadManager) SetContextShouldBreak(tid uint32, v bool) {
	tm.contexts[tid].ShouldBreak = v
}

func (tm *ThreadManager) GetContextShouldExit(tid uint32) bool { return tm.contexts[tid].ShouldExit }

func (tm *ThreadManager) GetShouldBreak() bool     { return tm.threadBreak }
func (tm *ThreadManager) SetShouldBreak(v bool) { tm.threadBreak = v }

// StartMain resets the entire 32-slot array to NONE, clears the global
// break flag, then starts context 0 RUNNING at addr.
func (tm *ThreadManager) StartMain(addr uint32) {
	for i := range tm.contexts {
		id := tm.contexts[i].ID
		tm.contexts[i] = Context{ID: id}
	}
	tm.threadBreak = false
	tm.contexts[0].start(addr)
}

// ThreadStart implements thread_start: id==0 is the full-array reset path
// (identical to StartMain); id!=0 overwrites only that slot.
func (tm *ThreadManager) ThreadStart(id uint32, addr uint32) {
	if id == 0 {
		tm.StartMain(addr)
		return
	}
	tm.contexts[id].start(addr)
}

// ThreadWait blocks the current context for ms milliseconds.
func (tm *ThreadManager) ThreadWait(ms uint64) {
	c := &tm.contexts[tm.currentID]
	c.WaitingTime = ms
	c.Status = c.Status.Set(StatusWait).Clear(StatusRunning)
	c.ShouldBreak = true
}

// ThreadSleep blocks the current context for ms milliseconds under SLEEP
// (distinct from WAIT so ThreadRaise can target it).
func (tm *ThreadManager) ThreadSleep(ms uint64) {
	c := &tm.contexts[tm.currentID]
	c.SleepingTime = ms
	c.Status = c.Status.Set(StatusSleep).Clear(StatusRunning)
	c.ShouldBreak = true
}

// ThreadDissolveWait blocks the current context until the global dissolve
// completes or goes static.
func (tm *ThreadManager) ThreadDissolveWait() {
	c := &tm.contexts[tm.currentID]
	c.Status = c.Status.Set(StatusDissolveWait).Clear(StatusRunning)
	c.ShouldBreak = true
}

// ThreadRaise wakes every SLEEP-ing context whose WaitingTime equals key.
//
// This compares against WaitingTime, not SleepingTime, reproducing a field
// mixup present in the original engine verbatim (DESIGN.md Open Question 3)
// rather than "fixing" behavior scripts may depend on.
func (tm *ThreadManager) ThreadRaise(key uint64) {
	for i := range tm.contexts {
		c := &tm.contexts[i]
		if c.Status.Has(StatusSleep) && c.WaitingTime == key {
			c.Status = c.Status.Clear(StatusSleep).Set(StatusRunning)
		}
	}
}

// ThreadNext requests a cooperative yield without blocking.
func (tm *ThreadManager) ThreadNext() {
	tm.contexts[tm.currentID].ShouldBreak = true
}

// ThreadExit resets a context to NONE. hasID false targets the current
// context; exiting context 0 is the full-shutdown path: every slot resets
// and the global break flag is raised.
func (tm *ThreadManager) ThreadExit(id uint32, hasID bool) {
	target := tm.currentID
	if hasID {
		target = id
	}
	if target == 0 {
		for i := range tm.contexts {
			cid := tm.contexts[i].ID
			tm.contexts[i] = Context{ID: cid}
		}
		tm.threadBreak = true
		return
	}
	cid := tm.contexts[target].ID
	tm.contexts[target] = Context{ID: cid}
}
