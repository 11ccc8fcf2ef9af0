package debugconsole

import (
	"bytes"
	"strings"
	"testing"

	"github.com/riftvm/hcbvm/effects"
	"github.com/riftvm/hcbvm/variant"
	"github.com/riftvm/hcbvm/vm"
)

func TestSnapshotRoundTrip(t *testing.T) {
	tm := vm.NewThreadManager()
	tm.StartMain(4)
	tm.ThreadWait(250)

	world := vm.NewWorld(4, 4, effects.NewState(nil, nil))
	world.Globals.Set(0, variant.Int(42))
	world.Globals.Set(1, variant.String("hello"))

	snap := Take(tm, world)

	var buf bytes.Buffer
	if err := snap.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	got, err := ReadSnapshot(&buf)
	if err != nil {
		t.Fatalf("ReadSnapshot: %v", err)
	}

	if len(got.Globals) != len(snap.Globals) {
		t.Fatalf("globals len = %d, want %d", len(got.Globals), len(snap.Globals))
	}
	if got.Globals[0] != "42" {
		t.Errorf("globals[0] = %q, want %q", got.Globals[0], "42")
	}
	if got.Globals[1] != "hello" {
		t.Errorf("globals[1] = %q, want %q", got.Globals[1], "hello")
	}

	if len(got.Threads) != vm.NumContexts {
		t.Fatalf("threads len = %d, want %d", len(got.Threads), vm.NumContexts)
	}
	if got.Threads[0].Status != (vm.StatusWait) {
		t.Errorf("context 0 status = %v, want WAIT", got.Threads[0].Status)
	}
	if got.Threads[0].WaitingTime != 250 {
		t.Errorf("context 0 waiting time = %d, want 250", got.Threads[0].WaitingTime)
	}
}

func TestBadMagicRejected(t *testing.T) {
	if _, err := ReadSnapshot(bytes.NewReader([]byte("not-a-snapshot-at-all"))); err == nil {
		t.Fatal("expected an error decoding garbage input")
	}
}

func TestConsoleBreakpointToggle(t *testing.T) {
	tm := vm.NewThreadManager()
	tm.StartMain(4)
	world := vm.NewWorld(4, 4, effects.NewState(nil, nil))
	runner := vm.NewRunner(tm)
	worker := vm.NewWorker(runner, world, nil)
	c := New(worker)

	if c.ShouldBreak(5) {
		t.Fatal("breakpoints must start unset")
	}
	var out strings.Builder
	c.cmdBreak(&out, []string{"5"})
	if !c.ShouldBreak(5) {
		t.Fatal("expected :break 5 to set a breakpoint")
	}
	c.cmdBreak(&out, []string{"5"})
	if c.ShouldBreak(5) {
		t.Fatal("expected a second :break 5 to clear the breakpoint")
	}
}
