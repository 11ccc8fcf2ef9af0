package debugconsole

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.design/x/clipboard"
	"golang.org/x/term"

	"github.com/riftvm/hcbvm/vm"
)

// Console is an interactive command console over a running Worker,
// grounded on debug_monitor.go's Activate/appendOutput idiom but driven by
// line commands rather than a per-frame TUI (this VM has no ebiten render
// loop of its own to borrow keystrokes from). Every command that reads
// World/ThreadManager state goes through worker.WithWorld, so the console
// never touches shared state outside the same lock the Worker's tick
// goroutine uses (spec.md §5's single-writer-lock guarantee).
type Console struct {
	worker *vm.Worker

	breakpoints map[uint32]bool

	lastOutput string
}

// New constructs a Console bound to worker.
func New(worker *vm.Worker) *Console {
	return &Console{worker: worker, breakpoints: make(map[uint32]bool)}
}

// ShouldBreak reports whether tid has a console-set breakpoint, for a host
// stepping loop to consult before running that context's next burst.
func (c *Console) ShouldBreak(tid uint32) bool { return c.breakpoints[tid] }

type rwPair struct {
	io.Reader
	io.Writer
}

// RunInteractive drives the console over stdin/stdout until the user types
// :quit or sends EOF. stdin is put into raw mode first if it's a terminal,
// matching debug_monitor.go's Activate/Deactivate freeze-then-restore shape.
func (c *Console) RunInteractive() error {
	fd := int(os.Stdin.Fd())
	t := term.NewTerminal(rwPair{os.Stdin, os.Stdout}, "hcbvm> ")

	if term.IsTerminal(fd) {
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("debugconsole: enter raw mode: %w", err)
		}
		defer term.Restore(fd, oldState)
	}

	fmt.Fprintln(t, "hcbvm debug console — type ? for help")
	for {
		line, err := t.ReadLine()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if quit := c.dispatch(t, strings.TrimSpace(line)); quit {
			return nil
		}
	}
}

func (c *Console) dispatch(t *term.Terminal, line string) (quit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd := fields[0]
	args := fields[1:]

	var out strings.Builder
	switch cmd {
	case "?", ":help":
		fmt.Fprint(&out, "commands: :threads  :globals [lo] [hi]  :flags [lo] [hi]  :break <tid>  :snapshot <path>  :copy  :quit")

	case ":threads":
		c.cmdThreads(&out)

	case ":globals":
		c.cmdGlobals(&out, args)

	case ":flags":
		c.cmdFlags(&out, args)

	case ":break":
		c.cmdBreak(&out, args)

	case ":snapshot":
		c.cmdSnapshot(&out, args)

	case ":copy":
		clipboard.Write(clipboard.FmtText, []byte(c.lastOutput))
		fmt.Fprint(&out, "copied last output to clipboard")

	case ":quit", ":q":
		return true

	default:
		fmt.Fprintf(&out, "unknown command %q (try ?)", cmd)
	}

	c.lastOutput = out.String()
	fmt.Fprintln(t, c.lastOutput)
	return false
}

func (c *Console) cmdThreads(out *strings.Builder) {
	c.worker.WithWorld(func(world *vm.World, tm *vm.ThreadManager) {
		for tid := uint32(0); tid < uint32(tm.TotalContexts()); tid++ {
			status := tm.GetContextStatus(tid)
			if status == vm.StatusNone && !c.breakpoints[tid] {
				continue
			}
			mark := ""
			if c.breakpoints[tid] {
				mark = " [bp]"
			}
			fmt.Fprintf(out, "%2d: %s%s\n", tid, status, mark)
		}
	})
	if out.Len() == 0 {
		fmt.Fprint(out, "(no active contexts)")
	}
}

func (c *Console) cmdGlobals(out *strings.Builder, args []string) {
	lo := 0
	hi := -1
	if len(args) > 0 {
		if v, err := strconv.Atoi(args[0]); err == nil {
			lo = v
		}
	}
	if len(args) > 1 {
		if v, err := strconv.Atoi(args[1]); err == nil {
			hi = v
		}
	}
	c.worker.WithWorld(func(world *vm.World, tm *vm.ThreadManager) {
		if hi < 0 || hi > world.Globals.Len() {
			hi = world.Globals.Len()
		}
		if lo < 0 {
			lo = 0
		}
		for k := lo; k < hi; k++ {
			fmt.Fprintf(out, "g[%d] = %s\n", k, world.Globals.Get(uint16(k)).String())
		}
	})
}

func (c *Console) cmdFlags(out *strings.Builder, args []string) {
	lo, hi := 0, 64
	if len(args) > 0 {
		if v, err := strconv.Atoi(args[0]); err == nil {
			lo = v
		}
	}
	if len(args) > 1 {
		if v, err := strconv.Atoi(args[1]); err == nil {
			hi = v
		}
	}
	c.worker.WithWorld(func(world *vm.World, tm *vm.ThreadManager) {
		for pos := lo; pos < hi; pos++ {
			if world.Effects.FlagGet(pos) {
				fmt.Fprintf(out, "%d ", pos)
			}
		}
	})
}

func (c *Console) cmdBreak(out *strings.Builder, args []string) {
	if len(args) == 0 {
		fmt.Fprint(out, "usage: :break <tid>")
		return
	}
	tid, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(out, "invalid tid %q", args[0])
		return
	}
	var inRange bool
	c.worker.WithWorld(func(world *vm.World, tm *vm.ThreadManager) {
		inRange = tid >= 0 && tid < tm.TotalContexts()
	})
	if !inRange {
		fmt.Fprintf(out, "invalid tid %q", args[0])
		return
	}
	id := uint32(tid)
	c.breakpoints[id] = !c.breakpoints[id]
	fmt.Fprintf(out, "breakpoint on context %d: %v", id, c.breakpoints[id])
}

func (c *Console) cmdSnapshot(out *strings.Builder, args []string) {
	if len(args) == 0 {
		fmt.Fprint(out, "usage: :snapshot <path>")
		return
	}
	f, err := os.Create(args[0])
	if err != nil {
		fmt.Fprintf(out, "snapshot: %v", err)
		return
	}
	defer f.Close()

	var snapErr error
	c.worker.WithWorld(func(world *vm.World, tm *vm.ThreadManager) {
		snapErr = Take(tm, world).WriteTo(f)
	})
	if snapErr != nil {
		fmt.Fprintf(out, "snapshot: %v", snapErr)
		return
	}
	fmt.Fprintf(out, "wrote snapshot to %s", args[0])
}
