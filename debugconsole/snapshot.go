// Package debugconsole implements an interactive introspection console for
// a running World/ThreadManager pair, grounded on the teacher's
// debug_monitor.go/debug_commands.go/debug_snapshot.go trio adapted from a
// per-ISA CPU debugger to this engine's 32-context script VM.
package debugconsole

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/riftvm/hcbvm/vm"
)

const (
	snapshotMagic   = "HCBDBG1"
	snapshotVersion = 1
)

// ThreadSnapshot is one context's scheduler-visible state at capture time.
type ThreadSnapshot struct {
	ID           uint32
	Status       vm.Status
	PC           uint32
	WaitingTime  uint64
	SleepingTime uint64
}

// Snapshot is a point-in-time capture of a World+ThreadManager pair,
// grounded on debug_snapshot.go's magic+version header idiom.
type Snapshot struct {
	Globals []string // variant.Variant.String() per slot, index == global key
	Threads []ThreadSnapshot
}

// Take captures the current state of tm/world.
func Take(tm *vm.ThreadManager, world *vm.World) *Snapshot {
	s := &Snapshot{}
	for k := 0; k < world.Globals.Len(); k++ {
		s.Globals = append(s.Globals, world.Globals.Get(uint16(k)).String())
	}
	for tid := uint32(0); tid < uint32(tm.TotalContexts()); tid++ {
		ctx := tm.Context(tid)
		s.Threads = append(s.Threads, ThreadSnapshot{
			ID:           tid,
			Status:       tm.GetContextStatus(tid),
			PC:           ctx.PC,
			WaitingTime:  tm.GetContextWaitingTime(tid),
			SleepingTime: tm.GetContextSleepingTime(tid),
		})
	}
	return s
}

// WriteTo serializes the snapshot as magic+version, then a length-prefixed
// global-string table, then a fixed-width thread-state table.
func (s *Snapshot) WriteTo(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(snapshotMagic); err != nil {
		return err
	}
	if err := bw.WriteByte(snapshotVersion); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(s.Globals))); err != nil {
		return err
	}
	for _, g := range s.Globals {
		if err := binary.Write(bw, binary.LittleEndian, uint32(len(g))); err != nil {
			return err
		}
		if _, err := bw.WriteString(g); err != nil {
			return err
		}
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(s.Threads))); err != nil {
		return err
	}
	for _, t := range s.Threads {
		if err := binary.Write(bw, binary.LittleEndian, t.ID); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, uint32(t.Status)); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, t.PC); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, t.WaitingTime); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, t.SleepingTime); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadSnapshot deserializes a Snapshot written by WriteTo.
func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	magic := make([]byte, len(snapshotMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, err
	}
	if string(magic) != snapshotMagic {
		return nil, fmt.Errorf("debugconsole: bad snapshot magic %q", magic)
	}
	var version uint8
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, err
	}
	if version != snapshotVersion {
		return nil, fmt.Errorf("debugconsole: unsupported snapshot version %d", version)
	}

	s := &Snapshot{}
	var numGlobals uint32
	if err := binary.Read(r, binary.LittleEndian, &numGlobals); err != nil {
		return nil, err
	}
	for i := uint32(0); i < numGlobals; i++ {
		var n uint32
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return nil, err
		}
		buf := make([]byte, n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		s.Globals = append(s.Globals, string(buf))
	}

	var numThreads uint32
	if err := binary.Read(r, binary.LittleEndian, &numThreads); err != nil {
		return nil, err
	}
	for i := uint32(0); i < numThreads; i++ {
		var t ThreadSnapshot
		var status uint32
		if err := binary.Read(r, binary.LittleEndian, &t.ID); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.LittleEndian, &status); err != nil {
			return nil, err
		}
		t.Status = vm.Status(status)
		if err := binary.Read(r, binary.LittleEndian, &t.PC); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.LittleEndian, &t.WaitingTime); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.LittleEndian, &t.SleepingTime); err != nil {
			return nil, err
		}
		s.Threads = append(s.Threads, t)
	}
	return s, nil
}
