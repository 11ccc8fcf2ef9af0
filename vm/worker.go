package vm

import (
	"sync"

	"github.com/riftvm/hcbvm/bytecode"
)

// WorkerEventKind is one of the four events the Worker's channel carries.
type WorkerEventKind int

const (
	EventFrame WorkerEventKind = iota
	EventDissolveDone
	EventInputSignal
	EventStop
)

// WorkerEvent is one queued event; FrameMs is only meaningful for
// EventFrame (DissolveDone/InputSignal are zero-delta ticks).
type WorkerEvent struct {
	Kind    WorkerEventKind
	FrameMs uint64
}

// Worker runs the Runner on a dedicated OS thread (spec.md §4.H),
// serializing Frame/DissolveDone/InputSignal/Stop events to it under a
// single-writer lock on the shared World. It never touches rendering or
// audio backend objects directly — those live behind the Effects Layer.
type Worker struct {
	mu     sync.Mutex
	runner *Runner
	world  *World
	img    *bytecode.Image

	events chan WorkerEvent
	done   chan struct{}
}

// NewWorker wires a Worker to an already-constructed Runner/World/Image. The
// caller starts it by calling Run on a dedicated goroutine.
func NewWorker(runner *Runner, world *World, img *bytecode.Image) *Worker {
	return &Worker{
		runner: runner,
		world:  world,
		img:    img,
		events: make(chan WorkerEvent, 64),
		done:   make(chan struct{}),
	}
}

// Run drains events in channel order until a Stop event arrives, calling
// tick under the World's write lock for each one. It blocks the calling
// goroutine; run it with `go worker.Run()`.
func (w *Worker) Run() {
	defer close(w.done)
	for ev := range w.events {
		if ev.Kind == EventStop {
			return
		}
		w.mu.Lock()
		var ms uint64
		if ev.Kind == EventFrame {
			ms = ev.FrameMs
		}
		w.runner.Tick(w.world, w.img, ms)
		w.mu.Unlock()
	}
}

// PostFrame enqueues a redraw-cadence tick with the given elapsed time.
func (w *Worker) PostFrame(frameMs uint64) { w.events <- WorkerEvent{Kind: EventFrame, FrameMs: frameMs} }

// PostDissolveDone enqueues a zero-delta tick that only propagates dissolve
// completion.
func (w *Worker) PostDissolveDone() { w.events <- WorkerEvent{Kind: EventDissolveDone} }

// PostInputSignal enqueues a zero-delta tick that only propagates newly
// arrived input.
func (w *Worker) PostInputSignal() { w.events <- WorkerEvent{Kind: EventInputSignal} }

// Stop requests shutdown and blocks until Run has returned.
func (w *Worker) Stop() {
	w.events <- WorkerEvent{Kind: EventStop}
	<-w.done
}

// WithWorld runs fn while holding the World's write lock, for hosts that
// need to read/write shared state (e.g. sampling for a renderer, or a
// debug console) between ticks without racing the worker goroutine. fn
// also receives the ThreadManager driving w.world, since the two are
// always read/written together under the same lock.
func (w *Worker) WithWorld(fn func(*World, *ThreadManager)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn(w.world, w.runner.tm)
}
