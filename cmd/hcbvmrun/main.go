// Command hcbvmrun loads a compiled `.hcb` bytecode image and runs it on
// the cooperative script VM, grounded on the teacher's main.go (flag
// parsing, peripheral wiring, `go cpu.Execute()` goroutine launch) adapted
// from a CPU-mode-select ISA runner to this engine's fixed script VM.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/riftvm/hcbvm/bytecode"
	"github.com/riftvm/hcbvm/debugconsole"
	"github.com/riftvm/hcbvm/effects"
	"github.com/riftvm/hcbvm/syscalls"
	"github.com/riftvm/hcbvm/vm"
)

func main() {
	var (
		encodingFlag = flag.String("encoding", "utf8", "script string encoding: utf8, sjis, gbk")
		fps          = flag.Int("fps", 60, "frame rate driving the VM Worker's PostFrame cadence")
		debug        = flag.Bool("debug", false, "attach the interactive debug console on stdin/stdout")
		headless     = flag.Bool("headless", true, "use headless video/audio backends instead of ebiten/oto")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <script.hcb>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	enc, err := parseEncoding(*encodingFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	raw, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading %s: %v\n", flag.Arg(0), err)
		os.Exit(1)
	}

	img, err := bytecode.Load(raw, enc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error parsing bytecode image: %v\n", err)
		os.Exit(1)
	}

	var state *effects.State
	if *headless {
		state = effects.NewState(effects.NewHeadlessVideoBackend(), effects.NewHeadlessAudioBackend())
	} else {
		audio, err := effects.NewOtoAudioBackend()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error initializing audio backend: %v\n", err)
			os.Exit(1)
		}
		state = effects.NewState(effects.NewEbitenVideoBackend(), audio)
	}

	desc := img.Descriptor()
	world := vm.NewWorld(int(desc.NonVolatileCount), int(desc.VolatileCount), state)
	world.Registry = syscalls.NewRegistry()

	tm := vm.NewThreadManager()
	runner := vm.NewRunner(tm)
	runner.StartMain(desc.EntryPoint)

	worker := vm.NewWorker(runner, world, img)

	var g errgroup.Group
	g.Go(func() error {
		worker.Run()
		return nil
	})

	if *debug {
		g.Go(func() error {
			return debugconsole.New(worker).RunInteractive()
		})
	}

	frameInterval := time.Second / time.Duration(*fps)
	g.Go(func() error {
		ticker := time.NewTicker(frameInterval)
		defer ticker.Stop()
		frameMs := uint64(frameInterval / time.Millisecond)
		for range ticker.C {
			worker.PostFrame(frameMs)
			var exited bool
			worker.WithWorld(func(world *vm.World, tm *vm.ThreadManager) {
				exited = world.MainThreadExited
			})
			if exited {
				worker.Stop()
				return nil
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseEncoding(s string) (bytecode.Encoding, error) {
	switch s {
	case "utf8", "":
		return bytecode.EncodingUTF8, nil
	case "sjis":
		return bytecode.EncodingShiftJIS, nil
	case "gbk":
		return bytecode.EncodingGBK, nil
	default:
		return 0, fmt.Errorf("unknown encoding %q (want utf8, sjis, or gbk)", s)
	}
}
