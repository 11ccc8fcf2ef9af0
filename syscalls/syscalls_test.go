package syscalls

import (
	"bytes"
	"io"
	"testing"

	"github.com/riftvm/hcbvm/effects"
	"github.com/riftvm/hcbvm/savegame"
	"github.com/riftvm/hcbvm/variant"
	"github.com/riftvm/hcbvm/vfs"
	"github.com/riftvm/hcbvm/vm"
)

type memFS struct{ files map[string][]byte }

func newMemFS() *memFS { return &memFS{files: make(map[string][]byte)} }

type memWriteCloser struct {
	fs   *memFS
	name string
	buf  bytes.Buffer
}

func (w *memWriteCloser) Write(p []byte) (int, error) { return w.buf.Write(p) }
func (w *memWriteCloser) Close() error {
	w.fs.files[w.name] = w.buf.Bytes()
	return nil
}

type memReadSeekCloser struct{ *bytes.Reader }

func (memReadSeekCloser) Close() error { return nil }

func (fs *memFS) Create(name string) (io.WriteCloser, error) {
	return &memWriteCloser{fs: fs, name: name}, nil
}

func (fs *memFS) Open(name string) (vfs.ReadSeekCloser, error) {
	b, ok := fs.files[name]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return memReadSeekCloser{bytes.NewReader(b)}, nil
}

func newTestWorld() *vm.World {
	return vm.NewWorld(16, 16, effects.NewState(nil, nil))
}

func TestSaveRoundTripThroughSyscalls(t *testing.T) {
	r := NewRegistry()
	w := newTestWorld()
	w.Effects.SaveManager = savegame.NewManager(newMemFS(), 64, 36)

	r.Dispatch("SaveCreate", w, []variant.Variant{variant.Int(2)})
	r.Dispatch("SaveThumbSize", w, []variant.Variant{variant.Int(64), variant.Int(36)})
	r.Dispatch("SaveData", w, []variant.Variant{variant.Int(111)})
	r.Dispatch("SaveData", w, []variant.Variant{variant.Int(222)})
	ok := r.Dispatch("SaveWrite", w, []variant.Variant{variant.String("Chapter 1"), variant.String("Prologue")})
	if !ok.Truthy() {
		t.Fatalf("SaveWrite returned falsy: %v", ok)
	}

	title := r.Dispatch("Load", w, []variant.Variant{variant.Int(2)})
	gotTitle, _ := title.Str()
	if gotTitle != "Chapter 1" {
		t.Fatalf("Load title = %q, want %q", gotTitle, "Chapter 1")
	}

	first := r.Dispatch("SaveData", w, nil)
	second := r.Dispatch("SaveData", w, nil)
	third := r.Dispatch("SaveData", w, nil)
	v1, _ := first.Int32()
	v2, _ := second.Int32()
	if v1 != 111 || v2 != 222 {
		t.Errorf("replayed save data = %d,%d, want 111,222", v1, v2)
	}
	if !third.IsNil() {
		t.Errorf("expected the third SaveData read past end of record to be Nil, got %v", third)
	}
}

func TestDissolveSyscallRunsForItsDuration(t *testing.T) {
	r := NewRegistry()
	w := newTestWorld()

	r.Dispatch("Dissolve", w, []variant.Variant{variant.Int(0), variant.Bool(true), variant.Int(100)})
	if w.Effects.DissolveType != effects.DissolveMask {
		t.Fatalf("DissolveType = %v, want DissolveMask", w.Effects.DissolveType)
	}

	w.Effects.AdvanceDissolve(50)
	if w.Effects.DissolveType != effects.DissolveMask {
		t.Fatalf("dissolve ended early at 50/100 ms")
	}
	w.Effects.AdvanceDissolve(60)
	if w.Effects.DissolveType != effects.DissolveNone {
		t.Fatalf("DissolveType = %v after duration elapsed, want DissolveNone", w.Effects.DissolveType)
	}
}

func TestExitModeThreeSetsGameShouldExit(t *testing.T) {
	r := NewRegistry()
	w := newTestWorld()

	r.Dispatch("ExitMode", w, []variant.Variant{variant.Int(1)})
	if w.GameShouldExit {
		t.Fatalf("ExitMode(1) must not request shutdown")
	}
	r.Dispatch("ExitMode", w, []variant.Variant{variant.Int(3)})
	if !w.GameShouldExit {
		t.Fatalf("ExitMode(3) must set GameShouldExit")
	}
}

func TestDissolveWaitPostsThreadRequest(t *testing.T) {
	r := NewRegistry()
	w := newTestWorld()

	r.Dispatch("DissolveWait", w, nil)
	req, ok := w.Requests.Pop()
	if !ok || req.Kind != vm.ReqDissolveWait {
		t.Fatalf("DissolveWait did not post a ReqDissolveWait request: %+v ok=%v", req, ok)
	}
}

func TestMotionAlphaDrivesPrim(t *testing.T) {
	r := NewRegistry()
	w := newTestWorld()

	r.Dispatch("MotionAlpha", w, []variant.Variant{
		variant.Int(1),   // prim id
		variant.Int(255), // target alpha
		variant.Int(0),   // reserved
		variant.Int(200), // duration ms
		variant.Int(0),   // curve: Linear
		variant.Bool(false),
	})
	if !w.Effects.MotionTest(effects.PrimID(1), effects.MotionAlpha) {
		t.Fatalf("expected an in-flight motion on prim 1")
	}
	w.Effects.AdvanceMotions(200)
	if w.Effects.Prim(effects.PrimID(1)).Alpha != 255 {
		t.Errorf("alpha = %d after full duration, want 255", w.Effects.Prim(effects.PrimID(1)).Alpha)
	}
}

func TestPerPropertyMotionStopTestDispatchIndependently(t *testing.T) {
	r := NewRegistry()
	w := newTestWorld()

	r.Dispatch("MotionAlpha", w, []variant.Variant{
		variant.Int(2), variant.Int(255), variant.Int(0), variant.Int(200), variant.Int(0), variant.Bool(false),
	})
	r.Dispatch("MotionMove", w, []variant.Variant{
		variant.Int(2), variant.Int(10), variant.Int(20), variant.Int(0), variant.Int(200), variant.Int(0), variant.Bool(false),
	})

	if ok := r.Dispatch("MotionAlphaTest", w, []variant.Variant{variant.Int(2)}); !ok.Truthy() {
		t.Fatal("MotionAlphaTest should report the alpha motion in flight")
	}
	if ok := r.Dispatch("MotionMoveTest", w, []variant.Variant{variant.Int(2)}); !ok.Truthy() {
		t.Fatal("MotionMoveTest should report the move motion in flight")
	}

	r.Dispatch("MotionAlphaStop", w, []variant.Variant{variant.Int(2)})
	if ok := r.Dispatch("MotionAlphaTest", w, []variant.Variant{variant.Int(2)}); ok.Truthy() {
		t.Fatal("MotionAlphaStop should have stopped only the alpha motion")
	}
	if ok := r.Dispatch("MotionMoveTest", w, []variant.Variant{variant.Int(2)}); !ok.Truthy() {
		t.Fatal("MotionMoveTest should still report the move motion in flight after MotionAlphaStop")
	}
}

func TestV3DMotionDispatch(t *testing.T) {
	r := NewRegistry()
	w := newTestWorld()

	r.Dispatch("V3DMotion", w, []variant.Variant{
		variant.Int(10), variant.Int(20), variant.Int(30), variant.Int(100), variant.Int(0), variant.Bool(false),
	})
	if ok := r.Dispatch("V3DMotionTest", w, nil); !ok.Truthy() {
		t.Fatal("V3DMotionTest should report the camera motion in flight")
	}
	w.Effects.AdvanceMotions(100)
	if w.Effects.CameraX != 10 || w.Effects.CameraY != 20 || w.Effects.CameraZ != 30 {
		t.Fatalf("camera = (%d,%d,%d), want (10,20,30)", w.Effects.CameraX, w.Effects.CameraY, w.Effects.CameraZ)
	}
	r.Dispatch("V3DMotionStop", w, nil)
	if ok := r.Dispatch("V3DMotionTest", w, nil); ok.Truthy() {
		t.Fatal("V3DMotionStop should clear any in-flight camera motion")
	}
}

func TestRandRespectsUpperBound(t *testing.T) {
	r := NewRegistry()
	w := newTestWorld()
	for i := 0; i < 50; i++ {
		v := r.Dispatch("Rand", w, []variant.Variant{variant.Int(10)})
		n, _ := v.Int32()
		if n < 0 || n >= 10 {
			t.Fatalf("Rand(10) produced out-of-range value %d", n)
		}
	}
}
