package vm

import (
	"testing"

	"github.com/riftvm/hcbvm/bytecode"
	"github.com/riftvm/hcbvm/variant"
)

// TestCallRetStackBalance locks in DESIGN.md's Open Question 1 resolution:
// for any call with N args, the stack depth after RET equals the depth
// before the args were pushed (DESIGN.md "restore-then-pop").
func TestCallRetStackBalance(t *testing.T) {
	for _, n := range []int8{0, 1, 3} {
		t.Run("", func(t *testing.T) {
			// callee @4: INIT_STACK n 0; RET
			callee := (&asm{}).b(0x01).i8(n).i8(0).b(0x04).code
			calleeAddr := uint32(4)

			// main @ 4+len(callee): push n args; CALL callee
			main := &asm{}
			for i := int8(0); i < n; i++ {
				main.b(0x0C).i8(i + 1)
			}
			main.b(0x02).u32(calleeAddr)

			code := append(append([]byte{}, callee...), main.code...)
			img := buildTestImage(code, nil)

			ctx := &Context{}
			ctx.start(calleeAddr + uint32(len(callee)))
			world := newTestWorld()

			ops := int(n) + 1 /*CALL*/ + 2 /*INIT_STACK + RET*/
			for i := 0; i < ops; i++ {
				if err := ctx.Dispatch(img, world); err != nil {
					t.Fatalf("op %d: %v", i, err)
				}
			}

			if ctx.CurStackBase != 1 || ctx.CurStackPos != 0 {
				t.Errorf("args=%d: post-RET (base,pos) = (%d,%d), want (1,0)", n, ctx.CurStackBase, ctx.CurStackPos)
			}
		})
	}
}

// TestFrameIntegrity checks SavedFrameInfo always sits at offset -1 from
// cur_stack_base, with Args equal to what INIT_STACK declared.
func TestFrameIntegrity(t *testing.T) {
	callee := (&asm{}).b(0x01).i8(2).i8(0).b(0x04).code
	calleeAddr := uint32(4)
	main := (&asm{}).b(0x0C).i8(10).b(0x0C).i8(20).b(0x02).u32(calleeAddr)
	code := append(append([]byte{}, callee...), main.code...)
	img := buildTestImage(code, nil)

	ctx := &Context{}
	ctx.start(calleeAddr + uint32(len(callee)))
	world := newTestWorld()

	// push arg1, push arg2, CALL
	for i := 0; i < 3; i++ {
		if err := ctx.Dispatch(img, world); err != nil {
			t.Fatalf("op %d: %v", i, err)
		}
	}
	f, err := ctx.frameInfo()
	if err != nil {
		t.Fatalf("frameInfo: %v", err)
	}
	if f.Args != 0 {
		t.Errorf("before INIT_STACK, Args should still be 0 (callee hasn't run it yet), got %d", f.Args)
	}

	// INIT_STACK 2 0
	if err := ctx.Dispatch(img, world); err != nil {
		t.Fatalf("INIT_STACK: %v", err)
	}
	f, err = ctx.frameInfo()
	if err != nil {
		t.Fatalf("frameInfo: %v", err)
	}
	if f.Args != 2 {
		t.Errorf("INIT_STACK should set Args=2, got %d", f.Args)
	}
}

// TestMinimalProgram is spec.md §8 scenario 1.
func TestMinimalProgram(t *testing.T) {
	code := (&asm{}).b(0x0A).i32(42).b(0x15).u16(0).b(0x04).code // PUSH_I32 42; POP_GLOBAL 0; RET
	img := buildTestImage(code, nil)

	tm := NewThreadManager()
	tm.StartMain(4)
	runner := NewRunner(tm)
	world := newTestWorld()

	runner.Tick(world, img, 16)

	got := world.Globals.Get(0)
	if i, ok := got.Int32(); !ok || i != 42 {
		t.Errorf("globals[0] = %v, want Int(42)", got)
	}
	if tm.GetContextStatus(0) != StatusNone {
		t.Errorf("context 0 status = %v, want NONE after returning from the top-level frame", tm.GetContextStatus(0))
	}
}

// TestPushStackRoundTrip is spec.md §8's PUSH/POP_STACK/PUSH_STACK law.
func TestPushStackRoundTrip(t *testing.T) {
	// PUSH_I32 7; POP_STACK 0; PUSH_STACK 0
	code := (&asm{}).b(0x0A).i32(7).b(0x16).i8(0).b(0x10).i8(0).code
	img := buildTestImage(code, nil)
	ctx := &Context{}
	ctx.start(4)
	world := newTestWorld()

	for i := 0; i < 3; i++ {
		if err := ctx.Dispatch(img, world); err != nil {
			t.Fatalf("op %d: %v", i, err)
		}
	}
	top, err := ctx.peek()
	if err != nil {
		t.Fatalf("peek: %v", err)
	}
	if v, ok := top.Int32(); !ok || v != 7 {
		t.Errorf("top = %v, want Int(7)", top)
	}
}

// TestPushTopDuplicates is spec.md §8's PUSH_TOP law.
func TestPushTopDuplicates(t *testing.T) {
	code := (&asm{}).b(0x0A).i32(9).b(0x13).code // PUSH_I32 9; PUSH_TOP
	img := buildTestImage(code, nil)
	ctx := &Context{}
	ctx.start(4)
	world := newTestWorld()
	for i := 0; i < 2; i++ {
		if err := ctx.Dispatch(img, world); err != nil {
			t.Fatalf("op %d: %v", i, err)
		}
	}
	if ctx.CurStackPos != 2 {
		t.Fatalf("stack pos = %d, want 2 (two copies of 9)", ctx.CurStackPos)
	}
	a, _ := ctx.pop()
	b, _ := ctx.pop()
	av, _ := a.Int32()
	bv, _ := b.Int32()
	if av != 9 || bv != 9 {
		t.Errorf("expected two copies of 9, got %v %v", a, b)
	}
}

// TestPushReturnClearsSlot is spec.md §8's PUSH_RETURN/PUSH_RETURN law.
func TestPushReturnClearsSlot(t *testing.T) {
	code := (&asm{}).b(0x14).b(0x14).code // PUSH_RETURN; PUSH_RETURN
	img := buildTestImage(code, nil)
	ctx := &Context{}
	ctx.start(4)
	ctx.ReturnValue = variant.Int(5)
	world := newTestWorld()
	for i := 0; i < 2; i++ {
		if err := ctx.Dispatch(img, world); err != nil {
			t.Fatalf("op %d: %v", i, err)
		}
	}
	second, _ := ctx.pop()
	first, _ := ctx.pop()
	if fv, _ := first.Int32(); fv != 5 {
		t.Errorf("first PUSH_RETURN = %v, want Int(5)", first)
	}
	if !second.IsNil() {
		t.Errorf("second PUSH_RETURN = %v, want Nil", second)
	}
}

func TestUnknownOpcodeAborts(t *testing.T) {
	code := []byte{0xFE}
	img := buildTestImage(code, nil)
	ctx := &Context{}
	ctx.start(4)
	world := newTestWorld()
	err := ctx.Dispatch(img, world)
	if err == nil {
		t.Fatalf("expected a DecodeError for an unknown opcode")
	}
	if _, ok := err.(*DecodeError); !ok {
		t.Errorf("expected *DecodeError, got %T", err)
	}
}

func TestSyscallPopsArgsInScriptOrder(t *testing.T) {
	// PUSH_I32 1; PUSH_I32 2; SYSCALL 0 (arity 2)
	code := (&asm{}).b(0x0A).i32(1).b(0x0A).i32(2).b(0x03).u16(0).code
	img := buildTestImage(code, []bytecode.SyscallDescriptor{{Name: "Test", ArgCount: 2}})
	ctx := &Context{}
	ctx.start(4)
	world := newTestWorld()

	var seen []int32
	world.Registry.Register("Test", func(w *World, args []variant.Variant) variant.Variant {
		for _, a := range args {
			v, _ := a.Int32()
			seen = append(seen, v)
		}
		return variant.Int(99)
	})

	for i := 0; i < 3; i++ {
		if err := ctx.Dispatch(img, world); err != nil {
			t.Fatalf("op %d: %v", i, err)
		}
	}
	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Errorf("syscall args = %v, want [1 2] (script order)", seen)
	}
	if v, _ := ctx.ReturnValue.Int32(); v != 99 {
		t.Errorf("ReturnValue = %v, want Int(99)", ctx.ReturnValue)
	}
}
