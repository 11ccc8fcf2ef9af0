// Package vm implements the cooperative script VM: the per-context stack
// machine (this file), the Global Store, the Thread Manager state machine,
// the syscall dispatch registry, and the per-frame Runner/Worker.
package vm

import (
	"fmt"

	"github.com/riftvm/hcbvm/bytecode"
	"github.com/riftvm/hcbvm/variant"
)

// MaxStackSize is the fixed evaluation-stack capacity per context (spec.md
// §3: "at least 256 slots").
const MaxStackSize = 256

// Context is one of the VM's 32 independent execution units: a program
// counter, a fixed evaluation stack holding both operands and
// SavedFrameInfo frames, and the status/timer fields the Thread Manager
// drives.
type Context struct {
	ID uint32

	Stack      [MaxStackSize]variant.Variant
	CurStackBase int32
	CurStackPos  int32

	PC uint32

	Status Status

	WaitingTime  uint64
	SleepingTime uint64

	ShouldBreak bool
	ShouldExit  bool

	ReturnValue variant.Variant

	// LastError records the error that aborted this context's most recent
	// tick, if any; surfaced for diagnostics (debugconsole, host logging).
	LastError error
}

// Reset clears the context back to an unoccupied NONE slot.
func (c *Context) Reset() {
	id := c.ID
	*c = Context{ID: id}
}

// start initializes the context to begin executing at addr: a root
// SavedFrameInfo (args=0) is seeded at slot 0 so PUSH_STACK/INIT_STACK's
// "frame info always sits at offset -1" invariant holds even for the
// outermost call, then cur_stack_base/cur_stack_pos are set so slot 0 is
// that frame info and evaluation begins at slot 1.
func (c *Context) start(addr uint32) {
	c.Reset()
	c.Stack[0] = variant.SavedFrame(variant.SavedFrameInfo{})
	c.CurStackBase = 1
	c.CurStackPos = 0
	c.PC = addr
	c.Status = StatusRunning
}

func (c *Context) push(v variant.Variant) error {
	idx := c.CurStackBase + c.CurStackPos
	if idx < 0 || int(idx) >= MaxStackSize {
		return &StackError{PC: c.PC, Msg: "stack overflow"}
	}
	c.Stack[idx] = v
	c.CurStackPos++
	return nil
}

func (c *Context) pop() (variant.Variant, error) {
	if c.CurStackPos <= 0 {
		return variant.Nil(), &StackError{PC: c.PC, Msg: "stack underflow"}
	}
	c.CurStackPos--
	idx := c.CurStackBase + c.CurStackPos
	return c.Stack[idx], nil
}

func (c *Context) peek() (variant.Variant, error) {
	if c.CurStackPos <= 0 {
		return variant.Nil(), &StackError{PC: c.PC, Msg: "stack underflow on peek"}
	}
	idx := c.CurStackBase + c.CurStackPos - 1
	return c.Stack[idx], nil
}

func (c *Context) slotAt(offset int32) (int32, error) {
	idx := c.CurStackBase + offset
	if idx < 0 || int(idx) >= MaxStackSize {
		return 0, &StackError{PC: c.PC, Msg: fmt.Sprintf("frame-relative offset %d out of range", offset)}
	}
	return idx, nil
}

// frameInfo returns the SavedFrameInfo immediately below cur_stack_base.
func (c *Context) frameInfo() (variant.SavedFrameInfo, error) {
	idx := c.CurStackBase - 1
	if idx < 0 {
		return variant.SavedFrameInfo{}, &StackError{PC: c.PC, Msg: "no saved frame below stack base"}
	}
	f, ok := c.Stack[idx].Frame()
	if !ok {
		return variant.SavedFrameInfo{}, &StackError{PC: c.PC, Msg: "slot below stack base is not a SavedFrameInfo"}
	}
	return f, nil
}

func (c *Context) setFrameInfo(f variant.SavedFrameInfo) {
	c.Stack[c.CurStackBase-1] = variant.SavedFrame(f)
}

// Dispatch decodes and executes exactly one opcode at the current PC against
// img and w. It returns a *DecodeError/*StackError/*ControlFlowError on any
// of the three context-fatal categories from the error taxonomy; any other
// error is a programming error in a syscall handler and is also treated as
// context-fatal.
func (c *Context) Dispatch(img *bytecode.Image, w *World) error {
	opPC := c.PC
	op, err := img.ReadOpcodeByte(c.PC)
	if err != nil {
		return &DecodeError{PC: opPC, Msg: err.Error()}
	}
	c.PC++

	switch op {
	case 0x00: // NOP
		return nil

	case 0x01: // INIT_STACK i8 args, i8 locals
		args, err := img.ReadI8(c.PC)
		if err != nil {
			return &DecodeError{PC: opPC, Msg: err.Error()}
		}
		c.PC++
		locals, err := img.ReadI8(c.PC)
		if err != nil {
			return &DecodeError{PC: opPC, Msg: err.Error()}
		}
		c.PC++
		if args < 0 || locals < 0 {
			return &DecodeError{PC: opPC, Msg: "INIT_STACK: negative args/locals"}
		}
		f, err := c.frameInfo()
		if err != nil {
			return err
		}
		f.Args = int32(args)
		c.setFrameInfo(f)
		for i := int8(0); i < locals; i++ {
			if err := c.push(variant.Nil()); err != nil {
				return err
			}
		}
		return nil

	case 0x02: // CALL u32 addr
		addr, err := img.ReadU32(c.PC)
		if err != nil {
			return &DecodeError{PC: opPC, Msg: err.Error()}
		}
		c.PC += 4
		if !img.IsCodeArea(addr) {
			return &ControlFlowError{PC: opPC, Target: addr, Msg: "CALL target outside code area"}
		}
		frame := variant.SavedFrameInfo{
			StackBase:  c.CurStackBase,
			StackPos:   c.CurStackPos,
			ReturnAddr: c.PC,
			Args:       0,
		}
		if err := c.push(variant.SavedFrame(frame)); err != nil {
			return err
		}
		c.CurStackBase = c.CurStackBase + c.CurStackPos
		c.CurStackPos = 0
		c.PC = addr
		return nil

	case 0x03: // SYSCALL u16 id
		id, err := img.ReadU16(c.PC)
		if err != nil {
			return &DecodeError{PC: opPC, Msg: err.Error()}
		}
		c.PC += 2
		syscalls := img.Descriptor().Syscalls
		if int(id) >= len(syscalls) {
			return &DecodeError{PC: opPC, Msg: fmt.Sprintf("syscall id %d out of range", id)}
		}
		desc := syscalls[id]
		args := make([]variant.Variant, desc.ArgCount)
		for i := int(desc.ArgCount) - 1; i >= 0; i-- {
			v, err := c.pop()
			if err != nil {
				return err
			}
			args[i] = v
		}
		c.ReturnValue = w.Registry.Dispatch(desc.Name, w, args)
		return nil

	case 0x04: // RET
		if _, err := c.restoreFrame(); err != nil {
			return err
		}
		c.ReturnValue = variant.Nil()
		return nil

	case 0x05: // RETV
		top, err := c.pop()
		if err != nil {
			return err
		}
		if _, err := c.restoreFrame(); err != nil {
			return err
		}
		c.ReturnValue = top
		return nil

	case 0x06: // JMP u32 addr
		addr, err := img.ReadU32(c.PC)
		if err != nil {
			return &DecodeError{PC: opPC, Msg: err.Error()}
		}
		c.PC += 4
		if !img.IsCodeArea(addr) {
			return &ControlFlowError{PC: opPC, Target: addr, Msg: "JMP target outside code area"}
		}
		c.PC = addr
		return nil

	case 0x07: // JZ u32 addr
		addr, err := img.ReadU32(c.PC)
		if err != nil {
			return &DecodeError{PC: opPC, Msg: err.Error()}
		}
		c.PC += 4
		top, err := c.pop()
		if err != nil {
			return err
		}
		if !top.Truthy() {
			if !img.IsCodeArea(addr) {
				return &ControlFlowError{PC: opPC, Target: addr, Msg: "JZ target outside code area"}
			}
			c.PC = addr
		}
		return nil

	case 0x08: // PUSH_NIL
		return c.push(variant.Nil())

	case 0x09: // PUSH_TRUE
		return c.push(variant.True())

	case 0x0A: // PUSH_I32
		v, err := img.ReadI32(c.PC)
		if err != nil {
			return &DecodeError{PC: opPC, Msg: err.Error()}
		}
		c.PC += 4
		return c.push(variant.Int(v))

	case 0x0B: // PUSH_I16
		v, err := img.ReadI16(c.PC)
		if err != nil {
			return &DecodeError{PC: opPC, Msg: err.Error()}
		}
		c.PC += 2
		return c.push(variant.Int(int32(v)))

	case 0x0C: // PUSH_I8
		v, err := img.ReadI8(c.PC)
		if err != nil {
			return &DecodeError{PC: opPC, Msg: err.Error()}
		}
		c.PC++
		return c.push(variant.Int(int32(v)))

	case 0x0D: // PUSH_F32
		v, err := img.ReadF32(c.PC)
		if err != nil {
			return &DecodeError{PC: opPC, Msg: err.Error()}
		}
		c.PC += 4
		return c.push(variant.Float(v))

	case 0x0E: // PUSH_STRING u8 len + bytes
		l, err := img.ReadU8(c.PC)
		if err != nil {
			return &DecodeError{PC: opPC, Msg: err.Error()}
		}
		c.PC++
		s, err := img.ReadCString(c.PC, int(l))
		if err != nil {
			return &DecodeError{PC: opPC, Msg: err.Error()}
		}
		c.PC += uint32(l)
		return c.push(variant.String(s))

	case 0x0F: // PUSH_GLOBAL u16 key
		key, err := img.ReadU16(c.PC)
		if err != nil {
			return &DecodeError{PC: opPC, Msg: err.Error()}
		}
		c.PC += 2
		return c.push(w.Globals.Get(key))

	case 0x10: // PUSH_STACK i8 offset
		off, err := img.ReadI8(c.PC)
		if err != nil {
			return &DecodeError{PC: opPC, Msg: err.Error()}
		}
		c.PC++
		idx, err := c.slotAt(int32(off))
		if err != nil {
			return err
		}
		return c.push(c.Stack[idx])

	case 0x11: // PUSH_GLOBAL_TABLE u16 key
		key, err := img.ReadU16(c.PC)
		if err != nil {
			return &DecodeError{PC: opPC, Msg: err.Error()}
		}
		c.PC += 2
		index, err := c.pop()
		if err != nil {
			return err
		}
		k, _ := index.Int32()
		return c.push(w.Globals.Get(key).Get(uint32(k)))

	case 0x12: // PUSH_LOCAL_TABLE i8 offset
		off, err := img.ReadI8(c.PC)
		if err != nil {
			return &DecodeError{PC: opPC, Msg: err.Error()}
		}
		c.PC++
		index, err := c.pop()
		if err != nil {
			return err
		}
		k, _ := index.Int32()
		idx, err := c.slotAt(int32(off))
		if err != nil {
			return err
		}
		return c.push(c.Stack[idx].Get(uint32(k)))

	case 0x13: // PUSH_TOP
		top, err := c.peek()
		if err != nil {
			return err
		}
		return c.push(top)

	case 0x14: // PUSH_RETURN
		v := c.ReturnValue
		c.ReturnValue = variant.Nil()
		return c.push(v)

	case 0x15: // POP_GLOBAL u16 key
		key, err := img.ReadU16(c.PC)
		if err != nil {
			return &DecodeError{PC: opPC, Msg: err.Error()}
		}
		c.PC += 2
		v, err := c.pop()
		if err != nil {
			return err
		}
		w.Globals.Set(key, v)
		return nil

	case 0x16: // POP_STACK i8 offset
		off, err := img.ReadI8(c.PC)
		if err != nil {
			return &DecodeError{PC: opPC, Msg: err.Error()}
		}
		c.PC++
		v, err := c.pop()
		if err != nil {
			return err
		}
		idx, err := c.slotAt(int32(off))
		if err != nil {
			return err
		}
		c.Stack[idx] = v
		return nil

	case 0x17: // POP_GLOBAL_TABLE u16 key
		key, err := img.ReadU16(c.PC)
		if err != nil {
			return &DecodeError{PC: opPC, Msg: err.Error()}
		}
		c.PC += 2
		val, err := c.pop()
		if err != nil {
			return err
		}
		keyVal, err := c.pop()
		if err != nil {
			return err
		}
		k, _ := keyVal.Int32()
		table := variant.PromoteTable(w.Globals.Get(key))
		w.Globals.Set(key, table)
		table.Set(uint32(k), val)
		return nil

	case 0x18: // POP_LOCAL_TABLE i8 offset
		off, err := img.ReadI8(c.PC)
		if err != nil {
			return &DecodeError{PC: opPC, Msg: err.Error()}
		}
		c.PC++
		val, err := c.pop()
		if err != nil {
			return err
		}
		keyVal, err := c.pop()
		if err != nil {
			return err
		}
		k, _ := keyVal.Int32()
		idx, err := c.slotAt(int32(off))
		if err != nil {
			return err
		}
		table := variant.PromoteTable(c.Stack[idx])
		c.Stack[idx] = table
		table.Set(uint32(k), val)
		return nil

	case 0x19: // NEG
		a, err := c.pop()
		if err != nil {
			return err
		}
		return c.push(variant.Neg(a))

	case 0x1A, 0x1B, 0x1C, 0x1D, 0x1E: // ADD SUB MUL DIV MOD
		b, err := c.pop()
		if err != nil {
			return err
		}
		a, err := c.pop()
		if err != nil {
			return err
		}
		var result variant.Variant
		switch op {
		case 0x1A:
			result = variant.Add(a, b)
		case 0x1B:
			result = variant.Sub(a, b)
		case 0x1C:
			result = variant.Mul(a, b)
		case 0x1D:
			result = variant.Div(a, b)
		case 0x1E:
			result = variant.Mod(a, b)
		}
		return c.push(result)

	case 0x1F: // BITTEST
		b, err := c.pop()
		if err != nil {
			return err
		}
		a, err := c.pop()
		if err != nil {
			return err
		}
		return c.push(variant.BitTest(a, b))

	case 0x20: // AND
		b, err := c.pop()
		if err != nil {
			return err
		}
		a, err := c.pop()
		if err != nil {
			return err
		}
		return c.push(variant.And(a, b))

	case 0x21: // OR
		b, err := c.pop()
		if err != nil {
			return err
		}
		a, err := c.pop()
		if err != nil {
			return err
		}
		return c.push(variant.Or(a, b))

	case 0x22, 0x23, 0x24, 0x25, 0x26, 0x27: // SETE SETNE SETG SETLE SETL SETGE
		b, err := c.pop()
		if err != nil {
			return err
		}
		a, err := c.pop()
		if err != nil {
			return err
		}
		var result variant.Variant
		switch op {
		case 0x22:
			result = variant.Equal(a, b)
		case 0x23:
			result = variant.NotEqual(a, b)
		case 0x24:
			result = variant.Greater(a, b)
		case 0x25:
			result = variant.LessEqual(a, b)
		case 0x26:
			result = variant.Less(a, b)
		case 0x27:
			result = variant.GreaterEqual(a, b)
		}
		return c.push(result)

	default:
		// DESIGN.md Open Question 5: spec.md treats an unknown opcode as a
		// decode error that aborts the context, diverging from the source's
		// no-op-and-log fallback.
		return &DecodeError{PC: opPC, Msg: fmt.Sprintf("unknown opcode 0x%02X", op)}
	}
}

// restoreFrame implements the shared RET/RETV mechanics: restore
// (cur_stack_pos, cur_stack_base, PC) from the SavedFrameInfo below the
// current base, then pop exactly `args` operands from the now-restored
// caller frame (DESIGN.md Open Question 1: restore-then-pop).
func (c *Context) restoreFrame() (int32, error) {
	f, err := c.frameInfo()
	if err != nil {
		return 0, err
	}
	c.CurStackPos = f.StackPos
	c.CurStackBase = f.StackBase
	c.PC = f.ReturnAddr
	c.CurStackPos -= f.Args
	if c.CurStackPos < 0 {
		return 0, &StackError{PC: c.PC, Msg: "RET popped more args than were pushed"}
	}
	return f.Args, nil
}
