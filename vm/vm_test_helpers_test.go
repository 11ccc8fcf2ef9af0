package vm

import (
	"encoding/binary"

	"github.com/riftvm/hcbvm/bytecode"
	"github.com/riftvm/hcbvm/effects"
)

// asm is a tiny bytecode assembler for tests: it appends opcode bytes and
// inline operands in the image's little-endian encoding.
type asm struct {
	code []byte
}

func (a *asm) b(v byte) *asm { a.code = append(a.code, v); return a }
func (a *asm) u16(v uint16) *asm {
	a.code = binary.LittleEndian.AppendUint16(a.code, v)
	return a
}
func (a *asm) u32(v uint32) *asm {
	a.code = binary.LittleEndian.AppendUint32(a.code, v)
	return a
}
func (a *asm) i8(v int8) *asm  { return a.b(byte(v)) }
func (a *asm) i32(v int32) *asm { return a.u32(uint32(v)) }

// buildTestImage assembles a minimal well-formed image from raw code bytes
// and a syscall name table (all declared with the given arities).
func buildTestImage(code []byte, syscalls []bytecode.SyscallDescriptor) *bytecode.Image {
	buf := make([]byte, 4)
	sysDescOff := uint32(4 + len(code))
	binary.LittleEndian.PutUint32(buf[0:4], sysDescOff)
	buf = append(buf, code...)

	var desc []byte
	put32 := func(v uint32) { desc = binary.LittleEndian.AppendUint32(desc, v) }
	put16 := func(v uint16) { desc = binary.LittleEndian.AppendUint16(desc, v) }

	put32(4)
	put16(16) // non_volatile_count
	put16(16) // volatile_count
	put16(0)
	desc = append(desc, 0) // title len 0
	put16(uint16(len(syscalls)))
	for _, s := range syscalls {
		desc = append(desc, s.ArgCount)
		desc = append(desc, byte(len(s.Name)))
		desc = append(desc, []byte(s.Name)...)
	}
	put16(0)

	raw := append(buf, desc...)
	img, err := bytecode.Load(raw, bytecode.EncodingUTF8)
	if err != nil {
		panic(err)
	}
	return img
}

func newTestWorld() *World {
	return NewWorld(16, 16, effects.NewState(nil, nil))
}
