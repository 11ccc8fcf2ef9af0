// Package bytecode implements the `.hcb` bytecode image parser: bounds-checked
// little-endian accessors into an immutable code section, plus the system
// descriptor (entry point, global counts, resolution, title, syscall table).
//
// Layout (all multi-byte fields little-endian):
//
//	offset 0:       u32 sys_desc_offset
//	[4, sys_desc_offset): code section (opcodes + inline constants)
//	sys_desc_offset:
//	    u32 entry_point
//	    u16 non_volatile_count
//	    u16 volatile_count
//	    u16 resolution_mode
//	    u8  title_len, title bytes
//	    u16 syscall_count
//	    syscall_count records of {u8 arg_count, u8 name_len, name bytes}
//	    u16 custom_syscall_count (typically 0)
package bytecode

import (
	"encoding/binary"
	"fmt"
)

// Encoding selects how string literals and the descriptor's title are
// decoded. The source encoding is fixed per image and never switches
// mid-image.
type Encoding uint8

const (
	EncodingUTF8 Encoding = iota
	EncodingShiftJIS
	EncodingGBK
)

// Resolution is a decoded screen dimension pair.
type Resolution struct {
	Width, Height int
}

// resolutionTable maps the descriptor's 4-bit resolution code to a concrete
// screen size, per spec: codes 0..15 span 640x480 up to 1920x1200.
var resolutionTable = [16]Resolution{
	{640, 480}, {800, 600}, {1024, 768}, {1152, 864},
	{1280, 720}, {1280, 960}, {1280, 1024}, {1366, 768},
	{1440, 900}, {1400, 1050}, {1600, 900}, {1600, 1200},
	{1680, 1050}, {1768, 992}, {1920, 1080}, {1920, 1200},
}

// SyscallDescriptor is one entry of the parser-declared syscall table: a
// name and a fixed argument count (arity is per image, not per call site).
type SyscallDescriptor struct {
	Name     string
	ArgCount uint8
}

// SystemDescriptor is the image's fixed-layout metadata block.
type SystemDescriptor struct {
	EntryPoint        uint32
	NonVolatileCount  uint16
	VolatileCount     uint16
	ResolutionMode    uint16
	Title             string
	Syscalls          []SyscallDescriptor
	CustomSyscallCount uint16
}

// Image is an immutable, parsed `.hcb` bytecode image.
type Image struct {
	buf      []byte
	sysDescOffset uint32
	desc     SystemDescriptor
	encoding Encoding
}

// Load parses raw bytes into an Image. encoding selects the string decode
// used for PUSH_STRING operands and the descriptor title; it is supplied by
// the caller at load time because the image itself does not self-describe it.
func Load(buf []byte, encoding Encoding) (*Image, error) {
	if len(buf) < 4 {
		return nil, fmt.Errorf("bytecode: image too short: %d bytes", len(buf))
	}
	sysDescOffset := binary.LittleEndian.Uint32(buf[0:4])
	if int(sysDescOffset) > len(buf) || sysDescOffset < 4 {
		return nil, fmt.Errorf("bytecode: invalid system descriptor offset %d (len %d)", sysDescOffset, len(buf))
	}

	img := &Image{buf: buf, sysDescOffset: sysDescOffset, encoding: encoding}
	desc, err := img.parseDescriptor(sysDescOffset)
	if err != nil {
		return nil, err
	}
	img.desc = desc
	return img, nil
}

func (img *Image) parseDescriptor(off uint32) (SystemDescriptor, error) {
	var d SystemDescriptor
	var err error

	d.EntryPoint, err = img.ReadU32(off)
	if err != nil {
		return d, err
	}
	off += 4

	d.NonVolatileCount, err = img.ReadU16(off)
	if err != nil {
		return d, err
	}
	off += 2

	d.VolatileCount, err = img.ReadU16(off)
	if err != nil {
		return d, err
	}
	off += 2

	d.ResolutionMode, err = img.ReadU16(off)
	if err != nil {
		return d, err
	}
	off += 2

	titleLen, err := img.ReadU8(off)
	if err != nil {
		return d, err
	}
	off++
	d.Title, err = img.ReadCString(off, int(titleLen))
	if err != nil {
		return d, err
	}
	off += uint32(titleLen)

	syscallCount, err := img.ReadU16(off)
	if err != nil {
		return d, err
	}
	off += 2

	d.Syscalls = make([]SyscallDescriptor, 0, syscallCount)
	for i := 0; i < int(syscallCount); i++ {
		argCount, err := img.ReadU8(off)
		if err != nil {
			return d, err
		}
		off++
		nameLen, err := img.ReadU8(off)
		if err != nil {
			return d, err
		}
		off++
		name, err := img.ReadCString(off, int(nameLen))
		if err != nil {
			return d, err
		}
		off += uint32(nameLen)
		d.Syscalls = append(d.Syscalls, SyscallDescriptor{Name: name, ArgCount: argCount})
	}

	if custom, err := img.ReadU16(off); err == nil {
		d.CustomSyscallCount = custom
	}

	return d, nil
}

// Descriptor returns the parsed system descriptor.
func (img *Image) Descriptor() SystemDescriptor { return img.desc }

// Title returns the game title decoded from the descriptor.
func (img *Image) Title() string { return img.desc.Title }

// Resolution decodes the descriptor's 4-bit resolution code into concrete
// screen dimensions.
func (img *Image) Resolution() Resolution {
	code := img.desc.ResolutionMode & 0xF
	return resolutionTable[code]
}

// IsCodeArea reports whether addr is a valid jump/call target: the code
// section spans [4, sys_desc_offset).
func (img *Image) IsCodeArea(addr uint32) bool {
	return addr >= 4 && addr < img.sysDescOffset
}

func (img *Image) checkBounds(off uint32, n int) error {
	if int64(off)+int64(n) > int64(len(img.buf)) {
		return fmt.Errorf("bytecode: read out of bounds at %d (len %d, need %d)", off, len(img.buf), n)
	}
	return nil
}

func (img *Image) ReadU8(off uint32) (uint8, error) {
	if err := img.checkBounds(off, 1); err != nil {
		return 0, err
	}
	return img.buf[off], nil
}

func (img *Image) ReadI8(off uint32) (int8, error) {
	v, err := img.ReadU8(off)
	return int8(v), err
}

func (img *Image) ReadU16(off uint32) (uint16, error) {
	if err := img.checkBounds(off, 2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(img.buf[off:]), nil
}

func (img *Image) ReadI16(off uint32) (int16, error) {
	v, err := img.ReadU16(off)
	return int16(v), err
}

func (img *Image) ReadU32(off uint32) (uint32, error) {
	if err := img.checkBounds(off, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(img.buf[off:]), nil
}

func (img *Image) ReadI32(off uint32) (int32, error) {
	v, err := img.ReadU32(off)
	return int32(v), err
}

func (img *Image) ReadF32(off uint32) (float32, error) {
	v, err := img.ReadU32(off)
	if err != nil {
		return 0, err
	}
	return mathFloat32frombits(v), nil
}

// ReadCString decodes a length-prefixed (not NUL-terminated) string at off
// using the image's configured encoding.
func (img *Image) ReadCString(off uint32, length int) (string, error) {
	if err := img.checkBounds(off, length); err != nil {
		return "", err
	}
	raw := img.buf[off : off+uint32(length)]
	return decodeString(raw, img.encoding), nil
}

// ReadOpcodeByte reads a single opcode tag byte, validating it's within the
// code area.
func (img *Image) ReadOpcodeByte(off uint32) (uint8, error) {
	if !img.IsCodeArea(off) {
		return 0, fmt.Errorf("bytecode: pc %d outside code area [4,%d)", off, img.sysDescOffset)
	}
	return img.ReadU8(off)
}
