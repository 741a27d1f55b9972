// Package gen encodes MOV instructions and generates random ones together
// with the listing line they should disassemble to.
package gen

import (
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Mov is an encoded instruction and its expected unsigned listing line.
type Mov struct {
	Bytes []byte
	Text  string
}

var byteRegs = [8]string{"al", "cl", "dl", "bl", "ah", "ch", "dh", "bh"}
var wordRegs = [8]string{"ax", "cx", "dx", "bx", "sp", "bp", "si", "di"}
var bases = [8]string{"bx + si", "bx + di", "bp + si", "bp + di", "si", "di", "bp", "bx"}

const bpRM = 0b110

func regName(w bool, code byte) string {
	if w {
		return wordRegs[code&0x7]
	}
	return byteRegs[code&0x7]
}

func bit(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// Mem is a memory operand. DispSize is 0, 1 or 2 and is ignored when Direct
// is set. [bp] has no zero-displacement form, so RM 110 with DispSize 0 is
// encoded with an 8-bit zero displacement.
type Mem struct {
	RM       byte
	Disp     uint16
	DispSize int
	Direct   bool
}

// encode returns the mod-reg-rm byte, the displacement bytes and the operand text.
func (m Mem) encode(reg byte) (byte, []byte, string) {
	reg = (reg & 0x7) << 3
	if m.Direct {
		disp := binary.LittleEndian.AppendUint16(nil, m.Disp)
		return reg | bpRM, disp, fmt.Sprintf("[%d]", m.Disp)
	}

	rm := m.RM & 0x7
	size := m.DispSize
	if size == 0 && rm == bpRM {
		size = 1
	}

	var disp []byte
	var value uint16
	switch size {
	case 0:
		return reg | rm, nil, fmt.Sprintf("[%s]", bases[rm])
	case 1:
		value = m.Disp & 0xff
		disp = []byte{byte(value)}
	default:
		value = m.Disp
		disp = binary.LittleEndian.AppendUint16(nil, value)
	}

	mod := byte(size) << 6
	if value == 0 {
		return mod | reg | rm, disp, fmt.Sprintf("[%s]", bases[rm])
	}
	return mod | reg | rm, disp, fmt.Sprintf("[%s + %d]", bases[rm], value)
}

func immediate(w bool, value uint16) ([]byte, uint16) {
	if w {
		return binary.LittleEndian.AppendUint16(nil, value), value
	}
	return []byte{byte(value)}, value & 0xff
}

// RegToReg encodes mov dst, src between two registers of the same width.
func RegToReg(w bool, dst, src byte) Mov {
	return Mov{
		Bytes: []byte{0b10001000 | bit(w), 0b11<<6 | (src&0x7)<<3 | dst&0x7},
		Text:  fmt.Sprintf("mov, %s, %s", regName(w, dst), regName(w, src)),
	}
}

// RegMem encodes a register to or from memory move. toReg selects the
// direction: true loads reg from m.
func RegMem(w, toReg bool, reg byte, m Mem) Mov {
	modrm, disp, mem := m.encode(reg)
	b := append([]byte{0b10001000 | bit(toReg)<<1 | bit(w), modrm}, disp...)

	if toReg {
		return Mov{Bytes: b, Text: fmt.Sprintf("mov, %s, %s", regName(w, reg), mem)}
	}
	return Mov{Bytes: b, Text: fmt.Sprintf("mov, %s, %s", mem, regName(w, reg))}
}

// ImmToReg encodes the short [1011|w|reg] form.
func ImmToReg(w bool, reg byte, value uint16) Mov {
	data, v := immediate(w, value)
	return Mov{
		Bytes: append([]byte{0b10110000 | bit(w)<<3 | reg&0x7}, data...),
		Text:  fmt.Sprintf("mov, %s, %d", regName(w, reg), v),
	}
}

// ImmToMem encodes [1100011|w] with a memory destination.
func ImmToMem(w bool, m Mem, value uint16) Mov {
	modrm, disp, mem := m.encode(0)
	data, v := immediate(w, value)

	b := append([]byte{0b11000110 | bit(w), modrm}, disp...)
	size := "byte"
	if w {
		size = "word"
	}
	return Mov{
		Bytes: append(b, data...),
		Text:  fmt.Sprintf("mov, %s, %s %d", mem, size, v),
	}
}

// ImmToRegLong encodes [1100011|w] with a register destination (mod=11).
func ImmToRegLong(w bool, reg byte, value uint16) Mov {
	data, v := immediate(w, value)
	return Mov{
		Bytes: append([]byte{0b11000110 | bit(w), 0b11<<6 | reg&0x7}, data...),
		Text:  fmt.Sprintf("mov, %s, %d", regName(w, reg), v),
	}
}

func randomMem(r *rand.Rand) Mem {
	if r.Intn(8) == 0 {
		return Mem{Disp: uint16(r.Intn(1 << 16)), Direct: true}
	}
	return Mem{
		RM:       byte(r.Intn(8)),
		Disp:     uint16(r.Intn(1 << 16)),
		DispSize: r.Intn(3),
	}
}

// Random returns one random decodable MOV.
func Random(r *rand.Rand) Mov {
	w := r.Intn(2) == 1
	reg := byte(r.Intn(8))
	value := uint16(r.Intn(1 << 16))

	switch r.Intn(5) {
	case 0:
		return RegToReg(w, reg, byte(r.Intn(8)))
	case 1:
		return RegMem(w, r.Intn(2) == 1, reg, randomMem(r))
	case 2:
		return ImmToReg(w, reg, value)
	case 3:
		return ImmToMem(w, randomMem(r), value)
	default:
		return ImmToRegLong(w, reg, value)
	}
}

// Stream returns n random instructions laid end to end.
func Stream(r *rand.Rand, n int) ([]byte, []string) {
	var buf []byte
	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		mov := Random(r)
		buf = append(buf, mov.Bytes...)
		lines = append(lines, mov.Text)
	}
	return buf, lines
}
