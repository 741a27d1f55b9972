package inst

import (
	"bytes"
	"fmt"
)

// Instruction is one decoded MOV. Len is the exact number of bytes consumed
// and Raw holds a copy of them.
type Instruction struct {
	Class Class
	Dst   Operand
	Src   Operand
	Len   int
	Raw   []byte
}

func (i Instruction) Format(s Style) string {
	return fmt.Sprintf("mov, %s, %s", s.Operand(i.Dst), s.Operand(i.Src))
}

func (i Instruction) String() string {
	return i.Format(Style{})
}

type decodeFunc func(r *reader, op byte1) (dst, src Operand, err error)

var decoders = map[Class]decodeFunc{
	RegMemToFromReg:   decodeRegMemToFromReg,
	ImmediateToRegMem: decodeImmediateToRegMem,
	ImmediateToReg:    decodeImmediateToReg,
}

// Decode decodes the instruction at the start of buf.
func Decode(buf []byte) (Instruction, error) {
	if len(buf) == 0 {
		return Instruction{}, &TruncatedInstructionError{Field: "opcode", Need: 1}
	}

	class, err := Classify(buf[0])
	if err != nil {
		return Instruction{}, err
	}

	decode, ok := decoders[class]
	if !ok {
		return Instruction{}, &UnsupportedVariantError{Class: class, Opcode: buf[0]}
	}

	r := newReader(buf, class)
	op, err := r.byte("opcode")
	if err != nil {
		return Instruction{}, err
	}

	dst, src, err := decode(r, byte1(op))
	if err != nil {
		return Instruction{}, err
	}

	raw := bytes.Clone(r.consumed())
	return Instruction{Class: class, Dst: dst, Src: src, Len: len(raw), Raw: raw}, nil
}

// [100010|d|w] [mod|reg|r/m] [disp-lo] [disp-hi]
func decodeRegMemToFromReg(r *reader, op byte1) (Operand, Operand, error) {
	w := op.W()
	mrm, err := r.modRM()
	if err != nil {
		return nil, nil, err
	}

	reg := lookupRegister(mrm.Reg(), w)
	rm, err := r.rm(mrm, w)
	if err != nil {
		return nil, nil, err
	}

	if op.D() == opDst {
		return reg, rm, nil
	}
	return rm, reg, nil
}

// [1100011|w] [mod|000|r/m] [disp-lo] [disp-hi] [data] [data if w=1]
func decodeImmediateToRegMem(r *reader, op byte1) (Operand, Operand, error) {
	w := op.W()
	mrm, err := r.modRM()
	if err != nil {
		return nil, nil, err
	}

	// reg is 000 in the manual but is not checked.
	dst, err := r.rm(mrm, w)
	if err != nil {
		return nil, nil, err
	}

	imm, err := r.immediate(w)
	if err != nil {
		return nil, nil, err
	}
	_, imm.Explicit = dst.(Memory)

	return dst, imm, nil
}

// [1011|w|reg] [data] [data if w=1]
func decodeImmediateToReg(r *reader, op byte1) (Operand, Operand, error) {
	w := op.immW()
	imm, err := r.immediate(w)
	if err != nil {
		return nil, nil, err
	}
	return lookupRegister(op.immReg(), w), imm, nil
}

func (r *reader) modRM() (byte2, error) {
	b, err := r.byte("mod-reg-rm")
	return byte2(b), err
}

// rm resolves the r/m field, consuming any displacement bytes.
func (r *reader) rm(mrm byte2, w opSize) (Operand, error) {
	mod, rm := mrm.Mod(), mrm.RM()
	if mod == regOffset0 {
		return lookupRegister(rm, w), nil
	}

	if isDirectAddress(mod, rm) {
		addr, err := r.word("direct address")
		if err != nil {
			return nil, err
		}
		return Memory{Disp: addr, DispSize: 2, Direct: true}, nil
	}

	n := mod.dispBytes(rm)
	disp, err := r.sized("displacement", n)
	if err != nil {
		return nil, err
	}
	return Memory{Base: effAddrEncoding[rm], Disp: disp, DispSize: n}, nil
}

func (r *reader) immediate(w opSize) (Immediate, error) {
	value, err := r.sized("immediate", w.bytes())
	if err != nil {
		return Immediate{}, err
	}
	return Immediate{Value: value, Size: w.bytes()}, nil
}
