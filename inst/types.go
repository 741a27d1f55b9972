package inst

import (
	"fmt"
	"strings"
)

type opDirection byte
type opSize byte
type modeOffset byte
type register byte

const (
	opSrc opDirection = 0x0
	opDst opDirection = 0x1

	opByte opSize = 0x0
	opWord opSize = 0x1

	memOffset0  modeOffset = 0x0
	memOffset8  modeOffset = 0x1
	memOffset16 modeOffset = 0x2
	regOffset0  modeOffset = 0x3

	alax register = 0x0
	clcx register = 0x1
	dldx register = 0x2
	blbx register = 0x3
	ahsp register = 0x4
	chbp register = 0x5
	dhsi register = 0x6
	bhdi register = 0x7
)

// byte1 is the opcode byte.
//
//	[opcode|d|w]         register/memory forms
//	[1011|w|reg]         immediate to register
type byte1 byte

func (o byte1) W() opSize {
	return opSize(o & 0x1)
}

func (o byte1) D() opDirection {
	return opDirection((o >> 1) & 0x1)
}

// immW is the word flag of the immediate to register form, bit 3.
func (o byte1) immW() opSize {
	return opSize((o >> 3) & 0x1)
}

func (o byte1) immReg() register {
	return register(o & 0x7)
}

// byte2 is the mod-reg-rm byte.
//
//	[mod|reg|r/m]
//	 2   3   3
type byte2 byte

func (o byte2) Mod() modeOffset {
	return modeOffset((o >> 6) & 0x3)
}

func (o byte2) Reg() register {
	return register((o >> 3) & 0x7)
}

func (o byte2) RM() register {
	return register(o & 0x7)
}

func (m modeOffset) String() string {
	switch m {
	case memOffset0:
		return "memory, no displacement"
	case memOffset8:
		return "memory, 8-bit displacement"
	case memOffset16:
		return "memory, 16-bit displacement"
	default:
		return "register"
	}
}

// dispBytes is how many displacement bytes follow the mod-reg-rm byte.
func (m modeOffset) dispBytes(rm register) int {
	switch {
	case isDirectAddress(m, rm):
		return 2
	case m == memOffset8:
		return 1
	case m == memOffset16:
		return 2
	default:
		return 0
	}
}

func (s opSize) bytes() int {
	if s == opWord {
		return 2
	}
	return 1
}

// Bits renders bytes as space separated 8-bit binary groups.
func Bits(b ...byte) string {
	groups := make([]string, len(b))
	for i, v := range b {
		groups[i] = fmt.Sprintf("%08b", v)
	}
	return strings.Join(groups, " ")
}
