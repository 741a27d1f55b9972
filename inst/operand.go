package inst

import "fmt"

// Operand is a Register, Memory or Immediate.
type Operand interface {
	operand()
}

// Memory is an effective address: base registers plus displacement, or a
// direct 16-bit address when Direct is set.
type Memory struct {
	Base     Base
	Disp     uint16
	DispSize int
	Direct   bool
}

func (Memory) operand() {}

// Signed is the displacement read as two's complement of its encoded width.
func (m Memory) Signed() int16 {
	if m.DispSize == 1 {
		return int16(int8(m.Disp))
	}
	return int16(m.Disp)
}

// Immediate is a literal operand of Size bytes. Explicit marks operands whose
// size must be spelled out because the destination is memory.
type Immediate struct {
	Value    uint16
	Size     int
	Explicit bool
}

func (Immediate) operand() {}

func (i Immediate) Signed() int16 {
	if i.Size == 1 {
		return int16(int8(i.Value))
	}
	return int16(i.Value)
}

// Style controls operand rendering.
type Style struct {
	// Signed renders displacements and immediates as two's complement
	// (`[bp - 2]`, `-1`) instead of raw unsigned values (`[bp + 254]`, `255`).
	Signed bool
}

func (s Style) Operand(op Operand) string {
	switch op := op.(type) {
	case Register:
		return op.String()
	case Memory:
		return s.memory(op)
	case Immediate:
		return s.immediate(op)
	default:
		return "?"
	}
}

func (s Style) memory(m Memory) string {
	if m.Direct {
		return fmt.Sprintf("[%d]", m.Disp)
	}

	disp := int(m.Disp)
	if s.Signed {
		disp = int(m.Signed())
	}

	switch {
	case disp == 0:
		return fmt.Sprintf("[%s]", m.Base)
	case disp < 0:
		return fmt.Sprintf("[%s - %d]", m.Base, -disp)
	default:
		return fmt.Sprintf("[%s + %d]", m.Base, disp)
	}
}

func (s Style) immediate(i Immediate) string {
	value := int(i.Value)
	if s.Signed {
		value = int(i.Signed())
	}
	if !i.Explicit {
		return fmt.Sprintf("%d", value)
	}
	if i.Size == 2 {
		return fmt.Sprintf("word %d", value)
	}
	return fmt.Sprintf("byte %d", value)
}
