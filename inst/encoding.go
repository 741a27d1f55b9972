package inst

// Class is one of the seven MOV encodings.
type Class byte

const (
	RegMemToFromReg Class = iota + 1
	ImmediateToRegMem
	ImmediateToReg
	MemToAcc
	AccToMem
	RegMemToSegReg
	SegRegToRegMem
)

var classNames = map[Class]string{
	RegMemToFromReg:   "register/memory to/from register",
	ImmediateToRegMem: "immediate to register/memory",
	ImmediateToReg:    "immediate to register",
	MemToAcc:          "memory to accumulator",
	AccToMem:          "accumulator to memory",
	RegMemToSegReg:    "register/memory to segment register",
	SegRegToRegMem:    "segment register to register/memory",
}

func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return "unknown"
}

type opcodePattern struct {
	mask     byte
	expected byte
	class    Class
}

// No byte satisfies two patterns, so the order only affects speed.
var opcodePatterns = [...]opcodePattern{
	{0b11111100, 0b10001000, RegMemToFromReg},
	{0b11111110, 0b11000110, ImmediateToRegMem},
	{0b11110000, 0b10110000, ImmediateToReg},
	{0b11111110, 0b10100000, MemToAcc},
	{0b11111110, 0b10100010, AccToMem},
	{0b11111111, 0b10001110, RegMemToSegReg},
	{0b11111111, 0b10001100, SegRegToRegMem},
}

func (p opcodePattern) match(b byte) bool {
	return b&p.mask == p.expected
}

// Classify returns the MOV encoding of the opcode byte b.
func Classify(b byte) (Class, error) {
	for _, p := range opcodePatterns {
		if p.match(b) {
			return p.class, nil
		}
	}
	return 0, &UnrecognizedOpcodeError{Opcode: b}
}
