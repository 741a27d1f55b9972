package inst

import (
	"errors"
	"fmt"
)

var (
	ErrUnrecognizedOpcode   = errors.New("unrecognized opcode")
	ErrUnsupportedVariant   = errors.New("unsupported mov variant")
	ErrTruncatedInstruction = errors.New("truncated instruction")
)

// UnrecognizedOpcodeError is returned when the first byte matches no MOV encoding.
type UnrecognizedOpcodeError struct {
	Opcode byte
}

func (e *UnrecognizedOpcodeError) Error() string {
	return fmt.Sprintf("%s %08b", ErrUnrecognizedOpcode, e.Opcode)
}

func (e *UnrecognizedOpcodeError) Is(target error) bool {
	return target == ErrUnrecognizedOpcode
}

// UnsupportedVariantError is returned for MOV encodings that classify but
// are not decoded.
type UnsupportedVariantError struct {
	Class  Class
	Opcode byte
}

func (e *UnsupportedVariantError) Error() string {
	return fmt.Sprintf("%s %s (%08b)", ErrUnsupportedVariant, e.Class, e.Opcode)
}

func (e *UnsupportedVariantError) Is(target error) bool {
	return target == ErrUnsupportedVariant
}

// TruncatedInstructionError is returned when a field would be read past the
// end of the buffer.
type TruncatedInstructionError struct {
	Class Class
	Field string
	Need  int
	Have  int
}

func (e *TruncatedInstructionError) Error() string {
	return fmt.Sprintf("%s: %s %s needs %d bytes, have %d",
		ErrTruncatedInstruction, e.Class, e.Field, e.Need, e.Have)
}

func (e *TruncatedInstructionError) Is(target error) bool {
	return target == ErrTruncatedInstruction
}
