package inst

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseInstruction(t *testing.T) {
	tests := []struct {
		bytes  []byte
		result string
	}{
		{[]byte{0x89, 0xd9}, "mov, cx, bx"},
		{[]byte{0x88, 0xe5}, "mov, ch, ah"},
		{[]byte{0x89, 0xda}, "mov, dx, bx"},
		{[]byte{0x89, 0xde}, "mov, si, bx"},
		{[]byte{0x89, 0xfb}, "mov, bx, di"},
		{[]byte{0x88, 0xc8}, "mov, al, cl"},
		{[]byte{0x88, 0xed}, "mov, ch, ch"},
		{[]byte{0x89, 0xc3}, "mov, bx, ax"},
		{[]byte{0x89, 0xf3}, "mov, bx, si"},
		{[]byte{0x89, 0xfc}, "mov, sp, di"},
		{[]byte{0x89, 0xc5}, "mov, bp, ax"},
		{[]byte{0x89, 0xd8}, "mov, ax, bx"},
		{[]byte{0xb1, 0x0c}, "mov, cl, 12"},
		{[]byte{0xb5, 0xf4}, "mov, ch, 244"},
		{[]byte{0xb9, 0x0c, 0x00}, "mov, cx, 12"},
		{[]byte{0xba, 0x6c, 0x0f}, "mov, dx, 3948"},
		{[]byte{0xb8, 0x01, 0x00}, "mov, ax, 1"},
		{[]byte{0x8a, 0x00}, "mov, al, [bx + si]"},
		{[]byte{0x8b, 0x1b}, "mov, bx, [bp + di]"},
		{[]byte{0x8b, 0x56, 0x00}, "mov, dx, [bp]"},
		{[]byte{0x8a, 0x60, 0x04}, "mov, ah, [bx + si + 4]"},
		{[]byte{0x8a, 0x80, 0x87, 0x13}, "mov, al, [bx + si + 4999]"},
		{[]byte{0x89, 0x09}, "mov, [bx + di], cx"},
		{[]byte{0x88, 0x0a}, "mov, [bp + si], cl"},
		{[]byte{0x88, 0x6e, 0x00}, "mov, [bp], ch"},
		{[]byte{0x8b, 0x2e, 0x05, 0x00}, "mov, bp, [5]"},
		{[]byte{0x8b, 0x1e, 0x82, 0x0d}, "mov, bx, [3458]"},
		{[]byte{0x8b, 0x06, 0x34, 0x12}, "mov, ax, [4660]"},
		{[]byte{0xc6, 0x03, 0x07}, "mov, [bp + di], byte 7"},
		{[]byte{0xc7, 0x85, 0x85, 0x03, 0x5b, 0x01}, "mov, [di + 901], word 347"},
		{[]byte{0xc6, 0x06, 0x34, 0x12, 0x07}, "mov, [4660], byte 7"},
		{[]byte{0xc7, 0xc1, 0x0c, 0x00}, "mov, cx, 12"},
	}

	for _, test := range tests {
		t.Run(test.result, func(t *testing.T) {
			inst, err := Decode(test.bytes)
			if err != nil {
				t.Fatalf("Decode(% x) returned %v", test.bytes, err)
			}
			if result := fmt.Sprint(inst); result != test.result {
				t.Errorf("'%s' != '%s' for % x", result, test.result, test.bytes)
			}
			if inst.Len != len(test.bytes) {
				t.Errorf("Len = %d, want %d", inst.Len, len(test.bytes))
			}
		})
	}
}

func TestDecodeRegisterMode(t *testing.T) {
	got, err := Decode([]byte{0x89, 0xd8, 0xff})
	if err != nil {
		t.Fatal(err)
	}

	want := Instruction{
		Class: RegMemToFromReg,
		Dst:   AX,
		Src:   BX,
		Len:   2,
		Raw:   []byte{0x89, 0xd8},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeDirectAddress(t *testing.T) {
	got, err := Decode([]byte{0x8b, 0x06, 0x34, 0x12})
	if err != nil {
		t.Fatal(err)
	}

	want := Instruction{
		Class: RegMemToFromReg,
		Dst:   AX,
		Src:   Memory{Disp: 0x1234, DispSize: 2, Direct: true},
		Len:   4,
		Raw:   []byte{0x8b, 0x06, 0x34, 0x12},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}

	if src := got.Src.(Memory); src.Base == BaseBP {
		t.Errorf("direct address decoded as [bp]")
	}
}

func TestDecodeBPWithDisplacement(t *testing.T) {
	// mod=01, r/m=110 is [bp + d8], not a direct address.
	got, err := Decode([]byte{0x8b, 0x46, 0x02})
	if err != nil {
		t.Fatal(err)
	}

	want := Memory{Base: BaseBP, Disp: 2, DispSize: 1}
	if diff := cmp.Diff(want, got.Src); diff != "" {
		t.Errorf("source mismatch (-want +got):\n%s", diff)
	}
	if got.Len != 3 {
		t.Errorf("Len = %d, want 3", got.Len)
	}
}

func TestDecodeImmediateToRegMem(t *testing.T) {
	tests := []struct {
		name  string
		bytes []byte
		dst   Operand
		src   Immediate
	}{
		{
			name:  "byte to memory",
			bytes: []byte{0xc6, 0x03, 0x07},
			dst:   Memory{Base: BPDI},
			src:   Immediate{Value: 7, Size: 1, Explicit: true},
		},
		{
			name:  "word to memory with disp16",
			bytes: []byte{0xc7, 0x85, 0x85, 0x03, 0x5b, 0x01},
			dst:   Memory{Base: BaseDI, Disp: 901, DispSize: 2},
			src:   Immediate{Value: 347, Size: 2, Explicit: true},
		},
		{
			name:  "reg field is ignored",
			bytes: []byte{0xc6, 0x3f, 0x01},
			dst:   Memory{Base: BaseBX},
			src:   Immediate{Value: 1, Size: 1, Explicit: true},
		},
		{
			name:  "register destination",
			bytes: []byte{0xc6, 0xc0, 0x09},
			dst:   AL,
			src:   Immediate{Value: 9, Size: 1},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Decode(test.bytes)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.dst, got.Dst); diff != "" {
				t.Errorf("destination mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(Operand(test.src), got.Src); diff != "" {
				t.Errorf("source mismatch (-want +got):\n%s", diff)
			}
			if got.Len != len(test.bytes) {
				t.Errorf("Len = %d, want %d", got.Len, len(test.bytes))
			}
		})
	}
}

func TestDecodeImmediateToRegHasNoSizeMarker(t *testing.T) {
	for w := byte(0); w < 2; w++ {
		for reg := byte(0); reg < 8; reg++ {
			op := 0xb0 | w<<3 | reg
			inst, err := Decode([]byte{op, 0x01, 0x00})
			if err != nil {
				t.Fatal(err)
			}
			if imm := inst.Src.(Immediate); imm.Explicit {
				t.Errorf("% x has an explicit size marker", inst.Raw)
			}
			if want := 2 + int(w); inst.Len != want {
				t.Errorf("%08b Len = %d, want %d", op, inst.Len, want)
			}
		}
	}
}

func TestDecodeUnsupportedVariant(t *testing.T) {
	tests := []struct {
		bytes []byte
		class Class
	}{
		{[]byte{0xa1, 0xfb, 0x09}, MemToAcc},
		{[]byte{0xa2, 0x10, 0x00}, AccToMem},
		{[]byte{0x8e, 0xd8}, RegMemToSegReg},
		{[]byte{0x8c, 0xc0}, SegRegToRegMem},
	}

	for _, test := range tests {
		t.Run(test.class.String(), func(t *testing.T) {
			_, err := Decode(test.bytes)
			if !errors.Is(err, ErrUnsupportedVariant) {
				t.Fatalf("Decode(% x) error = %v, want %v", test.bytes, err, ErrUnsupportedVariant)
			}
			if errors.Is(err, ErrUnrecognizedOpcode) {
				t.Errorf("unsupported variant reported as unrecognized")
			}

			var target *UnsupportedVariantError
			if !errors.As(err, &target) || target.Class != test.class {
				t.Errorf("Decode(% x) error = %#v", test.bytes, err)
			}
		})
	}
}

func TestDecodeTruncated(t *testing.T) {
	tests := []struct {
		bytes []byte
		want  TruncatedInstructionError
	}{
		{nil, TruncatedInstructionError{Field: "opcode", Need: 1}},
		{[]byte{0x89}, TruncatedInstructionError{RegMemToFromReg, "mod-reg-rm", 2, 1}},
		{[]byte{0x8b, 0x06, 0x34}, TruncatedInstructionError{RegMemToFromReg, "direct address", 4, 3}},
		{[]byte{0x8a, 0x60}, TruncatedInstructionError{RegMemToFromReg, "displacement", 3, 2}},
		{[]byte{0x8a, 0x80, 0x87}, TruncatedInstructionError{RegMemToFromReg, "displacement", 4, 3}},
		{[]byte{0xc7, 0x85, 0x85, 0x03, 0x5b}, TruncatedInstructionError{ImmediateToRegMem, "immediate", 6, 5}},
		{[]byte{0xb8, 0x01}, TruncatedInstructionError{ImmediateToReg, "immediate", 3, 2}},
		{[]byte{0xb0}, TruncatedInstructionError{ImmediateToReg, "immediate", 2, 1}},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("% x", test.bytes), func(t *testing.T) {
			_, err := Decode(test.bytes)
			if !errors.Is(err, ErrTruncatedInstruction) {
				t.Fatalf("Decode(% x) error = %v, want %v", test.bytes, err, ErrTruncatedInstruction)
			}

			var got *TruncatedInstructionError
			if !errors.As(err, &got) {
				t.Fatalf("Decode(% x) error = %#v", test.bytes, err)
			}
			if diff := cmp.Diff(test.want, *got); diff != "" {
				t.Errorf("error mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeIsPure(t *testing.T) {
	buf := []byte{0xc7, 0x85, 0x85, 0x03, 0x5b, 0x01}
	first, err := Decode(buf)
	if err != nil {
		t.Fatal(err)
	}
	first.Raw[0] = 0

	second, err := Decode(buf)
	if err != nil {
		t.Fatal(err)
	}
	if buf[0] != 0xc7 || second.Raw[0] != 0xc7 {
		t.Errorf("Raw aliases the input buffer")
	}
	if first.String() != second.String() {
		t.Errorf("%q != %q", first, second)
	}
}
