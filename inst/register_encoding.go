package inst

// Register is one of the eight byte or eight word general registers.
type Register byte

const (
	AL Register = iota
	CL
	DL
	BL
	AH
	CH
	DH
	BH
	AX
	CX
	DX
	BX
	SP
	BP
	SI
	DI
)

var registerNames = [...]string{
	AL: "al", CL: "cl", DL: "dl", BL: "bl",
	AH: "ah", CH: "ch", DH: "dh", BH: "bh",
	AX: "ax", CX: "cx", DX: "dx", BX: "bx",
	SP: "sp", BP: "bp", SI: "si", DI: "di",
}

func (r Register) String() string {
	if int(r) >= len(registerNames) {
		return "??"
	}
	return registerNames[r]
}

// Wide reports whether r is a 16-bit register.
func (r Register) Wide() bool {
	return r >= AX
}

func (Register) operand() {}

type regEncoding struct {
	register
	opSize
}

// AH..BH share codes with SP..DI, so the table is keyed on both fields.
var regTable = map[regEncoding]Register{
	{alax, opByte}: AL,
	{clcx, opByte}: CL,
	{dldx, opByte}: DL,
	{blbx, opByte}: BL,
	{ahsp, opByte}: AH,
	{chbp, opByte}: CH,
	{dhsi, opByte}: DH,
	{bhdi, opByte}: BH,
	{alax, opWord}: AX,
	{clcx, opWord}: CX,
	{dldx, opWord}: DX,
	{blbx, opWord}: BX,
	{ahsp, opWord}: SP,
	{chbp, opWord}: BP,
	{dhsi, opWord}: SI,
	{bhdi, opWord}: DI,
}

func lookupRegister(r register, w opSize) Register {
	reg, ok := regTable[regEncoding{r & 0x7, w & 0x1}]
	if !ok {
		panic("Can't encode register")
	}
	return reg
}
