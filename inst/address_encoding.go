package inst

// Base is the register part of an effective address.
type Base byte

const (
	NoBase Base = iota
	BXSI
	BXDI
	BPSI
	BPDI
	BaseSI
	BaseDI
	BaseBP
	BaseBX
)

var effAddrEncoding = map[register]Base{
	alax: BXSI,
	clcx: BXDI,
	dldx: BPSI,
	blbx: BPDI,
	ahsp: BaseSI,
	chbp: BaseDI,
	dhsi: BaseBP,
	bhdi: BaseBX,
}

var baseNames = map[Base]string{
	NoBase: "",
	BXSI:   "bx + si",
	BXDI:   "bx + di",
	BPSI:   "bp + si",
	BPDI:   "bp + di",
	BaseSI: "si",
	BaseDI: "di",
	BaseBP: "bp",
	BaseBX: "bx",
}

func (b Base) String() string {
	return baseNames[b]
}

// mod=00 with r/m=110 is a 16-bit absolute address, not [bp].
func isDirectAddress(m modeOffset, r register) bool {
	return m == memOffset0 && r == dhsi
}
