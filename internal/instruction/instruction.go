// Package instruction decodes CHIP-8 instruction words into operand fields.
package instruction

// Size is the size of every CHIP-8 instruction in bytes.
const Size = 2

// Kind identifies one of the CHIP-8 instructions.
type Kind uint8

// All instruction kinds of the base CHIP-8 instruction set. The comment shows
// the nibble pattern of the instruction word.
const (
	Invalid Kind = iota
	Cls          // 00E0
	Ret          // 00EE
	Sys          // 0nnn
	Jp           // 1nnn
	Call         // 2nnn
	SeByte       // 3xkk
	SneByte      // 4xkk
	SeReg        // 5xy0
	LdByte       // 6xkk
	AddByte      // 7xkk
	LdReg        // 8xy0
	Or           // 8xy1
	And          // 8xy2
	Xor          // 8xy3
	AddReg       // 8xy4
	Sub          // 8xy5
	Shr          // 8xy6
	Subn         // 8xy7
	Shl          // 8xyE
	SneReg       // 9xy0
	LdI          // Annn
	JpV0         // Bnnn
	Rnd          // Cxkk
	Drw          // Dxyn
	Skp          // Ex9E
	Sknp         // ExA1
	LdVxDT       // Fx07
	LdVxK        // Fx0A
	LdDTVx       // Fx15
	LdSTVx       // Fx18
	AddI         // Fx1E
	LdF          // Fx29
	LdB          // Fx33
	LdIVx        // Fx55
	LdVxI        // Fx65

	// KindCount is the number of instruction kinds including Invalid.
	KindCount
)

var kindNames = [KindCount]string{
	Invalid: "invalid",
	Cls:     "CLS",
	Ret:     "RET",
	Sys:     "SYS addr",
	Jp:      "JP addr",
	Call:    "CALL addr",
	SeByte:  "SE Vx, byte",
	SneByte: "SNE Vx, byte",
	SeReg:   "SE Vx, Vy",
	LdByte:  "LD Vx, byte",
	AddByte: "ADD Vx, byte",
	LdReg:   "LD Vx, Vy",
	Or:      "OR Vx, Vy",
	And:     "AND Vx, Vy",
	Xor:     "XOR Vx, Vy",
	AddReg:  "ADD Vx, Vy",
	Sub:     "SUB Vx, Vy",
	Shr:     "SHR Vx",
	Subn:    "SUBN Vx, Vy",
	Shl:     "SHL Vx",
	SneReg:  "SNE Vx, Vy",
	LdI:     "LD I, addr",
	JpV0:    "JP V0, addr",
	Rnd:     "RND Vx, byte",
	Drw:     "DRW Vx, Vy, nibble",
	Skp:     "SKP Vx",
	Sknp:    "SKNP Vx",
	LdVxDT:  "LD Vx, DT",
	LdVxK:   "LD Vx, K",
	LdDTVx:  "LD DT, Vx",
	LdSTVx:  "LD ST, Vx",
	AddI:    "ADD I, Vx",
	LdF:     "LD F, Vx",
	LdB:     "LD B, Vx",
	LdIVx:   "LD [I], Vx",
	LdVxI:   "LD Vx, [I]",
}

// String returns the instruction form of the kind, for example "ADD Vx, Vy".
func (k Kind) String() string {
	if k >= KindCount {
		return kindNames[Invalid]
	}
	return kindNames[k]
}

// Instruction is a decoded instruction word. All operand fields are
// extracted regardless of the kind, it is up to the kind which of them
// carry meaning.
type Instruction struct {
	Word uint16 // raw instruction word
	Kind Kind

	Type uint8  // top nibble, selects the opcode family
	NNN  uint16 // 12-bit address or immediate
	N    uint8  // low nibble, sprite height or ALU sub-selector
	X    uint8  // first register index
	Y    uint8  // second register index
	KK   uint8  // 8-bit immediate
}

// Decode splits an instruction word into its operand fields and identifies
// the instruction kind. Words that match no instruction decode to Invalid.
func Decode(word uint16) Instruction {
	ins := Instruction{
		Word: word,
		Type: uint8(word >> 12),
		NNN:  word & 0x0FFF,
		N:    uint8(word & 0x000F),
		X:    uint8(word>>8) & 0x0F,
		Y:    uint8(word>>4) & 0x0F,
		KK:   uint8(word),
	}
	ins.Kind = kindOf(ins)
	return ins
}

// FromBytes decodes the big endian instruction word made of hi and lo.
func FromBytes(hi, lo byte) Instruction {
	return Decode(uint16(hi)<<8 | uint16(lo))
}

var aluKinds = [16]Kind{
	0x0: LdReg,
	0x1: Or,
	0x2: And,
	0x3: Xor,
	0x4: AddReg,
	0x5: Sub,
	0x6: Shr,
	0x7: Subn,
	0xE: Shl,
}

var miscKinds = map[uint8]Kind{
	0x07: LdVxDT,
	0x0A: LdVxK,
	0x15: LdDTVx,
	0x18: LdSTVx,
	0x1E: AddI,
	0x29: LdF,
	0x33: LdB,
	0x55: LdIVx,
	0x65: LdVxI,
}

func kindOf(ins Instruction) Kind {
	switch ins.Type {
	case 0x0:
		switch ins.NNN {
		case 0x0E0:
			return Cls
		case 0x0EE:
			return Ret
		default:
			return Sys
		}
	case 0x1:
		return Jp
	case 0x2:
		return Call
	case 0x3:
		return SeByte
	case 0x4:
		return SneByte
	case 0x5:
		if ins.N == 0 {
			return SeReg
		}
	case 0x6:
		return LdByte
	case 0x7:
		return AddByte
	case 0x8:
		return aluKinds[ins.N] // unassigned sub-selectors are Invalid
	case 0x9:
		if ins.N == 0 {
			return SneReg
		}
	case 0xA:
		return LdI
	case 0xB:
		return JpV0
	case 0xC:
		return Rnd
	case 0xD:
		return Drw
	case 0xE:
		switch ins.KK {
		case 0x9E:
			return Skp
		case 0xA1:
			return Sknp
		}
	case 0xF:
		return miscKinds[ins.KK]
	}
	return Invalid
}

// IsValid returns true if the word decoded to a known instruction.
func (i Instruction) IsValid() bool {
	return i.Kind != Invalid
}

// IsJump returns true if the instruction is an unconditional jump.
func (i Instruction) IsJump() bool {
	return i.Kind == Jp || i.Kind == JpV0
}

// IsCall returns true if the instruction is a subroutine call.
func (i Instruction) IsCall() bool {
	return i.Kind == Call
}

// IsReturn returns true if the instruction returns from a subroutine.
func (i Instruction) IsReturn() bool {
	return i.Kind == Ret
}

// IsSkip returns true if the instruction conditionally skips the next one.
func (i Instruction) IsSkip() bool {
	switch i.Kind {
	case SeByte, SneByte, SeReg, SneReg, Skp, Sknp:
		return true
	default:
		return false
	}
}

// IsDataReference returns true if the instruction points I at an address in
// program memory (LD I, addr).
func (i Instruction) IsDataReference() bool {
	return i.Kind == LdI
}
