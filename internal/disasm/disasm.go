// Package disasm formats CHIP-8 instructions as assembly and produces
// listings of whole programs.
package disasm

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrochip8/internal/instruction"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Name returns the lower case mnemonic of the instruction as defined by the
// CHIP-8 opcode table, for example "ld" or "drw". Words that match no opcode
// return an empty string.
func Name(ins instruction.Instruction) string {
	if ins.Kind == instruction.Invalid {
		return ""
	}

	opcodes := chip8.Opcodes[int(ins.Type)]
	for _, op := range opcodes {
		if op.Info.Mask&ins.Word == op.Info.Value && op.Instruction != nil {
			return op.Instruction.Name
		}
	}

	// the opcode table does not carry every form, for example SYS
	name, _, _ := strings.Cut(ins.Kind.String(), " ")
	return strings.ToLower(name)
}

// Format returns the assembly representation of the instruction, for example
// "drw V2, V3, $5". Invalid words are formatted as a data word.
func Format(ins instruction.Instruction) string {
	name := Name(ins)
	if name == "" {
		return fmt.Sprintf(".word $%04X", ins.Word)
	}
	if params := formatParams(ins); params != "" {
		return name + " " + params
	}
	return name
}

// formatParams returns the formatted parameter string for the instruction.
func formatParams(ins instruction.Instruction) string {
	switch ins.Kind {
	case instruction.Sys, instruction.Jp, instruction.Call:
		return fmt.Sprintf("$%03X", ins.NNN)
	case instruction.JpV0:
		return fmt.Sprintf("V0, $%03X", ins.NNN)
	case instruction.SeByte, instruction.SneByte, instruction.LdByte,
		instruction.AddByte, instruction.Rnd:
		return fmt.Sprintf("V%X, $%02X", ins.X, ins.KK)
	case instruction.SeReg, instruction.SneReg, instruction.LdReg,
		instruction.Or, instruction.And, instruction.Xor,
		instruction.AddReg, instruction.Sub, instruction.Subn:
		return fmt.Sprintf("V%X, V%X", ins.X, ins.Y)
	case instruction.Shr, instruction.Shl, instruction.Skp, instruction.Sknp:
		return fmt.Sprintf("V%X", ins.X)
	case instruction.LdI:
		return fmt.Sprintf("I, $%03X", ins.NNN)
	case instruction.Drw:
		return fmt.Sprintf("V%X, V%X, $%X", ins.X, ins.Y, ins.N)
	case instruction.LdVxDT:
		return fmt.Sprintf("V%X, DT", ins.X)
	case instruction.LdVxK:
		return fmt.Sprintf("V%X, K", ins.X)
	case instruction.LdDTVx:
		return fmt.Sprintf("DT, V%X", ins.X)
	case instruction.LdSTVx:
		return fmt.Sprintf("ST, V%X", ins.X)
	case instruction.AddI:
		return fmt.Sprintf("I, V%X", ins.X)
	case instruction.LdF:
		return fmt.Sprintf("F, V%X", ins.X)
	case instruction.LdB:
		return fmt.Sprintf("B, V%X", ins.X)
	case instruction.LdIVx:
		return fmt.Sprintf("[I], V%X", ins.X)
	case instruction.LdVxI:
		return fmt.Sprintf("V%X, [I]", ins.X)
	default:
		return ""
	}
}
