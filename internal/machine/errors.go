package machine

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrochip8/internal/instruction"
)

var (
	// ErrStackUnderflow is returned by RET when the call stack is empty.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrStackOverflow is returned by CALL when the call stack is at its depth limit.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrUnsupportedLegacyOp is returned for machine code calls (0nnn).
	ErrUnsupportedLegacyOp = errors.New("unsupported legacy machine code call")
	// ErrInvalidOpcode is returned for words that match no instruction.
	ErrInvalidOpcode = errors.New("invalid opcode")
	// ErrInvalidKey is returned for keypad indexes outside of 0-F.
	ErrInvalidKey = errors.New("invalid key index")
)

// ExecError is returned by Step when executing an instruction failed.
// The program counter of the machine already points past the instruction,
// so a host can choose to continue with the next one.
type ExecError struct {
	PC          uint16 // address of the failed instruction
	Instruction instruction.Instruction
	Err         error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("executing %s ($%04X) at $%04X: %v",
		e.Instruction.Kind, e.Instruction.Word, e.PC, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}
