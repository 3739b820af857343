package machine

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/instruction"
	"github.com/retroenv/retrogolib/log"
)

// Step executes a single instruction. While the machine awaits a key press
// it only checks the keypad and returns without fetching.
// Instruction failures are returned as *ExecError.
func (m *Machine) Step() error {
	if m.wait != nil {
		m.pollKeyWait()
		return nil
	}

	pc := m.pc
	word, err := m.mem.ReadChunk(pc, instruction.Size)
	if err != nil {
		return fmt.Errorf("fetching instruction at $%04X: %w", pc, err)
	}
	ins := instruction.FromBytes(word[0], word[1])
	m.pc += instruction.Size
	m.cycles++

	if m.opts.Trace && m.logger != nil {
		m.logger.Debug("Executing instruction",
			log.Hex("pc", pc),
			log.Hex("opcode", ins.Word),
			log.String("instruction", disasm.Format(ins)))
	}

	if err := executors[ins.Kind](m, ins); err != nil {
		return &ExecError{
			PC:          pc,
			Instruction: ins,
			Err:         err,
		}
	}
	return nil
}

// pollKeyWait completes a pending Fx0A instruction once a key went from
// released to pressed, even if it was released again before this step.
// The lowest key index wins.
func (m *Machine) pollKeyWait() {
	for key := range NumKeys {
		if !m.wait.pressed[key] {
			continue
		}

		m.v[m.wait.register] = byte(key)
		m.wait = nil
		if m.opts.Trace && m.logger != nil {
			m.logger.Debug("Key press received", log.Int("key", key))
		}
		return
	}
}

// TimerTick decrements the delay and sound timers toward zero. The host calls
// it at 60 Hz independent of the instruction rate.
func (m *Machine) TimerTick() {
	if m.dt > 0 {
		m.dt--
	}
	if m.st > 0 {
		m.st--
	}
}
