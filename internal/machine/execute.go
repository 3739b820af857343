package machine

import (
	"github.com/retroenv/retrochip8/internal/instruction"
	"github.com/retroenv/retrochip8/internal/memory"
)

type executor func(m *Machine, ins instruction.Instruction) error

// executors maps every instruction kind to its implementation.
var executors = [instruction.KindCount]executor{
	instruction.Invalid: invalid,
	instruction.Cls:     cls,
	instruction.Ret:     ret,
	instruction.Sys:     sys,
	instruction.Jp:      jp,
	instruction.Call:    call,
	instruction.SeByte:  seByte,
	instruction.SneByte: sneByte,
	instruction.SeReg:   seReg,
	instruction.LdByte:  ldByte,
	instruction.AddByte: addByte,
	instruction.LdReg:   ldReg,
	instruction.Or:      or,
	instruction.And:     and,
	instruction.Xor:     xor,
	instruction.AddReg:  addReg,
	instruction.Sub:     sub,
	instruction.Shr:     shr,
	instruction.Subn:    subn,
	instruction.Shl:     shl,
	instruction.SneReg:  sneReg,
	instruction.LdI:     ldI,
	instruction.JpV0:    jpV0,
	instruction.Rnd:     rnd,
	instruction.Drw:     drw,
	instruction.Skp:     skp,
	instruction.Sknp:    sknp,
	instruction.LdVxDT:  ldVxDT,
	instruction.LdVxK:   ldVxK,
	instruction.LdDTVx:  ldDTVx,
	instruction.LdSTVx:  ldSTVx,
	instruction.AddI:    addI,
	instruction.LdF:     ldF,
	instruction.LdB:     ldB,
	instruction.LdIVx:   ldIVx,
	instruction.LdVxI:   ldVxI,
}

func invalid(*Machine, instruction.Instruction) error {
	return ErrInvalidOpcode
}

// cls clears the display.
func cls(m *Machine, _ instruction.Instruction) error {
	m.fb.Clear()
	return nil
}

// ret returns from a subroutine.
func ret(m *Machine, _ instruction.Instruction) error {
	if len(m.stack) == 0 {
		return ErrStackUnderflow
	}
	m.pc = m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return nil
}

// sys jumps to a native machine code routine of the COSMAC VIP.
func sys(*Machine, instruction.Instruction) error {
	return ErrUnsupportedLegacyOp
}

func jp(m *Machine, ins instruction.Instruction) error {
	m.pc = ins.NNN
	return nil
}

// call pushes the address of the next instruction and jumps to the subroutine.
func call(m *Machine, ins instruction.Instruction) error {
	if len(m.stack) >= m.opts.StackDepth {
		return ErrStackOverflow
	}
	m.stack = append(m.stack, m.pc)
	m.pc = ins.NNN
	return nil
}

func (m *Machine) skipIf(condition bool) {
	if condition {
		m.pc += instruction.Size
	}
}

func seByte(m *Machine, ins instruction.Instruction) error {
	m.skipIf(m.v[ins.X] == ins.KK)
	return nil
}

func sneByte(m *Machine, ins instruction.Instruction) error {
	m.skipIf(m.v[ins.X] != ins.KK)
	return nil
}

func seReg(m *Machine, ins instruction.Instruction) error {
	m.skipIf(m.v[ins.X] == m.v[ins.Y])
	return nil
}

func sneReg(m *Machine, ins instruction.Instruction) error {
	m.skipIf(m.v[ins.X] != m.v[ins.Y])
	return nil
}

func ldByte(m *Machine, ins instruction.Instruction) error {
	m.v[ins.X] = ins.KK
	return nil
}

// addByte adds without touching the carry flag.
func addByte(m *Machine, ins instruction.Instruction) error {
	m.v[ins.X] += ins.KK
	return nil
}

func ldReg(m *Machine, ins instruction.Instruction) error {
	m.v[ins.X] = m.v[ins.Y]
	return nil
}

func or(m *Machine, ins instruction.Instruction) error {
	m.v[ins.X] |= m.v[ins.Y]
	return nil
}

func and(m *Machine, ins instruction.Instruction) error {
	m.v[ins.X] &= m.v[ins.Y]
	return nil
}

func xor(m *Machine, ins instruction.Instruction) error {
	m.v[ins.X] ^= m.v[ins.Y]
	return nil
}

// setFlag writes VF. The addition writes it after the result, subtraction and
// shifts before it, which decides what VF holds when it is the destination.
func (m *Machine) setFlag(set bool) {
	if set {
		m.v[FlagRegister] = 1
	} else {
		m.v[FlagRegister] = 0
	}
}

func addReg(m *Machine, ins instruction.Instruction) error {
	sum := uint16(m.v[ins.X]) + uint16(m.v[ins.Y])
	m.v[ins.X] = byte(sum)
	m.setFlag(sum > 0xFF)
	return nil
}

func sub(m *Machine, ins instruction.Instruction) error {
	vx, vy := m.v[ins.X], m.v[ins.Y]
	m.setFlag(vx > vy)
	m.v[ins.X] = vx - vy
	return nil
}

func subn(m *Machine, ins instruction.Instruction) error {
	vx, vy := m.v[ins.X], m.v[ins.Y]
	m.setFlag(vy > vx)
	m.v[ins.X] = vy - vx
	return nil
}

// shiftSource returns the value to shift, which depends on the shift quirk.
func (m *Machine) shiftSource(ins instruction.Instruction) byte {
	if m.opts.Quirks.ShiftUsesVY {
		return m.v[ins.Y]
	}
	return m.v[ins.X]
}

func shr(m *Machine, ins instruction.Instruction) error {
	value := m.shiftSource(ins)
	m.setFlag(value&0x01 != 0)
	m.v[ins.X] = value >> 1
	return nil
}

func shl(m *Machine, ins instruction.Instruction) error {
	value := m.shiftSource(ins)
	m.setFlag(value&0x80 != 0)
	m.v[ins.X] = value << 1
	return nil
}

func ldI(m *Machine, ins instruction.Instruction) error {
	m.i = ins.NNN
	return nil
}

// jpV0 jumps to nnn plus V0, the target is kept inside the address space.
func jpV0(m *Machine, ins instruction.Instruction) error {
	m.pc = (ins.NNN + uint16(m.v[0])) & 0x0FFF
	return nil
}

func rnd(m *Machine, ins instruction.Instruction) error {
	m.v[ins.X] = m.random.Byte() & ins.KK
	return nil
}

// drw draws an n byte sprite from memory at I, VF reports a collision.
func drw(m *Machine, ins instruction.Instruction) error {
	sprite, err := m.mem.ReadChunk(m.i, int(ins.N))
	if err != nil {
		return err
	}
	collision := m.fb.DrawSprite(m.v[ins.X], m.v[ins.Y], sprite, m.opts.WrapSprites)
	m.setFlag(collision)
	return nil
}

func skp(m *Machine, ins instruction.Instruction) error {
	m.skipIf(m.keys[m.v[ins.X]&0x0F])
	return nil
}

func sknp(m *Machine, ins instruction.Instruction) error {
	m.skipIf(!m.keys[m.v[ins.X]&0x0F])
	return nil
}

func ldVxDT(m *Machine, ins instruction.Instruction) error {
	m.v[ins.X] = m.dt
	return nil
}

// ldVxK suspends the machine until a key is pressed. Keys that are already
// held down have to be released and pressed again.
func ldVxK(m *Machine, ins instruction.Instruction) error {
	wait := &keyWait{register: ins.X}
	for key, pressed := range m.keys {
		wait.released[key] = !pressed
	}
	m.wait = wait
	return nil
}

func ldDTVx(m *Machine, ins instruction.Instruction) error {
	m.dt = m.v[ins.X]
	return nil
}

func ldSTVx(m *Machine, ins instruction.Instruction) error {
	m.st = m.v[ins.X]
	return nil
}

func addI(m *Machine, ins instruction.Instruction) error {
	m.i += uint16(m.v[ins.X])
	return nil
}

func ldF(m *Machine, ins instruction.Instruction) error {
	m.i = memory.GlyphAddress(m.v[ins.X])
	return nil
}

// ldB stores the decimal digits of Vx at I, I+1 and I+2.
func ldB(m *Machine, ins instruction.Instruction) error {
	value := m.v[ins.X]
	digits := []byte{value / 100, value / 10 % 10, value % 10}
	return m.mem.WriteBlock(m.i, digits)
}

// ldIVx stores V0 through Vx in memory starting at I.
func ldIVx(m *Machine, ins instruction.Instruction) error {
	count := int(ins.X) + 1
	if err := m.mem.WriteBlock(m.i, m.v[:count]); err != nil {
		return err
	}
	if m.opts.Quirks.LoadStoreIncrementsI {
		m.i += uint16(count)
	}
	return nil
}

// ldVxI loads V0 through Vx from memory starting at I.
func ldVxI(m *Machine, ins instruction.Instruction) error {
	count := int(ins.X) + 1
	data, err := m.mem.ReadChunk(m.i, count)
	if err != nil {
		return err
	}
	copy(m.v[:count], data)
	if m.opts.Quirks.LoadStoreIncrementsI {
		m.i += uint16(count)
	}
	return nil
}
