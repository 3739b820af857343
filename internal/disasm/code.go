package disasm

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/retroenv/retrochip8/internal/instruction"
	"github.com/retroenv/retrochip8/internal/memory"
)

const (
	startLabel  = "Start"
	funcNaming  = "_func_%04x"
	labelNaming = "_label_%04x"
	dataNaming  = "_data_%04x"

	dataBytesPerLine = 8
)

// Options control the listing output.
type Options struct {
	HexComments    bool // output opcode bytes as hex values in comments
	OffsetComments bool // output addresses in comments
}

// offsetKind classifies a traced address.
type offsetKind uint8

const (
	callDestination offsetKind = iota + 1
	jumpDestination
	dataReference
)

// Disasm traces the control flow of a program starting at the program start
// address and separates code from data.
type Disasm struct {
	base    uint16
	data    []byte
	code    map[uint16]instruction.Instruction
	targets map[uint16]offsetKind
	labels  map[uint16]string
}

// New returns a disassembler for a program loaded at the program start address.
func New(program []byte) *Disasm {
	return &Disasm{
		base:    memory.ProgramStart,
		data:    program,
		code:    make(map[uint16]instruction.Instruction),
		targets: make(map[uint16]offsetKind),
		labels:  make(map[uint16]string),
	}
}

// Process traces the program and writes the listing to w.
func (dis *Disasm) Process(w io.Writer, opts Options) error {
	dis.trace()
	dis.processJumpDestinations()
	return dis.write(w, opts)
}

// Code returns the decoded instructions found by tracing, keyed by address.
func (dis *Disasm) Code() map[uint16]instruction.Instruction {
	return dis.code
}

func (dis *Disasm) inProgram(address uint16, size int) bool {
	return address >= dis.base && int(address-dis.base)+size <= len(dis.data)
}

// trace follows all reachable code paths and records the decoded instructions.
func (dis *Disasm) trace() {
	queue := []uint16{dis.base}
	visited := make(map[uint16]struct{})

	for len(queue) > 0 {
		address := queue[0]
		queue = queue[1:]

		if _, ok := visited[address]; ok || !dis.inProgram(address, instruction.Size) {
			continue
		}
		visited[address] = struct{}{}

		offset := address - dis.base
		ins := instruction.FromBytes(dis.data[offset], dis.data[offset+1])
		if !ins.IsValid() {
			continue // consider an unknown instruction as start of data
		}
		dis.code[address] = ins
		next := address + instruction.Size

		switch {
		case ins.Kind == instruction.Jp:
			dis.addTarget(ins.NNN, jumpDestination)
			queue = append(queue, ins.NNN)

		case ins.Kind == instruction.JpV0, ins.IsReturn():
			// target of a computed jump is unknown

		case ins.IsCall():
			dis.addTarget(ins.NNN, callDestination)
			queue = append(queue, ins.NNN, next)

		case ins.IsSkip():
			queue = append(queue, next, next+instruction.Size)

		case ins.IsDataReference():
			if dis.inProgram(ins.NNN, 1) {
				dis.addTarget(ins.NNN, dataReference)
			}
			queue = append(queue, next)

		default:
			queue = append(queue, next)
		}
	}
}

func (dis *Disasm) addTarget(address uint16, kind offsetKind) {
	// calls take precedence over jumps, code over data
	if existing, ok := dis.targets[address]; ok && existing <= kind {
		return
	}
	dis.targets[address] = kind
}

// processJumpDestinations generates the label names for all destinations.
func (dis *Disasm) processJumpDestinations() {
	dis.labels[dis.base] = startLabel

	for address, kind := range dis.targets {
		if address == dis.base {
			continue
		}
		switch kind {
		case callDestination:
			dis.labels[address] = fmt.Sprintf(funcNaming, address)
		case jumpDestination:
			dis.labels[address] = fmt.Sprintf(labelNaming, address)
		case dataReference:
			dis.labels[address] = fmt.Sprintf(dataNaming, address)
		}
	}
}

func (dis *Disasm) write(w io.Writer, opts Options) error {
	end := dis.base + uint16(len(dis.data))
	var pending []byte
	var pendingAddress uint16

	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		err := dis.writeData(w, pendingAddress, pending, opts)
		pending = pending[:0]
		return err
	}

	for address := dis.base; address < end; {
		label, hasLabel := dis.labels[address]
		ins, isCode := dis.code[address]
		// an instruction overlapping the next traced instruction is output as data
		if _, overlap := dis.code[address+1]; overlap {
			isCode = false
		}
		if _, split := dis.labels[address+1]; split {
			isCode = false
		}

		if hasLabel || isCode || len(pending) == dataBytesPerLine {
			if err := flush(); err != nil {
				return err
			}
		}
		if hasLabel {
			if _, err := fmt.Fprintf(w, "%s:\n", label); err != nil {
				return fmt.Errorf("writing label: %w", err)
			}
		}

		if isCode && dis.inProgram(address, instruction.Size) {
			if err := dis.writeInstruction(w, address, ins, opts); err != nil {
				return err
			}
			address += instruction.Size
			continue
		}

		if len(pending) == 0 {
			pendingAddress = address
		}
		pending = append(pending, dis.data[address-dis.base])
		address++
	}
	return flush()
}

func (dis *Disasm) writeInstruction(w io.Writer, address uint16, ins instruction.Instruction, opts Options) error {
	code := Format(ins)
	if label, ok := dis.labels[ins.NNN]; ok && (ins.Kind == instruction.Jp || ins.IsCall()) {
		code = Name(ins) + " " + label
	}

	offset := address - dis.base
	line := "  " + code + dis.comment(address, dis.data[offset:offset+instruction.Size], opts, len(code))
	if _, err := fmt.Fprintln(w, line); err != nil {
		return fmt.Errorf("writing instruction: %w", err)
	}
	return nil
}

func (dis *Disasm) writeData(w io.Writer, address uint16, data []byte, opts Options) error {
	values := make([]string, 0, len(data))
	for _, b := range data {
		values = append(values, fmt.Sprintf("$%02X", b))
	}
	code := ".byte " + strings.Join(values, ", ")

	line := "  " + code + dis.comment(address, nil, opts, len(code))
	if _, err := fmt.Fprintln(w, line); err != nil {
		return fmt.Errorf("writing data: %w", err)
	}
	return nil
}

func (dis *Disasm) comment(address uint16, opcode []byte, opts Options, codeLength int) string {
	var parts []string
	if opts.OffsetComments {
		parts = append(parts, fmt.Sprintf("$%04X", address))
	}
	if opts.HexComments && len(opcode) > 0 {
		parts = append(parts, fmt.Sprintf("% 02X", opcode))
	}
	if len(parts) == 0 {
		return ""
	}

	padding := max(1, 32-codeLength)
	return strings.Repeat(" ", padding) + "; " + strings.Join(parts, " ")
}

// Addresses returns the sorted addresses of all traced instructions.
func (dis *Disasm) Addresses() []uint16 {
	addresses := make([]uint16, 0, len(dis.code))
	for address := range dis.code {
		addresses = append(addresses, address)
	}
	slices.Sort(addresses)
	return addresses
}
