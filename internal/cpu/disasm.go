package cpu

import (
	"fmt"
	"strings"
)

// Reader is the subset of Bus needed to disassemble memory.
type Reader interface {
	Read(addr uint16) uint8
}

// Disassemble returns the assembly text of the instruction at pc,
// along with its length in bytes. Invalid opcodes are rendered as
// a data byte.
func Disassemble(r Reader, pc uint16) (string, uint8) {
	opcode := r.Read(pc)
	instruction := InstructionSet[opcode]
	if !instruction.Valid() {
		return fmt.Sprintf("DB $%02X", opcode), 1
	}
	if opcode == 0xCB {
		return InstructionSetCB[r.Read(pc+1)].name, 2
	}

	name := instruction.name
	switch instruction.length {
	case 2:
		n := r.Read(pc + 1)
		switch {
		case strings.Contains(name, "r8"):
			name = strings.Replace(name, "r8", fmt.Sprintf("$%04X", pc+2+uint16(int8(n))), 1)
		case strings.Contains(name, "+e8"):
			name = strings.Replace(name, "+e8", fmt.Sprintf("%+d", int8(n)), 1)
		case strings.Contains(name, "e8"):
			name = strings.Replace(name, "e8", fmt.Sprintf("%d", int8(n)), 1)
		case strings.Contains(name, "a8"):
			name = strings.Replace(name, "a8", fmt.Sprintf("$FF%02X", n), 1)
		default:
			name = strings.Replace(name, "d8", fmt.Sprintf("$%02X", n), 1)
		}
	case 3:
		nn := uint16(r.Read(pc+2))<<8 | uint16(r.Read(pc+1))
		name = strings.NewReplacer("d16", fmt.Sprintf("$%04X", nn), "a16", fmt.Sprintf("$%04X", nn)).Replace(name)
	}
	return name, instruction.length
}
