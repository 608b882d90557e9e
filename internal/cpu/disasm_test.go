package cpu

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type memory []uint8

func (m memory) Read(addr uint16) uint8 {
	if int(addr) >= len(m) {
		return 0
	}
	return m[addr]
}

func TestDisassemble(t *testing.T) {
	program := memory{
		0x00,             // NOP
		0x01, 0x34, 0x12, // LD BC, $1234
		0x3E, 0x42, // LD A, $42
		0x18, 0xFE, // JR $0006
		0xE0, 0x44, // LDH ($FF44), A
		0xF8, 0xFE, // LD HL, SP-2
		0xE8, 0x05, // ADD SP, 5
		0xCB, 0x7C, // BIT 7, H
		0xCD, 0x00, 0x40, // CALL $4000
		0xC2, 0x50, 0x01, // JP NZ, $0150
		0xDD, // invalid
		0x7E, // LD A, (HL)
	}
	want := []string{
		"NOP",
		"LD BC, $1234",
		"LD A, $42",
		"JR $0006",
		"LDH ($FF44), A",
		"LD HL, SP-2",
		"ADD SP, 5",
		"BIT 7, H",
		"CALL $4000",
		"JP NZ, $0150",
		"DB $DD",
		"LD A, (HL)",
	}

	var got []string
	for pc := uint16(0); int(pc) < len(program); {
		text, length := Disassemble(program, pc)
		got = append(got, text)
		pc += uint16(length)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Disassemble mismatch (-want +got):\n%s", diff)
	}
}

func TestDisassemble_Lengths(t *testing.T) {
	for opcode, instruction := range InstructionSet {
		if !instruction.Valid() {
			continue
		}
		_, length := Disassemble(memory{uint8(opcode)}, 0)
		if length != instruction.Length() {
			t.Errorf("0x%02X: expected length %d, got %d", opcode, instruction.Length(), length)
		}
	}
}
