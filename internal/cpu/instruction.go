package cpu

// Instruction is a single entry of an opcode table. The name doubles
// as the disassembly template: the operand placeholders d8, d16, a8,
// a16, r8 and e8 are substituted with the bytes that follow the opcode.
type Instruction struct {
	name   string
	length uint8
	// fn executes the instruction and returns its cost in
	// T-cycles. A nil fn marks an invalid opcode.
	fn func(*CPU) uint8
}

// Name returns the mnemonic of the instruction.
func (i Instruction) Name() string { return i.name }

// Length returns the number of bytes the instruction
// occupies, including the opcode.
func (i Instruction) Length() uint8 { return i.length }

// Valid reports whether the opcode has defined behaviour.
func (i Instruction) Valid() bool { return i.fn != nil }

var (
	// InstructionSet holds the primary opcode table.
	InstructionSet [256]Instruction
	// InstructionSetCB holds the opcodes following the 0xCB prefix.
	InstructionSetCB [256]Instruction
)

// DefineInstruction defines the instruction in the InstructionSet
// with the provided opcode.
func DefineInstruction(opcode uint8, name string, length uint8, fn func(*CPU) uint8) {
	InstructionSet[opcode] = Instruction{
		name:   name,
		length: length,
		fn:     fn,
	}
}

// DefineInstructionCB defines the instruction in the InstructionSetCB
// with the provided opcode.
func DefineInstructionCB(opcode uint8, name string, fn func(*CPU) uint8) {
	InstructionSetCB[opcode] = Instruction{
		name:   name,
		length: 2,
		fn:     fn,
	}
}

// InvalidOpcodes are the opcodes left undefined by the hardware,
// which lock up the CPU when executed.
var InvalidOpcodes = []uint8{
	0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD,
}

func init() {
	for _, opcode := range InvalidOpcodes {
		InstructionSet[opcode] = Instruction{name: "invalid", length: 1}
	}
}
