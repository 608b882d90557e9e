package cpu

import "fmt"

var rotateNames = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}

// CB-prefixed opcodes are laid out as
//
//	00 000 000
//	^^ ^^^ ^^^
//	op bit reg
//
// where op selects rotate/shift, BIT, RES or SET, bit selects either
// the bit index or the rotate/shift variant, and reg the operand.
func init() {
	for i := uint8(0); i < 8; i++ {
		for j := uint8(0); j < 8; j++ {
			n, r := i, j
			reg := registerNames[r]

			DefineInstructionCB(n<<3|r, rotateNames[n]+" "+reg, func(c *CPU) uint8 {
				c.setRegister(r, c.rotate(n, c.register(r)))
				return cost(r, 8, 8)
			})
			DefineInstructionCB(0x40|n<<3|r, fmt.Sprintf("BIT %d, %s", n, reg), func(c *CPU) uint8 {
				c.testBit(c.register(r), n)
				return cost(r, 8, 4)
			})
			DefineInstructionCB(0x80|n<<3|r, fmt.Sprintf("RES %d, %s", n, reg), func(c *CPU) uint8 {
				c.setRegister(r, c.register(r)&^(1<<n))
				return cost(r, 8, 8)
			})
			DefineInstructionCB(0xC0|n<<3|r, fmt.Sprintf("SET %d, %s", n, reg), func(c *CPU) uint8 {
				c.setRegister(r, c.register(r)|1<<n)
				return cost(r, 8, 8)
			})
		}
	}
}
