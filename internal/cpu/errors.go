package cpu

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidOpcode is matched by every InvalidOpcodeError.
var ErrInvalidOpcode = errors.New("invalid opcode")

// InvalidOpcodeError is returned when the CPU fetches one of the
// opcodes that have no defined behaviour. The CPU freezes on the
// opcode, so ticking again reports the same error.
type InvalidOpcodeError struct {
	Opcode  uint8
	Address uint16
}

func (e *InvalidOpcodeError) Error() string {
	return fmt.Sprintf("invalid opcode 0x%02X at 0x%04X", e.Opcode, e.Address)
}

// Is reports whether target is ErrInvalidOpcode.
func (e *InvalidOpcodeError) Is(target error) bool {
	return target == ErrInvalidOpcode
}
