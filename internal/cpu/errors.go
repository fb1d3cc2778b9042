package cpu

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/types"
)

var (
	// ErrUnknownInstruction is the cause of a termination on an
	// opcode without a table entry.
	ErrUnknownInstruction = errors.New("unknown instruction")
	// ErrUnimplemented is the cause of a termination on an opcode
	// that has a table entry but no execution path.
	ErrUnimplemented = errors.New("unimplemented instruction")
	// ErrUnexpectedBranch is the cause of a termination when an
	// instruction without a taken cost reports a taken branch.
	ErrUnexpectedBranch = errors.New("non-branching instruction took a branch")
)

// TerminatedError is returned once the CPU can no longer execute.
// It identifies the instruction that stopped it, for diagnosing
// which software exposed the gap.
type TerminatedError struct {
	Opcode   types.Byte
	Prefixed bool
	Address  types.Word
	Cycles   uint64
	Err      error
}

func (e *TerminatedError) Error() string {
	op := fmt.Sprintf("0x%02X", e.Opcode)
	if e.Prefixed {
		op = fmt.Sprintf("0xCB%02X", e.Opcode)
	}
	return fmt.Sprintf("cpu: %v %s in position 0x%04X after %d cycles", e.Err, op, e.Address, e.Cycles)
}

func (e *TerminatedError) Unwrap() error {
	return e.Err
}
