package chip8

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel kinds from the error taxonomy. Callers compare against these with
// errors.Is; the VM wraps them with errors.Wrapf to attach the offending
// address/opcode before returning.
var (
	// ErrRomTooLarge is returned by Load when the ROM does not fit between
	// 0x200 and the end of memory.
	ErrRomTooLarge = errors.New("rom too large")

	// ErrStackOverflow is returned by CALL when the call stack is already
	// full (SP == 16).
	ErrStackOverflow = errors.New("stack overflow")

	// ErrStackUnderflow is returned by RET when the call stack is already
	// empty (SP == 0).
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrUnknownOpcode is returned when opcode dispatch finds no handler
	// for the fetched word.
	ErrUnknownOpcode = errors.New("unknown opcode")
)

// OpcodeError wraps ErrUnknownOpcode with the program counter the fetch
// already advanced past and the raw 16-bit word that could not be decoded.
type OpcodeError struct {
	PC     uint16
	Opcode uint16
	cause  error
}

func (e *OpcodeError) Error() string {
	return fmt.Sprintf("%s: opcode 0x%04X at pc 0x%04X", e.cause, e.Opcode, e.PC)
}

func (e *OpcodeError) Unwrap() error { return e.cause }

func newUnknownOpcodeErr(pc, opcode uint16) error {
	return &OpcodeError{PC: pc, Opcode: opcode, cause: ErrUnknownOpcode}
}
