package assembler

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel error kinds. Each assembly failure aborts the whole assembly; the
// CLI reports them as "error: <message>".
var (
	ErrDuplicateLabel       = errors.New("duplicate label")
	ErrUnknownLabel         = errors.New("unknown label")
	ErrInvalidRegister      = errors.New("invalid register")
	ErrImmediateOutOfRange  = errors.New("immediate out of range")
	ErrInvalidInstruction   = errors.New("invalid instruction")
)

// lineError wraps a sentinel with the 1-based source line and offending
// text so CLI output and tests can localize the failure.
type lineError struct {
	line  int
	text  string
	cause error
}

func (e *lineError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.line, e.cause, e.text)
}

func (e *lineError) Unwrap() error { return e.cause }

func newLineError(line int, cause error, text string) error {
	return &lineError{line: line, text: text, cause: cause}
}

func wrapInvalidRegister(text string) error {
	return errors.Wrapf(ErrInvalidRegister, "%q", text)
}

func wrapUnknownLabel(text string) error {
	return errors.Wrapf(ErrUnknownLabel, "%q", text)
}

func wrapImmediateOutOfRange(text string, max uint16) error {
	return errors.Wrapf(ErrImmediateOutOfRange, "%q exceeds max 0x%X", text, max)
}

func wrapInvalidInstruction(text string) error {
	return errors.Wrapf(ErrInvalidInstruction, "%q", text)
}

func wrapDuplicateLabel(name string) error {
	return errors.Wrapf(ErrDuplicateLabel, "%q", name)
}
