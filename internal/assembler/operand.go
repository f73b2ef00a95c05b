package assembler

import (
	"strconv"
	"strings"
)

// parseImmediate parses a decimal ("123") or hex ("0x7B"/"0X7b") lexeme
// into its numeric value. Values above 0xFFFF fail with
// ErrImmediateOutOfRange; range checking against the instruction's operand
// width happens at the call site.
func parseImmediate(text string) (uint16, error) {
	var v uint64
	var err error
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		v, err = strconv.ParseUint(text[2:], 16, 32)
	} else {
		v, err = strconv.ParseUint(text, 10, 32)
	}
	if err != nil {
		return 0, err
	}
	if v > 0xFFFF {
		return 0, wrapImmediateOutOfRange(text, 0xFFFF)
	}
	return uint16(v), nil
}

// parseRegister accepts V0..VF case-insensitively and returns the register
// index 0-15.
func parseRegister(text string) (byte, error) {
	if len(text) != 2 || (text[0] != 'V' && text[0] != 'v') {
		return 0, wrapInvalidRegister(text)
	}
	v, err := strconv.ParseUint(text[1:], 16, 8)
	if err != nil {
		return 0, wrapInvalidRegister(text)
	}
	return byte(v), nil
}

// resolveAddr resolves an Immediate or LabelRef token to a 12-bit address.
// Immediates are masked to 12 bits; LabelRef tokens are looked up in the
// first-pass label table and fail with ErrUnknownLabel if absent.
func resolveAddr(tok Token, labels LabelTable) (uint16, error) {
	switch tok.Kind {
	case Immediate:
		v, err := parseImmediate(tok.Text)
		if err != nil {
			return 0, err
		}
		return v & 0x0FFF, nil
	case LabelRef:
		addr, ok := labels[tok.Text]
		if !ok {
			return 0, wrapUnknownLabel(tok.Text)
		}
		return addr, nil
	default:
		return 0, wrapInvalidInstruction(tok.Text)
	}
}
