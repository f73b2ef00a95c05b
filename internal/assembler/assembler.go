package assembler

import (
	"os"

	"github.com/pkg/errors"
)

const emitBase = 0x200

// LabelTable maps a label name to its 12-bit emit address, built by pass 1.
type LabelTable map[string]uint16

// Assembler performs the two-pass translation: pass 1
// computes label addresses and line sizes; pass 2 validates operand forms
// and emits opcodes/bytes.
type Assembler struct {
	lines  [][]Token
	labels LabelTable
	bytes  []byte
}

// FromString tokenizes source and runs both assembly passes.
func FromString(source string) (*Assembler, error) {
	tk := NewTokenizer(source)
	a := &Assembler{
		lines:  tk.Lines(),
		labels: LabelTable{},
	}
	if err := a.pass1(); err != nil {
		return nil, err
	}
	if err := a.pass2(); err != nil {
		return nil, err
	}
	return a, nil
}

// FromFile reads path and assembles its contents.
func FromFile(path string) (*Assembler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return FromString(string(data))
}

// GetBytes returns the assembled ROM bytes in load order.
func (a *Assembler) GetBytes() []byte {
	return a.bytes
}

// Labels returns the label table built by pass 1, keyed by label name.
func (a *Assembler) Labels() LabelTable {
	return a.labels
}

// WriteToFile writes the assembled bytes to path.
func (a *Assembler) WriteToFile(path string) error {
	if err := os.WriteFile(path, a.bytes, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}

// pass1 walks the token lines once, interning label addresses and
// advancing the emit cursor by each line's byte cost without validating
// operand forms.
func (a *Assembler) pass1() error {
	cursor := uint16(emitBase)

	for lineNum, tokens := range a.lines {
		rest, err := a.internLabel(tokens, cursor, lineNum+1)
		if err != nil {
			return err
		}
		if len(rest) == 0 {
			continue
		}
		if rest[0].Kind == ByteDirective {
			cursor += uint16(countImmediates(rest[1:]))
		} else {
			cursor += 2
		}
	}
	return nil
}

// pass2 re-walks the lines, this time validating and emitting.
func (a *Assembler) pass2() error {
	for lineNum, tokens := range a.lines {
		rest, err := a.skipLabel(tokens)
		if err != nil {
			return err
		}
		if len(rest) == 0 {
			continue
		}

		if rest[0].Kind == ByteDirective {
			values, err := a.emitByteDirective(rest[1:], lineNum+1)
			if err != nil {
				return err
			}
			a.bytes = append(a.bytes, values...)
			continue
		}

		if rest[0].Kind != Mnemonic {
			return newLineError(lineNum+1, ErrInvalidInstruction, operandsText(rest))
		}

		operands := filterCommas(rest[1:])
		opcode, err := assembleMnemonic(rest[0].Text, operands, a.labels)
		if err != nil {
			return newLineError(lineNum+1, errors.Cause(err), rest[0].Text+" "+operandsText(operands))
		}

		a.bytes = append(a.bytes, byte(opcode>>8), byte(opcode&0xFF))
	}
	return nil
}

// internLabel handles a leading LabelDef token during pass 1: it interns
// the label's address and returns the remaining tokens on the line.
func (a *Assembler) internLabel(tokens []Token, cursor uint16, lineNum int) ([]Token, error) {
	if len(tokens) == 0 || tokens[0].Kind != LabelDef {
		return tokens, nil
	}
	name := tokens[0].Text[:len(tokens[0].Text)-1]
	if _, exists := a.labels[name]; exists {
		return nil, newLineError(lineNum, wrapDuplicateLabel(name), name)
	}
	a.labels[name] = cursor
	return tokens[1:], nil
}

// skipLabel drops a leading LabelDef token during pass 2 (labels were
// already resolved in pass 1).
func (a *Assembler) skipLabel(tokens []Token) ([]Token, error) {
	if len(tokens) == 0 || tokens[0].Kind != LabelDef {
		return tokens, nil
	}
	return tokens[1:], nil
}

func (a *Assembler) emitByteDirective(operands []Token, lineNum int) ([]byte, error) {
	var out []byte
	for _, tok := range filterCommas(operands) {
		if tok.Kind != Immediate {
			return nil, newLineError(lineNum, ErrInvalidInstruction, tok.Text)
		}
		v, err := parseImmediate(tok.Text)
		if err != nil {
			return nil, newLineError(lineNum, ErrInvalidInstruction, tok.Text)
		}
		if v > 0xFF {
			return nil, newLineError(lineNum, wrapImmediateOutOfRange(tok.Text, 0xFF), tok.Text)
		}
		out = append(out, byte(v))
	}
	return out, nil
}

func countImmediates(tokens []Token) int {
	n := 0
	for _, t := range tokens {
		if t.Kind == Immediate {
			n++
		}
	}
	return n
}

func filterCommas(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind != Comma {
			out = append(out, t)
		}
	}
	return out
}
