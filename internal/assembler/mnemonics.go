package assembler

import "strings"

// assembleMnemonic dispatches one instruction line (mnemonic plus its
// already comma-stripped operand tokens) to the opcode for that exact
// operand form. It is the single source of truth for the per-mnemonic
// operand-form table.
func assembleMnemonic(mnemonic string, operands []Token, labels LabelTable) (uint16, error) {
	switch strings.ToUpper(mnemonic) {
	case "CLS":
		return assembleNoOperand(operands, 0x00E0)
	case "RET":
		return assembleNoOperand(operands, 0x00EE)
	case "JP":
		return assembleJP(operands, labels)
	case "CALL":
		return assembleAddrOnly(operands, labels, 0x2000)
	case "SE":
		return assembleSEorSNE(operands, labels, 0x3000, 0x5000)
	case "SNE":
		return assembleSEorSNE(operands, labels, 0x4000, 0x9000)
	case "LD":
		return assembleLD(operands, labels)
	case "ADD":
		return assembleADD(operands)
	case "OR":
		return assembleVxVyWithN(operands, 0x8001)
	case "AND":
		return assembleVxVyWithN(operands, 0x8002)
	case "XOR":
		return assembleVxVyWithN(operands, 0x8003)
	case "SUB":
		return assembleVxVyWithN(operands, 0x8005)
	case "SUBN":
		return assembleVxVyWithN(operands, 0x8007)
	case "SHR":
		return assembleVxOnlyWithN(operands, 0x8006)
	case "SHL":
		return assembleVxOnlyWithN(operands, 0x800E)
	case "RND":
		return assembleVxKK(operands, 0xC000)
	case "SKP":
		return assembleVxOnlyWithN(operands, 0xE09E)
	case "SKNP":
		return assembleVxOnlyWithN(operands, 0xE0A1)
	case "DRW":
		return assembleDRW(operands)
	default:
		return 0, wrapInvalidInstruction(mnemonic)
	}
}

func assembleNoOperand(operands []Token, opcode uint16) (uint16, error) {
	if len(operands) != 0 {
		return 0, wrapInvalidInstruction(operandsText(operands))
	}
	return opcode, nil
}

func assembleJP(operands []Token, labels LabelTable) (uint16, error) {
	if len(operands) == 1 {
		addr, err := resolveAddr(operands[0], labels)
		if err != nil {
			return 0, err
		}
		return 0x1000 | addr, nil
	}
	if len(operands) == 2 && operands[0].Kind == Register && strings.EqualFold(operands[0].Text, "V0") {
		addr, err := resolveAddr(operands[1], labels)
		if err != nil {
			return 0, err
		}
		return 0xB000 | addr, nil
	}
	return 0, wrapInvalidInstruction("JP " + operandsText(operands))
}

func assembleAddrOnly(operands []Token, labels LabelTable, base uint16) (uint16, error) {
	if len(operands) != 1 {
		return 0, wrapInvalidInstruction(operandsText(operands))
	}
	addr, err := resolveAddr(operands[0], labels)
	if err != nil {
		return 0, err
	}
	return base | addr, nil
}

// assembleSEorSNE handles (Vx, kk) -> byteBase|x<<8|kk and (Vx, Vy) ->
// regBase|x<<8|y<<4, shared by SE/SNE.
func assembleSEorSNE(operands []Token, labels LabelTable, byteBase, regBase uint16) (uint16, error) {
	if len(operands) != 2 || operands[0].Kind != Register {
		return 0, wrapInvalidInstruction(operandsText(operands))
	}
	x, err := parseRegister(operands[0].Text)
	if err != nil {
		return 0, err
	}
	if operands[1].Kind == Register {
		y, err := parseRegister(operands[1].Text)
		if err != nil {
			return 0, err
		}
		return regBase | uint16(x)<<8 | uint16(y)<<4, nil
	}
	kk, err := parseByte(operands[1])
	if err != nil {
		return 0, err
	}
	return byteBase | uint16(x)<<8 | uint16(kk), nil
}

func assembleLD(operands []Token, labels LabelTable) (uint16, error) {
	if len(operands) != 2 {
		return 0, wrapInvalidInstruction(operandsText(operands))
	}
	dst, src := operands[0], operands[1]

	switch {
	case dst.Kind == Register && src.Kind == Immediate:
		x, err := parseRegister(dst.Text)
		if err != nil {
			return 0, err
		}
		kk, err := parseByte(src)
		if err != nil {
			return 0, err
		}
		return 0x6000 | uint16(x)<<8 | uint16(kk), nil

	case dst.Kind == Register && src.Kind == Register:
		x, err := parseRegister(dst.Text)
		if err != nil {
			return 0, err
		}
		y, err := parseRegister(src.Text)
		if err != nil {
			return 0, err
		}
		return 0x8000 | uint16(x)<<8 | uint16(y)<<4, nil

	case dst.Kind == SpecialRegister && strings.EqualFold(dst.Text, "I"):
		addr, err := resolveAddr(src, labels)
		if err != nil {
			return 0, err
		}
		return 0xA000 | addr, nil

	case dst.Kind == MemoryDereference && src.Kind == Register:
		x, err := parseRegister(src.Text)
		if err != nil {
			return 0, err
		}
		return 0xF055 | uint16(x)<<8, nil

	case dst.Kind == Register && src.Kind == MemoryDereference:
		x, err := parseRegister(dst.Text)
		if err != nil {
			return 0, err
		}
		return 0xF065 | uint16(x)<<8, nil

	case dst.Kind == Register && src.Kind == SpecialRegister && strings.EqualFold(src.Text, "DT"):
		x, err := parseRegister(dst.Text)
		if err != nil {
			return 0, err
		}
		return 0xF007 | uint16(x)<<8, nil

	case dst.Kind == SpecialRegister && strings.EqualFold(dst.Text, "DT") && src.Kind == Register:
		x, err := parseRegister(src.Text)
		if err != nil {
			return 0, err
		}
		return 0xF015 | uint16(x)<<8, nil

	case dst.Kind == SpecialRegister && strings.EqualFold(dst.Text, "ST") && src.Kind == Register:
		x, err := parseRegister(src.Text)
		if err != nil {
			return 0, err
		}
		return 0xF018 | uint16(x)<<8, nil

	case dst.Kind == SpecialMnemonic && strings.EqualFold(dst.Text, "F") && src.Kind == Register:
		x, err := parseRegister(src.Text)
		if err != nil {
			return 0, err
		}
		return 0xF029 | uint16(x)<<8, nil

	case dst.Kind == SpecialMnemonic && strings.EqualFold(dst.Text, "B") && src.Kind == Register:
		x, err := parseRegister(src.Text)
		if err != nil {
			return 0, err
		}
		return 0xF033 | uint16(x)<<8, nil

	case dst.Kind == Register && src.Kind == SpecialMnemonic && strings.EqualFold(src.Text, "K"):
		x, err := parseRegister(dst.Text)
		if err != nil {
			return 0, err
		}
		return 0xF00A | uint16(x)<<8, nil

	default:
		return 0, wrapInvalidInstruction("LD " + operandsText(operands))
	}
}

func assembleADD(operands []Token) (uint16, error) {
	if len(operands) != 2 {
		return 0, wrapInvalidInstruction(operandsText(operands))
	}
	dst, src := operands[0], operands[1]

	switch {
	case dst.Kind == Register && src.Kind == Immediate:
		x, err := parseRegister(dst.Text)
		if err != nil {
			return 0, err
		}
		kk, err := parseByte(src)
		if err != nil {
			return 0, err
		}
		return 0x7000 | uint16(x)<<8 | uint16(kk), nil

	case dst.Kind == Register && src.Kind == Register:
		x, err := parseRegister(dst.Text)
		if err != nil {
			return 0, err
		}
		y, err := parseRegister(src.Text)
		if err != nil {
			return 0, err
		}
		return 0x8004 | uint16(x)<<8 | uint16(y)<<4, nil

	case dst.Kind == SpecialRegister && strings.EqualFold(dst.Text, "I") && src.Kind == Register:
		x, err := parseRegister(src.Text)
		if err != nil {
			return 0, err
		}
		return 0xF01E | uint16(x)<<8, nil

	default:
		return 0, wrapInvalidInstruction("ADD " + operandsText(operands))
	}
}

func assembleVxVyWithN(operands []Token, opcode uint16) (uint16, error) {
	if len(operands) != 2 || operands[0].Kind != Register || operands[1].Kind != Register {
		return 0, wrapInvalidInstruction(operandsText(operands))
	}
	x, err := parseRegister(operands[0].Text)
	if err != nil {
		return 0, err
	}
	y, err := parseRegister(operands[1].Text)
	if err != nil {
		return 0, err
	}
	return opcode | uint16(x)<<8 | uint16(y)<<4, nil
}

func assembleVxOnlyWithN(operands []Token, opcode uint16) (uint16, error) {
	if len(operands) != 1 || operands[0].Kind != Register {
		return 0, wrapInvalidInstruction(operandsText(operands))
	}
	x, err := parseRegister(operands[0].Text)
	if err != nil {
		return 0, err
	}
	return opcode | uint16(x)<<8, nil
}

func assembleVxKK(operands []Token, opcode uint16) (uint16, error) {
	if len(operands) != 2 || operands[0].Kind != Register {
		return 0, wrapInvalidInstruction(operandsText(operands))
	}
	x, err := parseRegister(operands[0].Text)
	if err != nil {
		return 0, err
	}
	kk, err := parseByte(operands[1])
	if err != nil {
		return 0, err
	}
	return opcode | uint16(x)<<8 | uint16(kk), nil
}

func assembleDRW(operands []Token) (uint16, error) {
	if len(operands) != 3 || operands[0].Kind != Register || operands[1].Kind != Register {
		return 0, wrapInvalidInstruction(operandsText(operands))
	}
	x, err := parseRegister(operands[0].Text)
	if err != nil {
		return 0, err
	}
	y, err := parseRegister(operands[1].Text)
	if err != nil {
		return 0, err
	}
	if operands[2].Kind != Immediate {
		return 0, wrapInvalidInstruction(operands[2].Text)
	}
	n, err := parseImmediate(operands[2].Text)
	if err != nil {
		return 0, err
	}
	if n > 0xF {
		return 0, wrapImmediateOutOfRange(operands[2].Text, 0xF)
	}
	return 0xD000 | uint16(x)<<8 | uint16(y)<<4 | n, nil
}

// parseByte parses an Immediate token and range-checks it to a single byte.
func parseByte(tok Token) (byte, error) {
	if tok.Kind != Immediate {
		return 0, wrapInvalidInstruction(tok.Text)
	}
	v, err := parseImmediate(tok.Text)
	if err != nil {
		return 0, err
	}
	if v > 0xFF {
		return 0, wrapImmediateOutOfRange(tok.Text, 0xFF)
	}
	return byte(v), nil
}

func operandsText(operands []Token) string {
	var b strings.Builder
	for i, t := range operands {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(t.Text)
	}
	return b.String()
}
