package disassembler

import (
	"fmt"
	"strings"
)

const loadBase = 0x200

// Lines walks rom two bytes at a time and returns one rendered instruction
// per element, in address order. When verbose is true each line is
// prefixed with "AAAA: XXXX  " (address and raw opcode, both hex).
func Lines(rom []byte, verbose bool) []string {
	var lines []string
	for i := 0; i+1 < len(rom); i += 2 {
		opcode := uint16(rom[i])<<8 | uint16(rom[i+1])
		if verbose {
			lines = append(lines, fmt.Sprintf("%04x: %04x  %s", loadBase+i, opcode, Decode(opcode)))
		} else {
			lines = append(lines, Decode(opcode))
		}
	}
	return lines
}

// Listing concatenates Lines into a single newline-terminated string, the
// form used by the ch8dis CLI tool.
func Listing(rom []byte, verbose bool) string {
	lines := Lines(rom, verbose)
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// Window returns up to three rendered instructions centered on pc: the
// instruction immediately before it, the instruction at pc, and the
// instruction immediately after, addressed as (pc-0x200)/2 into rom. Used
// by a debugger front-end to render a live instruction-stream view; lines
// outside rom's bounds are simply omitted rather than padded.
func Window(rom []byte, pc uint16) []string {
	lines := Lines(rom, false)
	center := int(pc-loadBase) / 2
	if center < 0 {
		center = 0
	}

	var out []string
	for _, idx := range []int{center - 1, center, center + 1} {
		if idx < 0 || idx >= len(lines) {
			continue
		}
		out = append(out, lines[idx])
	}
	return out
}
