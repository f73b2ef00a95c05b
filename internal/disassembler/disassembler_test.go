package disassembler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeCanonicalMnemonics(t *testing.T) {
	cases := []struct {
		opcode uint16
		want   string
	}{
		{0x00E0, "CLS"},
		{0x00EE, "RET"},
		{0x1210, "JP 0x210"},
		{0x2210, "CALL 0x210"},
		{0x3122, "SE V1, 0x22"},
		{0x4122, "SNE V1, 0x22"},
		{0x5120, "SE V1, V2"},
		{0x6122, "LD V1, 0x22"},
		{0x7122, "ADD V1, 0x22"},
		{0x8120, "LD V1, V2"},
		{0x8121, "OR V1, V2"},
		{0x8122, "AND V1, V2"},
		{0x8123, "XOR V1, V2"},
		{0x8124, "ADD V1, V2"},
		{0x8125, "SUB V1, V2"},
		{0x8106, "SHR V1"},
		{0x8127, "SUBN V1, V2"},
		{0x810E, "SHL V1"},
		{0x9120, "SNE V1, V2"},
		{0xA210, "LD I, 0x210"},
		{0xB210, "JP V0, 0x210"},
		{0xC10F, "RND V1, 0x0f"},
		{0xD125, "DRW V1, V2, 0x5"},
		{0xE19E, "SKP V1"},
		{0xE1A1, "SKNP V1"},
		{0xF307, "LD V3, DT"},
		{0xF30A, "LD V3, K"},
		{0xF315, "LD DT, V3"},
		{0xF318, "LD ST, V3"},
		{0xF31E, "ADD I, V3"},
		{0xF329, "LD F, V3"},
		{0xF333, "LD B, V3"},
		{0xF355, "LD [I], V3"},
		{0xF365, "LD V3, [I]"},
		{0xFFFF, "HALT"},
	}

	for _, tc := range cases {
		got := Decode(tc.opcode)
		assert.Equal(t, tc.want, got, "opcode 0x%04X", tc.opcode)
	}
}

func TestDecodeUnknownOpcode(t *testing.T) {
	assert.Equal(t, "??? (5001)", Decode(0x5001))
	assert.Equal(t, "??? (9001)", Decode(0x9001))
	assert.Equal(t, "??? (8008)", Decode(0x8008))
	assert.Equal(t, "??? (E000)", Decode(0xE000))
	assert.Equal(t, "??? (F000)", Decode(0xF000))
}

func TestRoundTripAssembledBytes(t *testing.T) {
	// 60 0A 61 05 12 00 -> LD V0,0x0a / LD V1,0x05 / JP 0x200
	rom := []byte{0x60, 0x0A, 0x61, 0x05, 0x12, 0x00}

	lines := Lines(rom, false)

	assert.Equal(t, []string{
		"LD V0, 0x0a",
		"LD V1, 0x05",
		"JP 0x200",
	}, lines)
}

func TestListingVerbosePrefixesAddressAndOpcode(t *testing.T) {
	rom := []byte{0x60, 0xFF}

	listing := Listing(rom, true)

	assert.Equal(t, "0200: 60ff  LD V0, 0xff\n", listing)
}

func TestWindowCentersOnProgramCounter(t *testing.T) {
	rom := []byte{0x60, 0x0A, 0x61, 0x05, 0x12, 0x00}

	assert.Equal(t, []string{"LD V0, 0x0a", "LD V1, 0x05"}, Window(rom, 0x200))
	assert.Equal(t, []string{"LD V0, 0x0a", "LD V1, 0x05", "JP 0x200"}, Window(rom, 0x202))
	assert.Equal(t, []string{"LD V1, 0x05", "JP 0x200"}, Window(rom, 0x204))
}
