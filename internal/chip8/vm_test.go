package chip8

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadResetsAndCopiesROM(t *testing.T) {
	rom := []byte{0x60, 0xFF, 0x61, 0x02}
	vm := New(nil)

	require.NoError(t, vm.Load(rom))

	assert.Equal(t, uint16(startAddr), vm.PC())
	assert.Equal(t, uint16(0), vm.SP())
	assert.Equal(t, [numRegisters]byte{}, vm.Registers())
	assert.Equal(t, [videoSize]byte{}, vm.Framebuffer())
	for i, b := range rom {
		assert.Equal(t, b, vm.memory[startAddr+i])
	}
}

func TestLoadRomTooLarge(t *testing.T) {
	vm := New(nil)
	rom := make([]byte, maxRomBytes+1)

	err := vm.Load(rom)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRomTooLarge)
}

func TestFontSetSurvivesReset(t *testing.T) {
	vm := New(nil)
	require.NoError(t, vm.Load([]byte{0x00, 0xE0}))

	vm.Reset()
	vm.Reset()

	for i, b := range fontSet {
		assert.Equal(t, b, vm.memory[fontBase+i])
	}
}

func TestCycleLoadAndInspect(t *testing.T) {
	vm := New(nil)
	require.NoError(t, vm.Load([]byte{0x60, 0xFF}))

	require.NoError(t, vm.Cycle())

	assert.Equal(t, byte(0xFF), vm.Registers()[0])
	assert.Equal(t, uint16(0x202), vm.PC())
}

func TestHaltStopsExecution(t *testing.T) {
	// LD V0, 0x22 ; HALT ; HALT ; LD V0, 0x33 (never reached)
	rom := []byte{0x60, 0x22, 0xFF, 0xFF, 0x60, 0x33}
	vm := New(nil)
	require.NoError(t, vm.Load(rom))

	runToHalt(t, vm)

	assert.Equal(t, byte(0x22), vm.Registers()[0])
	assert.True(t, vm.Halted())
}

func TestCallAndReturn(t *testing.T) {
	// 0x200 CALL 0x206
	// 0x202 LD V0, 0xAA
	// 0x204 HALT
	// 0x206 LD V0, 0x55
	// 0x208 RET
	rom := []byte{
		0x22, 0x06,
		0x60, 0xAA,
		0xFF, 0xFF,
		0x60, 0x55,
		0x00, 0xEE,
	}
	vm := New(nil)
	require.NoError(t, vm.Load(rom))

	runToHalt(t, vm)

	assert.Equal(t, uint16(0), vm.SP())
	assert.Equal(t, byte(0xAA), vm.Registers()[0])
}

func TestSpriteDrawAndCollision(t *testing.T) {
	// A300 D005 D005 FFFF, with the "0" glyph preloaded at 0x300.
	rom := []byte{0xA3, 0x00, 0xD0, 0x05, 0xD0, 0x05, 0xFF, 0xFF}
	vm := New(nil)
	require.NoError(t, vm.Load(rom))
	copy(vm.memory[0x300:], fontSet[0:5])

	require.NoError(t, vm.Cycle()) // A300
	require.NoError(t, vm.Cycle()) // first DRW
	assert.Equal(t, byte(0), vm.Registers()[flagRegister])

	require.NoError(t, vm.Cycle()) // second DRW
	assert.Equal(t, byte(1), vm.Registers()[flagRegister])

	require.NoError(t, vm.Cycle()) // HALT
	assert.True(t, vm.Halted())
	assert.Equal(t, [videoSize]byte{}, vm.Framebuffer())
}

func TestBCDConversion(t *testing.T) {
	// LD V0, 123 ; LD I, 0x300 ; LD B, V0 ; HALT
	rom := []byte{0x60, 0x7B, 0xA3, 0x00, 0xF0, 0x33, 0xFF, 0xFF}
	vm := New(nil)
	require.NoError(t, vm.Load(rom))

	runToHalt(t, vm)

	assert.Equal(t, []byte{1, 2, 3}, vm.memory[0x300:0x303])
}

func TestAddOverflowSetsFlag(t *testing.T) {
	vm := New(nil)
	require.NoError(t, vm.Load(nil))
	vm.v[0] = 0xFF
	vm.v[1] = 0x01

	require.NoError(t, op8xy4(vm, 0x8014))

	assert.Equal(t, byte(0x00), vm.v[0])
	assert.Equal(t, byte(1), vm.v[flagRegister])
}

func TestSubBorrowClearsFlag(t *testing.T) {
	vm := New(nil)
	require.NoError(t, vm.Load(nil))
	vm.v[0] = 0x00
	vm.v[1] = 0x01

	require.NoError(t, op8xy5(vm, 0x8015))

	assert.Equal(t, byte(0xFF), vm.v[0])
	assert.Equal(t, byte(0), vm.v[flagRegister])
}

func TestShrShiftsInPlace(t *testing.T) {
	vm := New(nil)
	require.NoError(t, vm.Load(nil))
	vm.v[0] = 0x03

	require.NoError(t, op8xy6(vm, 0x8006))

	assert.Equal(t, byte(0x01), vm.v[0])
	assert.Equal(t, byte(1), vm.v[flagRegister])
}

func TestShlShiftsInPlace(t *testing.T) {
	vm := New(nil)
	require.NoError(t, vm.Load(nil))
	vm.v[0] = 0x81

	require.NoError(t, op8xyE(vm, 0x800E))

	assert.Equal(t, byte(0x02), vm.v[0])
	assert.Equal(t, byte(1), vm.v[flagRegister])
}

func TestStackOverflowAndUnderflow(t *testing.T) {
	vm := New(nil)
	require.NoError(t, vm.Load(nil))

	for i := 0; i < stackDepth; i++ {
		require.NoError(t, op2nnn(vm, 0x2300))
	}
	err := op2nnn(vm, 0x2300)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStackOverflow)

	for i := 0; i < stackDepth; i++ {
		require.NoError(t, op00EE(vm, 0x00EE))
	}
	err = op00EE(vm, 0x00EE)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStackUnderflow)
}

func TestWaitForKeyRewindsUntilPressed(t *testing.T) {
	// LD V0, K
	vm := New(nil)
	require.NoError(t, vm.Load([]byte{0xF0, 0x0A}))

	require.NoError(t, vm.Cycle())
	assert.Equal(t, WaitingForKey, vm.State())
	assert.Equal(t, uint16(startAddr), vm.PC())

	vm.UpdateTimers() // timers still tick while waiting
	vm.Keypad()[5] = 1

	require.NoError(t, vm.Cycle())
	assert.Equal(t, Running, vm.State())
	assert.Equal(t, byte(5), vm.Registers()[0])
	assert.Equal(t, uint16(startAddr+2), vm.PC())
}

func TestUnknownOpcodeIsFatal(t *testing.T) {
	vm := New(nil)
	require.NoError(t, vm.Load([]byte{0x00, 0x01}))

	err := vm.Cycle()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownOpcode)
}

func TestRndMasksInjectedByte(t *testing.T) {
	vm := New(FixedRandomizer(0xFF))
	require.NoError(t, vm.Load(nil))

	require.NoError(t, opCxkk(vm, 0xC00F))

	assert.Equal(t, byte(0x0F), vm.v[0])
}

func runToHalt(t *testing.T, vm *VM) {
	t.Helper()
	for i := 0; i < 1000 && !vm.Halted(); i++ {
		require.NoError(t, vm.Cycle())
	}
	require.True(t, vm.Halted(), "program did not halt within 1000 cycles")
}
