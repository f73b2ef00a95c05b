package chip8

import "github.com/pkg/errors"

// Operand extraction: x = bits 8-11, y = bits 4-7, n = bits 0-3, kk = bits
// 0-7, nnn = bits 0-11.

func opX(opcode uint16) byte     { return byte((opcode & 0x0F00) >> 8) }
func opY(opcode uint16) byte     { return byte((opcode & 0x00F0) >> 4) }
func opN(opcode uint16) byte     { return byte(opcode & 0x000F) }
func opKK(opcode uint16) byte    { return byte(opcode & 0x00FF) }
func opNNN(opcode uint16) uint16 { return opcode & 0x0FFF }

// 00E0 - CLS
func op00E0(vm *VM, _ uint16) error {
	vm.framebuffer = [videoSize]byte{}
	return nil
}

// 00EE - RET
func op00EE(vm *VM, _ uint16) error {
	if vm.sp == 0 {
		return errors.Wrapf(ErrStackUnderflow, "RET at pc 0x%04X", vm.pc)
	}
	vm.sp--
	vm.pc = vm.stack[vm.sp]
	return nil
}

// 1nnn - JP nnn
func op1nnn(vm *VM, opcode uint16) error {
	vm.pc = opNNN(opcode)
	return nil
}

// 2nnn - CALL nnn
func op2nnn(vm *VM, opcode uint16) error {
	if vm.sp >= stackDepth {
		return errors.Wrapf(ErrStackOverflow, "CALL at pc 0x%04X", vm.pc)
	}
	vm.stack[vm.sp] = vm.pc
	vm.sp++
	vm.pc = opNNN(opcode)
	return nil
}

// 3xkk - SE Vx, kk
func op3xkk(vm *VM, opcode uint16) error {
	if vm.v[opX(opcode)] == opKK(opcode) {
		vm.pc += 2
	}
	return nil
}

// 4xkk - SNE Vx, kk
func op4xkk(vm *VM, opcode uint16) error {
	if vm.v[opX(opcode)] != opKK(opcode) {
		vm.pc += 2
	}
	return nil
}

// 5xy0 - SE Vx, Vy
func op5xy0(vm *VM, opcode uint16) error {
	if vm.v[opX(opcode)] == vm.v[opY(opcode)] {
		vm.pc += 2
	}
	return nil
}

// 6xkk - LD Vx, kk
func op6xkk(vm *VM, opcode uint16) error {
	vm.v[opX(opcode)] = opKK(opcode)
	return nil
}

// 7xkk - ADD Vx, kk (VF unchanged)
func op7xkk(vm *VM, opcode uint16) error {
	vm.v[opX(opcode)] += opKK(opcode)
	return nil
}

// 8xy0 - LD Vx, Vy
func op8xy0(vm *VM, opcode uint16) error {
	vm.v[opX(opcode)] = vm.v[opY(opcode)]
	return nil
}

// 8xy1 - OR Vx, Vy (VF unchanged)
func op8xy1(vm *VM, opcode uint16) error {
	vm.v[opX(opcode)] |= vm.v[opY(opcode)]
	return nil
}

// 8xy2 - AND Vx, Vy (VF unchanged)
func op8xy2(vm *VM, opcode uint16) error {
	vm.v[opX(opcode)] &= vm.v[opY(opcode)]
	return nil
}

// 8xy3 - XOR Vx, Vy (VF unchanged)
func op8xy3(vm *VM, opcode uint16) error {
	vm.v[opX(opcode)] ^= vm.v[opY(opcode)]
	return nil
}

// 8xy4 - ADD Vx, Vy
func op8xy4(vm *VM, opcode uint16) error {
	x, y := opX(opcode), opY(opcode)
	sum := uint16(vm.v[x]) + uint16(vm.v[y])
	vm.v[x] = byte(sum)
	if sum > 0xFF {
		vm.v[flagRegister] = 1
	} else {
		vm.v[flagRegister] = 0
	}
	return nil
}

// 8xy5 - SUB Vx, Vy
func op8xy5(vm *VM, opcode uint16) error {
	x, y := opX(opcode), opY(opcode)
	borrow := vm.v[x] > vm.v[y]
	vm.v[x] = vm.v[x] - vm.v[y]
	if borrow {
		vm.v[flagRegister] = 1
	} else {
		vm.v[flagRegister] = 0
	}
	return nil
}

// 8xy6 - SHR Vx (CHIP-48/SUPER-CHIP in-place variant: shifts Vx, not Vy)
func op8xy6(vm *VM, opcode uint16) error {
	x := opX(opcode)
	lsb := vm.v[x] & 0x01
	vm.v[x] >>= 1
	vm.v[flagRegister] = lsb
	return nil
}

// 8xy7 - SUBN Vx, Vy
func op8xy7(vm *VM, opcode uint16) error {
	x, y := opX(opcode), opY(opcode)
	borrow := vm.v[y] > vm.v[x]
	vm.v[x] = vm.v[y] - vm.v[x]
	if borrow {
		vm.v[flagRegister] = 1
	} else {
		vm.v[flagRegister] = 0
	}
	return nil
}

// 8xyE - SHL Vx (in-place variant)
func op8xyE(vm *VM, opcode uint16) error {
	x := opX(opcode)
	msb := (vm.v[x] >> 7) & 0x01
	vm.v[x] <<= 1
	vm.v[flagRegister] = msb
	return nil
}

// 9xy0 - SNE Vx, Vy
func op9xy0(vm *VM, opcode uint16) error {
	if vm.v[opX(opcode)] != vm.v[opY(opcode)] {
		vm.pc += 2
	}
	return nil
}

// Annn - LD I, nnn
func opAnnn(vm *VM, opcode uint16) error {
	vm.i = opNNN(opcode)
	return nil
}

// Bnnn - JP V0, nnn
func opBnnn(vm *VM, opcode uint16) error {
	vm.pc = opNNN(opcode) + uint16(vm.v[0])
	return nil
}

// Cxkk - RND Vx, kk
func opCxkk(vm *VM, opcode uint16) error {
	vm.v[opX(opcode)] = vm.rng.Byte() & opKK(opcode)
	return nil
}

// Dxyn - DRW Vx, Vy, n. Sprite rows are read starting at I; drawing is a
// strict XOR and VF is set iff any previously-lit pixel was turned off.
// Both the starting coordinate and the sprite body wrap.
func opDxyn(vm *VM, opcode uint16) error {
	x, y, n := opX(opcode), opY(opcode), opN(opcode)
	if int(vm.i)+int(n) > memSize {
		return errors.Errorf("DRW reads past end of memory: I=0x%04X n=%d", vm.i, n)
	}

	sx := int(vm.v[x]) % videoWidth
	sy := int(vm.v[y]) % videoHeight
	vm.v[flagRegister] = 0

	for row := 0; row < int(n); row++ {
		spriteRow := vm.memory[int(vm.i)+row]
		for col := 0; col < 8; col++ {
			if spriteRow&(0x80>>uint(col)) == 0 {
				continue
			}
			px := (sx + col) % videoWidth
			py := (sy + row) % videoHeight
			idx := py*videoWidth + px
			if vm.framebuffer[idx] == 1 {
				vm.v[flagRegister] = 1
			}
			vm.framebuffer[idx] ^= 1
		}
	}
	return nil
}

// Ex9E - SKP Vx
func opEx9E(vm *VM, opcode uint16) error {
	if vm.keypad[vm.v[opX(opcode)]] != 0 {
		vm.pc += 2
	}
	return nil
}

// ExA1 - SKNP Vx
func opExA1(vm *VM, opcode uint16) error {
	if vm.keypad[vm.v[opX(opcode)]] == 0 {
		vm.pc += 2
	}
	return nil
}

// Fx07 - LD Vx, DT
func opFx07(vm *VM, opcode uint16) error {
	vm.v[opX(opcode)] = vm.delay
	return nil
}

// Fx0A - LD Vx, K. Implemented as PC-rewind rather than a blocking read so
// a single-threaded host loop keeps ticking timers while a key is awaited.
func opFx0A(vm *VM, opcode uint16) error {
	x := opX(opcode)
	for i := 0; i < numRegisters; i++ {
		if vm.keypad[i] != 0 {
			vm.v[x] = byte(i)
			vm.state = Running
			return nil
		}
	}
	vm.state = WaitingForKey
	vm.pc -= 2
	return nil
}

// Fx15 - LD DT, Vx
func opFx15(vm *VM, opcode uint16) error {
	vm.delay = vm.v[opX(opcode)]
	return nil
}

// Fx18 - LD ST, Vx
func opFx18(vm *VM, opcode uint16) error {
	vm.sound = vm.v[opX(opcode)]
	return nil
}

// Fx1E - ADD I, Vx. I wraps modulo 4096; VF is left untouched (classical
// CHIP-8 behavior).
func opFx1E(vm *VM, opcode uint16) error {
	vm.i = (vm.i + uint16(vm.v[opX(opcode)])) & 0x0FFF
	return nil
}

// Fx29 - LD F, Vx
func opFx29(vm *VM, opcode uint16) error {
	vm.i = fontBase + 5*uint16(vm.v[opX(opcode)])
	return nil
}

// Fx33 - LD B, Vx. Stores the binary-coded-decimal digits of Vx at I, I+1, I+2.
func opFx33(vm *VM, opcode uint16) error {
	if int(vm.i)+2 >= memSize {
		return errors.Errorf("LD B reads/writes past end of memory: I=0x%04X", vm.i)
	}
	value := vm.v[opX(opcode)]
	vm.memory[vm.i] = value / 100
	vm.memory[vm.i+1] = (value / 10) % 10
	vm.memory[vm.i+2] = value % 10
	return nil
}

// Fx55 - LD [I], Vx. I itself is left unchanged (CHIP-48 convention).
func opFx55(vm *VM, opcode uint16) error {
	x := opX(opcode)
	if int(vm.i)+int(x) >= memSize {
		return errors.Errorf("LD [I], Vx writes past end of memory: I=0x%04X x=%d", vm.i, x)
	}
	for idx := byte(0); idx <= x; idx++ {
		vm.memory[vm.i+uint16(idx)] = vm.v[idx]
	}
	return nil
}

// Fx65 - LD Vx, [I]. I itself is left unchanged.
func opFx65(vm *VM, opcode uint16) error {
	x := opX(opcode)
	if int(vm.i)+int(x) >= memSize {
		return errors.Errorf("LD Vx, [I] reads past end of memory: I=0x%04X x=%d", vm.i, x)
	}
	for idx := byte(0); idx <= x; idx++ {
		vm.v[idx] = vm.memory[vm.i+uint16(idx)]
	}
	return nil
}

// FxFF - HALT. Non-standard: a test-tooling sentinel that stops Cycle until
// Reset or Load. Shipped ROMs from the historical CHIP-8 corpus never emit
// this opcode.
func opFxFF(vm *VM, _ uint16) error {
	vm.state = Halted
	return nil
}
