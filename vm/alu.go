// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"fmt"
	"iter"
	"math/bits"
)

// AluMode selects the ALU operation.
type AluMode int

//go:generate go tool stringer -linecomment -type=AluMode
const (
	ALU_MODE_ADD = AluMode(0)  // add
	ALU_MODE_SUB = AluMode(1)  // sub
	ALU_MODE_NEG = AluMode(2)  // neg
	ALU_MODE_AND = AluMode(3)  // and
	ALU_MODE_OR  = AluMode(4)  // or
	ALU_MODE_XOR = AluMode(5)  // xor
	ALU_MODE_NOT = AluMode(6)  // not
	ALU_MODE_SHL = AluMode(7)  // shl
	ALU_MODE_ROL = AluMode(8)  // rol
	ALU_MODE_SHR = AluMode(9)  // shr
	ALU_MODE_SAR = AluMode(10) // sar
	ALU_MODE_ROR = AluMode(11) // ror
)

const (
	ALU_MODE_COUNT = 12 // Number of defined modes.
	ALU_MODE_BITS  = 4  // Width of the mode selector.
	ALU_MODE_MASK  = AluMode(1<<ALU_MODE_BITS - 1)
)

// Flag names registered by the ALU.
const (
	FLAG_OVERFLOW = "overflow/carry"
	FLAG_ZERO     = "Zero"
)

// ALU is a combinational unit computing out = left <mode> right.
//
// The "ALU Output" command enables the output for the rest of the cycle;
// while enabled, any write to the left or right bus recomputes the output
// before the write returns. The end of every cycle disables the output and
// resets the mode to add.
type ALU struct {
	Component

	left  *Bus
	right *Bus
	out   *Bus
	flags *Flags

	overflowFlag int
	zeroFlag     int

	mode        AluMode
	writeEnable bool
}

var _ Part = (*ALU)(nil)

// NewALU creates an ALU reading left and right, and driving out.
func NewALU(m *Machine, left, right, out *Bus) (alu *ALU) {
	alu = &ALU{
		left:  left,
		right: right,
		out:   out,
		flags: m.Flags(),
	}
	m.attach(alu, "ALU", TYPE_ALU)

	alu.AddCommand(&Command{
		Name:    "ALU Output",
		Depends: []Part{left, right, alu},
		Changes: []Part{out, alu.flags},
		action:  alu.SetWriteEnable,
	})

	for mode := range AluMode(ALU_MODE_COUNT) {
		alu.AddCommand(&Command{
			Name:    fmt.Sprintf("ALU %v", mode),
			Changes: []Part{alu},
			action:  func() { alu.SetMode(mode) },
		})
	}

	for bit := range ALU_MODE_BITS {
		alu.AddCommand(&Command{
			Name:    fmt.Sprintf("ALU Mode bit %d", bit),
			Changes: []Part{alu},
			action:  func() { alu.SetMode(alu.mode ^ (1 << bit)) },
		})
	}

	left.hook(alu.settle)
	right.hook(alu.settle)

	m.Clock().AtEnd().Add(func() {
		alu.writeEnable = false
		alu.mode = ALU_MODE_ADD
	})

	alu.overflowFlag = alu.flags.Add(FLAG_OVERFLOW, false)
	alu.zeroFlag = alu.flags.Add(FLAG_ZERO, false)

	return
}

// Mode returns the selected operation.
func (alu *ALU) Mode() AluMode {
	return alu.mode
}

// SetMode selects the operation.
func (alu *ALU) SetMode(mode AluMode) {
	alu.mode = mode & ALU_MODE_MASK
	alu.changed()
}

// WriteEnable returns true if the output is enabled.
func (alu *ALU) WriteEnable() bool {
	return alu.writeEnable
}

// SetWriteEnable enables the output and drives the current result.
func (alu *ALU) SetWriteEnable() {
	alu.writeEnable = true
	alu.Update()
}

// OverflowFlag returns the index of the overflow/carry flag.
func (alu *ALU) OverflowFlag() int {
	return alu.overflowFlag
}

// ZeroFlag returns the index of the zero flag.
func (alu *ALU) ZeroFlag() int {
	return alu.zeroFlag
}

func (alu *ALU) settle(_ uint16) {
	if alu.writeEnable {
		alu.Update()
	}
}

// Update computes the result of the selected operation, drives the output bus
// and updates the flags. Unknown modes leave all state unchanged.
func (alu *ALU) Update() {
	left := alu.left.Read()
	right := alu.right.Read()

	result, overflow, ok := Compute(alu.mode, left, right)
	if !ok {
		alu.logWarn(f("ALU mode %v unsupported", alu.mode))
		return
	}

	alu.out.Write(result)
	alu.flags.Update(alu.overflowFlag, overflow)
	alu.flags.Update(alu.zeroFlag, result == 0)
}

// Compute returns the 16-bit result of left <mode> right.
//
// Shift distances are taken from right. overflow is true when the untruncated
// result of an add or sub does not fit in 16 bits; other modes never
// overflow.
func Compute(mode AluMode, left, right uint16) (result uint16, overflow bool, ok bool) {
	ok = true

	switch mode {
	case ALU_MODE_ADD:
		sum := uint32(left) + uint32(right)
		result = uint16(sum)
		overflow = sum != uint32(result)
	case ALU_MODE_SUB:
		diff := int32(left) - int32(right)
		result = uint16(diff)
		overflow = diff != int32(result)
	case ALU_MODE_NEG:
		result = -left
	case ALU_MODE_AND:
		result = left & right
	case ALU_MODE_OR:
		result = left | right
	case ALU_MODE_XOR:
		result = left ^ right
	case ALU_MODE_NOT:
		result = ^left
	case ALU_MODE_SHL:
		result = left << right
	case ALU_MODE_ROL:
		result = bits.RotateLeft16(left, int(right))
	case ALU_MODE_SHR:
		result = left >> right
	case ALU_MODE_SAR:
		result = uint16(int16(left) >> right)
	case ALU_MODE_ROR:
		result = bits.RotateLeft16(left, -int(right))
	default:
		ok = false
	}

	return
}

func (alu *ALU) Values() iter.Seq2[string, uint16] {
	return func(yield func(string, uint16) bool) {
		var enable uint16
		if alu.writeEnable {
			enable = 1
		}
		_ = yield("Mode", uint16(alu.mode)) &&
			yield("WriteEnable", enable)
	}
}
