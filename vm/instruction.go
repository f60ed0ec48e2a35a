package vm

import (
	"fmt"
	"iter"
	"slices"
)

// Instruction word layout: 7-bit opcode followed by three 3-bit arguments.
//
//	15      9 8   6 5   3 2   0
//	[ opcode ][arg0][arg1][arg2]
const (
	IR_ARGS        = 3
	IR_ARG_BITS    = 3
	IR_ARG_MASK    = 1<<IR_ARG_BITS - 1
	IR_OPCODE_BITS = 7
	IR_OPCODE_MASK = 1<<IR_OPCODE_BITS - 1
	IR_OPCODE_LSB  = IR_ARGS * IR_ARG_BITS
)

// InstructionRegister latches and decodes an instruction word.
type InstructionRegister struct {
	Component

	opcode uint16
	args   [IR_ARGS]uint16
}

var _ Part = (*InstructionRegister)(nil)

// NewInstructionRegister creates an instruction register loading from inst
// and asserting immediates onto data.
func NewInstructionRegister(m *Machine, inst *Bus, data *Bus) (ir *InstructionRegister) {
	ir = &InstructionRegister{}
	m.attach(ir, "Instruction Register", TYPE_INSTRUCTION_REGISTER)

	ir.AddCommand(&Command{
		Name:    "Instruction Register In",
		Depends: []Part{inst},
		Changes: []Part{ir},
		action:  func() { ir.Decode(inst.Read()) },
	})

	for n := range IR_ARGS {
		ir.AddCommand(&Command{
			Name:    fmt.Sprintf("Immediate %d", n),
			Depends: []Part{ir},
			Changes: []Part{data},
			action:  func() { data.Write(ir.args[n]) },
		})
	}

	ir.AddCommand(&Command{
		Name:    "Long Immediate",
		Depends: []Part{ir},
		Changes: []Part{data},
		action:  func() { data.Write(ir.LongImmediate()) },
	})

	return
}

// Decode latches word.
func (ir *InstructionRegister) Decode(word uint16) {
	ir.opcode = (word >> IR_OPCODE_LSB) & IR_OPCODE_MASK
	for n := range IR_ARGS {
		shift := (IR_ARGS - 1 - n) * IR_ARG_BITS
		ir.args[n] = (word >> shift) & IR_ARG_MASK
	}
	ir.changed()
}

// OpCode returns the decoded opcode.
func (ir *InstructionRegister) OpCode() uint16 {
	return ir.opcode
}

// Arg returns the decoded argument n.
func (ir *InstructionRegister) Arg(n int) uint16 {
	return ir.args[n]
}

// Args returns all decoded arguments.
func (ir *InstructionRegister) Args() []uint16 {
	return slices.Clone(ir.args[:])
}

// LongImmediate returns the two lowest argument fields as one value.
func (ir *InstructionRegister) LongImmediate() uint16 {
	return ir.args[IR_ARGS-2]<<IR_ARG_BITS | ir.args[IR_ARGS-1]
}

func (ir *InstructionRegister) Values() iter.Seq2[string, uint16] {
	return func(yield func(string, uint16) bool) {
		if !yield("OpCode", ir.opcode) {
			return
		}
		for n, arg := range ir.args {
			if !yield(fmt.Sprintf("Arg%d", n), arg) {
				return
			}
		}
	}
}
