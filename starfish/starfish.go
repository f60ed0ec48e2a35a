// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package starfish

import (
	"io"

	"github.com/ezrec/starfish/logger"
	"github.com/ezrec/starfish/vm"
)

const (
	BANK_SIZE  = 8 // Registers in the register bank.
	PHASE_BITS = 3 // Phase counter bits of the microcode address.

	FLAG_HALT = "Halt"
)

// VM is the preset machine.
type VM struct {
	*vm.Machine

	Data        *vm.Bus
	Left        *vm.Bus
	Right       *vm.Bus
	Address     *vm.Bus
	Instruction *vm.Bus

	ALU    *vm.ALU
	A      *vm.Register
	B      *vm.Register
	P      *vm.Register
	Memory *vm.Memory
	Phase  *vm.PhaseCounter
	IR     *vm.InstructionRegister
	Bank   *vm.RegisterController

	halt int
}

// New creates a Starfish VM reporting to log.
func New(log logger.Logger) (sf *VM) {
	m := vm.NewMachine(log)
	sf = &VM{Machine: m}

	sf.Data = vm.NewBus(m, "Data")
	sf.Left = vm.NewBus(m, "ALU Left")
	sf.Right = vm.NewBus(m, "ALU Right")
	sf.Address = vm.NewBus(m, "Address")
	sf.Instruction = vm.NewBus(m, "Instruction")

	sf.ALU = vm.NewALU(m, sf.Left, sf.Right, sf.Data)
	sf.halt = m.Flags().Add(FLAG_HALT, false)

	sf.A = vm.NewRegister(m, "A", vm.InOut(sf.Data), vm.Out(sf.Left))
	sf.B = vm.NewRegister(m, "B", vm.InOut(sf.Data), vm.Out(sf.Right))
	sf.P = vm.NewRegister(m, "P", vm.InOut(sf.Data), vm.Out(sf.Address))

	sf.Memory = vm.NewMemory(m, "Memory", vm.In(sf.Address), vm.InOut(sf.Data), vm.Out(sf.Instruction))

	sf.Phase = vm.NewPhaseCounter(m)
	sf.IR = vm.NewInstructionRegister(m, sf.Instruction, sf.Data)
	sf.Bank = vm.NewRegisterController(m, BANK_SIZE, sf.IR,
		vm.InOut(sf.Data), vm.Out(sf.Left), vm.Out(sf.Right))

	ctl := m.Controller()
	ctl.Input(sf.Phase, "Phase", PHASE_BITS)
	ctl.Input(sf.IR, "OpCode", vm.IR_OPCODE_BITS)

	return
}

// Halted returns true once the halt flag is set.
func (sf *VM) Halted() bool {
	return sf.Flags().Get(sf.halt)
}

// Load reads a big-endian memory image at origin.
func (sf *VM) Load(r io.Reader, origin uint16) (n int, err error) {
	return sf.Memory.Load(r, origin)
}
