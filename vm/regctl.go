// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"fmt"
	"iter"
	"slices"
)

// BankRegister is a register of a RegisterController bank. It owns no
// commands; it is reached through the controller.
type BankRegister struct {
	Component

	value uint16
}

var _ Part = (*BankRegister)(nil)

// Value returns the stored value.
func (br *BankRegister) Value() uint16 {
	return br.value
}

// Set stores value.
func (br *BankRegister) Set(value uint16) {
	br.value = value
	br.changed()
}

// In latches the value of bus.
func (br *BankRegister) In(bus *Bus) {
	br.Set(bus.Read())
}

// Out drives bus with the stored value.
func (br *BankRegister) Out(bus *Bus) {
	bus.Write(br.value)
}

func (br *BankRegister) Values() iter.Seq2[string, uint16] {
	return func(yield func(string, uint16) bool) {
		yield("Value", br.value)
	}
}

// RegisterController is a register file addressed by the arguments decoded
// by an InstructionRegister.
type RegisterController struct {
	Component

	ir   *InstructionRegister
	bank []*BankRegister
}

var _ Part = (*RegisterController)(nil)

// NewRegisterController creates a bank of count registers.
//
// For every argument position n of ir and every wiring, an "Arg<n> <bus> Out"
// and/or "Arg<n> <bus> In" command is added. When run, the command reads the
// argument currently decoded at position n and moves data between the bus and
// the bank register it selects.
func NewRegisterController(m *Machine, count int, ir *InstructionRegister, wirings ...Wiring) (rc *RegisterController) {
	rc = &RegisterController{
		ir: ir,
	}
	m.attach(rc, "Register Controller", TYPE_REGISTER_CONTROLLER)

	for n := range count {
		br := &BankRegister{}
		m.attach(br, fmt.Sprintf("Register R%d", n), TYPE_BANK_REGISTER)
		rc.bank = append(rc.bank, br)
	}

	for pos := range IR_ARGS {
		for _, wiring := range wirings {
			bus := wiring.Bus
			if wiring.State.CanOutput() {
				rc.AddCommand(&Command{
					Name:    fmt.Sprintf("Arg%d %v Out", pos, bus.Name()),
					Depends: []Part{ir, rc},
					Changes: []Part{bus},
					action: func() {
						if br, ok := rc.Selected(pos); ok {
							br.Out(bus)
						}
					},
				})
			}

			if wiring.State.CanInput() {
				rc.AddCommand(&Command{
					Name:    fmt.Sprintf("Arg%d %v In", pos, bus.Name()),
					Depends: []Part{ir, bus},
					Changes: []Part{rc},
					action: func() {
						if br, ok := rc.Selected(pos); ok {
							br.In(bus)
						}
					},
				})
			}
		}
	}

	return
}

// Bank returns the bank registers.
func (rc *RegisterController) Bank() []*BankRegister {
	return slices.Clone(rc.bank)
}

// Selected returns the bank register addressed by argument pos. An index
// beyond the bank is reported as an error and ok is false.
func (rc *RegisterController) Selected(pos int) (br *BankRegister, ok bool) {
	index := int(rc.ir.Arg(pos))
	if index >= len(rc.bank) {
		rc.logError(f("%v: Arg%d selects register %d, bank has %d", rc.Name(), pos, index, len(rc.bank)))
		return
	}

	return rc.bank[index], true
}

func (rc *RegisterController) Values() iter.Seq2[string, uint16] {
	return func(yield func(string, uint16) bool) {
		for n, br := range rc.bank {
			if !yield(fmt.Sprintf("R%d", n), br.value) {
				return
			}
		}
	}
}
