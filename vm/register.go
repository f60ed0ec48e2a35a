// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"fmt"
	"iter"
	"slices"
)

// Register is a 16-bit store wired to buses.
type Register struct {
	Component

	value   uint16
	wirings []Wiring
}

var _ Part = (*Register)(nil)

// NewRegister creates a register named "Register <name>".
//
// Each input capable wiring adds a "<bus> -> Register <name>" command that
// latches the bus, each output capable wiring adds a "Register <name> -> <bus>"
// command that drives the bus.
func NewRegister(m *Machine, name string, wirings ...Wiring) (reg *Register) {
	reg = &Register{
		wirings: slices.Clone(wirings),
	}
	m.attach(reg, "Register "+name, TYPE_REGISTER)

	for _, wiring := range wirings {
		bus := wiring.Bus
		if wiring.State.CanInput() {
			reg.AddCommand(&Command{
				Name:    fmt.Sprintf("%v -> %v", bus.Name(), reg.Name()),
				Depends: []Part{bus},
				Changes: []Part{reg},
				action:  func() { reg.Store(bus) },
			})
		}

		if wiring.State.CanOutput() {
			reg.AddCommand(&Command{
				Name:    fmt.Sprintf("%v -> %v", reg.Name(), bus.Name()),
				Depends: []Part{reg},
				Changes: []Part{bus},
				action:  func() { reg.Load(bus) },
			})
		}
	}

	return
}

// Value returns the stored value.
func (reg *Register) Value() uint16 {
	return reg.value
}

// Set stores value directly.
func (reg *Register) Set(value uint16) {
	reg.value = value
	reg.changed()
}

// Store latches the value of bus.
func (reg *Register) Store(bus *Bus) {
	reg.Set(bus.Read())
}

// Load drives bus with the stored value.
func (reg *Register) Load(bus *Bus) {
	bus.Write(reg.value)
}

// Wirings returns the bus wirings of the register.
func (reg *Register) Wirings() []Wiring {
	return slices.Clone(reg.wirings)
}

func (reg *Register) Values() iter.Seq2[string, uint16] {
	return func(yield func(string, uint16) bool) {
		yield("Value", reg.value)
	}
}
