package vm

import (
	"iter"
)

// Bus is a shared 16-bit signal line. It holds the last value written; a
// bus that nothing drives keeps its previous value.
type Bus struct {
	Component

	value uint16
	hooks []func(value uint16)
}

var _ Part = (*Bus)(nil)

// NewBus creates a bus named "<name> Bus".
func NewBus(m *Machine, name string) (bus *Bus) {
	bus = &Bus{}
	m.attach(bus, name+" Bus", TYPE_BUS)

	return
}

// Read returns the value currently asserted on the bus.
func (bus *Bus) Read() uint16 {
	return bus.value
}

// Write asserts value on the bus, then runs the on-write hooks of the parts
// wired to it before returning.
func (bus *Bus) Write(value uint16) {
	bus.value = value
	for _, hook := range bus.hooks {
		hook(value)
	}
	bus.changed()
}

// hook adds an on-write hook. Hooks are only added while wiring parts.
func (bus *Bus) hook(fn func(value uint16)) {
	bus.hooks = append(bus.hooks, fn)
}

func (bus *Bus) Values() iter.Seq2[string, uint16] {
	return func(yield func(string, uint16) bool) {
		yield("Value", bus.value)
	}
}
