// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"iter"
	"slices"

	"github.com/ezrec/starfish/internal"
	"github.com/ezrec/starfish/logger"
)

// Machine is the composition root of a simulated CPU. It owns the clock, the
// controller, the shared flags and the list of registered parts.
type Machine struct {
	log        logger.Logger
	clock      *Clock
	controller *Controller
	flags      *Flags
	memory     *Memory

	components []Part
	nextID     int
	observers  []func(p Part)
}

// NewMachine creates an empty machine reporting to log. A nil log discards
// all diagnostics.
func NewMachine(log logger.Logger) (m *Machine) {
	m = &Machine{
		log:   logger.OrNull(log),
		clock: &Clock{},
	}

	m.controller = newController(m)
	m.flags = newFlags(m)

	return
}

// attach registers a part with the machine. Commands added to the part
// before attach are forwarded to the controller here; later ones are
// forwarded by AddCommand.
func (m *Machine) attach(p Part, name string, typeName string) {
	c := p.base()
	c.machine = m
	c.self = p
	c.id = m.nextID
	c.name = name
	c.typeName = typeName
	m.nextID++

	m.components = append(m.components, p)
	for _, cmd := range c.commands {
		cmd.Owner = p
		m.controller.add(cmd)
	}

	m.log.Info(f("component added: %v (%v #%d)", name, typeName, c.id))
}

func (m *Machine) changed(p Part) {
	for _, fn := range m.observers {
		fn(p)
	}
}

// OnChange adds an observer called after any part changes a value.
func (m *Machine) OnChange(fn func(p Part)) {
	m.observers = append(m.observers, fn)
}

// Log returns the machine logger.
func (m *Machine) Log() logger.Logger {
	return m.log
}

// Clock returns the machine clock.
func (m *Machine) Clock() *Clock {
	return m.clock
}

// Controller returns the microcode controller.
func (m *Machine) Controller() *Controller {
	return m.controller
}

// Flags returns the shared flags register.
func (m *Machine) Flags() *Flags {
	return m.flags
}

// Memory returns the most recently created memory, or nil.
func (m *Machine) Memory() *Memory {
	return m.memory
}

// Components returns the registered parts, in registration order.
func (m *Machine) Components() []Part {
	return slices.Clone(m.components)
}

// Component returns the first part called name.
func (m *Machine) Component(name string) (p Part, ok bool) {
	for _, c := range m.components {
		if c.Name() == name {
			return c, true
		}
	}
	return
}

// RunCycle advances the machine by one clock tick.
func (m *Machine) RunCycle() {
	m.clock.RunCycle()
}

// Values returns the display values of all parts, each named
// "<part name>.<value name>".
func (m *Machine) Values() iter.Seq2[string, uint16] {
	seqs := make([]iter.Seq2[string, uint16], 0, len(m.components))
	for _, p := range m.components {
		seqs = append(seqs, internal.Prefix(p.Name(), p.Values()))
	}
	return internal.Concat2(seqs...)
}
