// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"iter"
	"slices"
)

// Type tags of the built-in parts.
const (
	TYPE_BUS                  = "Bus"
	TYPE_REGISTER             = "Register"
	TYPE_BANK_REGISTER        = "BankRegister"
	TYPE_ALU                  = "ALU"
	TYPE_FLAGS                = "Flags"
	TYPE_MEMORY               = "Memory"
	TYPE_PHASE_COUNTER        = "PhaseCounter"
	TYPE_INSTRUCTION_REGISTER = "InstructionRegister"
	TYPE_REGISTER_CONTROLLER  = "RegisterController"
)

// Part is a simulated element registered with a Machine.
type Part interface {
	ID() int                           // Identity, unique for the life of the machine.
	Name() string                      // Display name.
	Type() string                      // Type tag.
	Commands() []*Command              // Commands owned by the part.
	Values() iter.Seq2[string, uint16] // Display values, in a fixed order.

	base() *Component
}

// Component holds the identity and commands of a part. It is embedded by
// every part type.
type Component struct {
	machine  *Machine
	self     Part
	id       int
	name     string
	typeName string
	commands []*Command
}

func (c *Component) base() *Component {
	return c
}

// ID returns the component identity.
func (c *Component) ID() int {
	return c.id
}

// Name returns the display name.
func (c *Component) Name() string {
	return c.name
}

// Type returns the type tag.
func (c *Component) Type() string {
	return c.typeName
}

// Machine returns the machine the component is registered with.
func (c *Component) Machine() *Machine {
	return c.machine
}

// Commands returns the commands owned by the component.
func (c *Component) Commands() []*Command {
	return slices.Clone(c.commands)
}

// AddCommand appends a command to the component. Once the component is
// registered, the command is also forwarded to the machine's controller.
func (c *Component) AddCommand(cmd *Command) {
	cmd.Owner = c.self
	c.commands = append(c.commands, cmd)
	if c.machine != nil {
		c.machine.controller.add(cmd)
	}
}

// changed reports a value change of the component to the machine observers.
func (c *Component) changed() {
	if c.machine != nil {
		c.machine.changed(c.self)
	}
}

// logInfo, logWarn and logError report through the machine logger.
func (c *Component) logInfo(message string) {
	if c.machine != nil {
		c.machine.log.Info(message)
	}
}

func (c *Component) logWarn(message string) {
	if c.machine != nil {
		c.machine.log.Warn(message)
	}
}

func (c *Component) logError(message string) {
	if c.machine != nil {
		c.machine.log.Error(message)
	}
}
