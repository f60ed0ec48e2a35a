package vm

import (
	"slices"
)

// Command is a named micro-operation. Depends lists the parts it reads,
// Changes the parts it writes; the constructor of a command is responsible
// for keeping both in line with what the action actually does.
type Command struct {
	Name    string
	Depends []Part
	Changes []Part
	Owner   Part // Part the command was added to.

	action func()
}

// NewCommand creates a command running action.
func NewCommand(name string, action func()) *Command {
	return &Command{Name: name, action: action}
}

// Run runs the command action.
func (cmd *Command) Run() {
	if cmd.action != nil {
		cmd.action()
	}
}

func (cmd *Command) String() string {
	return cmd.Name
}

// Affects returns true if cmd changes a part that other depends on.
func (cmd *Command) Affects(other *Command) bool {
	for _, changed := range cmd.Changes {
		if slices.Contains(other.Depends, changed) {
			return true
		}
	}
	return false
}
