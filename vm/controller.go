// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"maps"
	"slices"

	"github.com/ezrec/starfish/graph"
	"github.com/ezrec/starfish/logger"
)

// Input is a microcode address input: the low Bits of a display value of
// a part.
type Input struct {
	Part  Part
	Value string // Name of the display value.
	Bits  int
}

// Read returns the current input value.
func (in Input) Read() (value uint16) {
	for name, v := range in.Part.Values() {
		if name == in.Value {
			value = v & (1<<in.Bits - 1)
			break
		}
	}
	return
}

// Controller holds every command of the machine, and the active subset run
// on the next clock tick.
type Controller struct {
	log logger.Logger

	commands   []*Command
	active     []*Command
	graph      *graph.Graph[*Command]
	contention []*Bus
	inputs     []Input
}

func newController(m *Machine) (ctl *Controller) {
	ctl = &Controller{
		log:   m.log,
		graph: graph.New[*Command](m.log),
	}

	m.clock.At(PHASE_EXECUTE).Add(ctl.RunActive)

	return
}

func (ctl *Controller) add(cmd *Command) {
	ctl.commands = append(ctl.commands, cmd)
}

// Commands returns every registered command, in registration order.
func (ctl *Controller) Commands() []*Command {
	return slices.Clone(ctl.commands)
}

// Command returns the first registered command called name.
func (ctl *Controller) Command(name string) (cmd *Command, ok bool) {
	index := slices.IndexFunc(ctl.commands, func(c *Command) bool { return c.Name == name })
	if index < 0 {
		return
	}
	return ctl.commands[index], true
}

// ActiveCommands returns the active set, in activation order.
func (ctl *Controller) ActiveCommands() []*Command {
	return slices.Clone(ctl.active)
}

// IsActive returns true if cmd is in the active set.
func (ctl *Controller) IsActive(cmd *Command) bool {
	return slices.Contains(ctl.active, cmd)
}

// Activate adds commands to the active set.
func (ctl *Controller) Activate(cmds ...*Command) {
	for _, cmd := range cmds {
		if !ctl.IsActive(cmd) {
			ctl.active = append(ctl.active, cmd)
		}
	}
	ctl.rebuild()
}

// Deactivate removes commands from the active set.
func (ctl *Controller) Deactivate(cmds ...*Command) {
	ctl.active = slices.DeleteFunc(ctl.active, func(c *Command) bool {
		return slices.Contains(cmds, c)
	})
	ctl.rebuild()
}

// Toggle flips the active state of cmd.
func (ctl *Controller) Toggle(cmd *Command) {
	if ctl.IsActive(cmd) {
		ctl.Deactivate(cmd)
	} else {
		ctl.Activate(cmd)
	}
}

// SetActive replaces the active set.
func (ctl *Controller) SetActive(cmds ...*Command) {
	ctl.active = ctl.active[:0]
	ctl.Activate(cmds...)
}

// ClearActive empties the active set.
func (ctl *Controller) ClearActive() {
	ctl.SetActive()
}

// ActivateNamed adds the commands called names to the active set. If any
// name is unknown the active set is left unchanged.
func (ctl *Controller) ActivateNamed(names ...string) (err error) {
	cmds, err := ctl.lookup(names)
	if err != nil {
		return
	}
	ctl.Activate(cmds...)
	return
}

// DeactivateNamed removes the commands called names from the active set.
func (ctl *Controller) DeactivateNamed(names ...string) (err error) {
	cmds, err := ctl.lookup(names)
	if err != nil {
		return
	}
	ctl.Deactivate(cmds...)
	return
}

func (ctl *Controller) lookup(names []string) (cmds []*Command, err error) {
	for _, name := range names {
		cmd, ok := ctl.Command(name)
		if !ok {
			err = ErrCommandUnknown(name)
			return
		}
		cmds = append(cmds, cmd)
	}
	return
}

// Graph returns the dependency graph of the active set.
func (ctl *Controller) Graph() *graph.Graph[*Command] {
	return ctl.graph
}

// Contention returns the buses changed by more than one active command.
func (ctl *Controller) Contention() []*Bus {
	return slices.Clone(ctl.contention)
}

// rebuild recreates the dependency graph of the active set: an edge A->B for
// every pair of distinct active commands where A changes a part B depends on.
func (ctl *Controller) rebuild() {
	g := graph.New[*Command](ctl.log)

	writers := map[*Bus]int{}
	var buses []*Bus
	for _, cmd := range ctl.active {
		g.AddNode(cmd)
		for _, part := range cmd.Changes {
			if bus, ok := part.(*Bus); ok {
				if writers[bus] == 0 {
					buses = append(buses, bus)
				}
				writers[bus]++
			}
		}
	}

	for _, from := range ctl.active {
		for _, to := range ctl.active {
			if from != to && from.Affects(to) {
				g.AddEdge(from, to)
			}
		}
	}

	ctl.graph = g

	// Two drivers on one bus: the last one in execution order wins.
	ctl.contention = slices.DeleteFunc(buses, func(bus *Bus) bool { return writers[bus] < 2 })
	for _, bus := range ctl.contention {
		ctl.log.Warn(f("%v driven by %d active commands, last writer wins", bus.Name(), writers[bus]))
	}
}

// Order returns the active commands in execution order, or graph.ErrCycle.
func (ctl *Controller) Order() (order []*Command, err error) {
	return ctl.graph.Sort()
}

// RunActive runs the active commands in dependency order. If the active
// set has a dependency cycle, nothing is run.
func (ctl *Controller) RunActive() {
	for _, cmd := range ctl.graph.TopologicalSort() {
		cmd.Run()
	}
}

// Input adds the low bits of the display value called value of part as the
// next microcode address input.
func (ctl *Controller) Input(part Part, value string, bits int) {
	found := false
	for name := range part.Values() {
		if name == value {
			found = true
			break
		}
	}
	if !found {
		ctl.log.Warn(f("input %v.%v is not a value", part.Name(), value))
		return
	}
	if bits <= 0 || bits > 16 {
		ctl.log.Warn(f("input %v.%v: %d bits is not in 1..16", part.Name(), value, bits))
		return
	}

	ctl.inputs = append(ctl.inputs, Input{Part: part, Value: value, Bits: bits})
}

// Inputs returns the microcode address inputs.
func (ctl *Controller) Inputs() []Input {
	return slices.Clone(ctl.inputs)
}

// Address returns the microcode address: all inputs concatenated, the first
// input in the lowest bits.
func (ctl *Controller) Address() (address uint64) {
	shift := 0
	for _, in := range ctl.inputs {
		address |= uint64(in.Read()) << shift
		shift += in.Bits
	}
	return
}

// ActiveNames returns the names of the active commands, sorted.
func (ctl *Controller) ActiveNames() []string {
	names := map[string]bool{}
	for _, cmd := range ctl.active {
		names[cmd.Name] = true
	}
	return slices.Sorted(maps.Keys(names))
}
