package vm

// LogicState is the direction of a wiring between a part and a bus.
type LogicState int

//go:generate go tool stringer -linecomment -type=LogicState
const (
	IN    = LogicState(1) // in
	OUT   = LogicState(2) // out
	INOUT = LogicState(3) // inout
)

// CanInput returns true if the part may latch the bus value.
func (ls LogicState) CanInput() bool {
	return (ls & IN) == IN
}

// CanOutput returns true if the part may drive the bus.
func (ls LogicState) CanOutput() bool {
	return (ls & OUT) == OUT
}

// Wiring connects a part to a bus in a direction.
type Wiring struct {
	Bus   *Bus
	State LogicState
}

// In wires bus as an input.
func In(bus *Bus) Wiring {
	return Wiring{Bus: bus, State: IN}
}

// Out wires bus as an output.
func Out(bus *Bus) Wiring {
	return Wiring{Bus: bus, State: OUT}
}

// InOut wires bus in both directions.
func InOut(bus *Bus) Wiring {
	return Wiring{Bus: bus, State: INOUT}
}
