package vm

import (
	"iter"
)

// PhaseCounter counts clock cycles since its last reset. It feeds the
// microcode address as the step within an instruction.
type PhaseCounter struct {
	Component

	phase uint16
	reset bool
}

var _ Part = (*PhaseCounter)(nil)

// NewPhaseCounter creates a phase counter. It increments at clock phase
// PHASE_COUNT of every cycle, unless reset in that cycle.
func NewPhaseCounter(m *Machine) (pc *PhaseCounter) {
	pc = &PhaseCounter{}
	m.attach(pc, "Phase Counter", TYPE_PHASE_COUNTER)

	pc.AddCommand(&Command{
		Name:    "Reset Phase Counter",
		Changes: []Part{pc},
		action:  pc.Reset,
	})

	m.Clock().At(PHASE_COUNT).Add(func() {
		if !pc.reset {
			pc.phase++
		}
		pc.reset = false
		pc.changed()
	})

	// The reset only holds the counter for the cycle it ran in.
	m.Clock().AtEnd().Add(func() {
		pc.reset = false
	})

	return
}

// Phase returns the counter value.
func (pc *PhaseCounter) Phase() uint16 {
	return pc.phase
}

// Reset zeroes the counter. Issued between cycles, it also holds the counter
// at zero through the next cycle.
func (pc *PhaseCounter) Reset() {
	pc.phase = 0
	pc.reset = true
	pc.changed()
}

func (pc *PhaseCounter) Values() iter.Seq2[string, uint16] {
	return func(yield func(string, uint16) bool) {
		yield("Phase", pc.phase)
	}
}
