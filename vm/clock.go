package vm

// Clock phases used by the built-in parts.
const (
	PHASE_COUNT   = 0 // Phase counters advance.
	PHASE_EXECUTE = 1 // Active commands run.
)

// Handler is run by the clock.
type Handler func()

// Slot holds the handlers run at one clock phase, in the order they were
// added.
type Slot struct {
	handlers []Handler
}

// Add appends a handler to the slot.
func (slot *Slot) Add(fn Handler) {
	slot.handlers = append(slot.handlers, fn)
}

// Len returns the number of handlers in the slot.
func (slot *Slot) Len() int {
	return len(slot.handlers)
}

// Run runs every handler in the slot.
func (slot *Slot) Run() {
	for _, fn := range slot.handlers {
		fn()
	}
}

// Clock sequences a cycle: every phase slot in ascending order, then the
// end of cycle cleanup slot.
type Clock struct {
	slots  []*Slot
	end    Slot
	cycles uint64
}

// At returns the slot of phase, creating it (and any missing earlier slot)
// if needed.
func (clk *Clock) At(phase int) *Slot {
	for len(clk.slots) <= phase {
		clk.slots = append(clk.slots, &Slot{})
	}
	return clk.slots[phase]
}

// AtEnd returns the end of cycle cleanup slot.
func (clk *Clock) AtEnd() *Slot {
	return &clk.end
}

// Phases returns the number of phase slots.
func (clk *Clock) Phases() int {
	return len(clk.slots)
}

// Cycles returns the number of completed cycles.
func (clk *Clock) Cycles() uint64 {
	return clk.cycles
}

// RunCycle runs one complete cycle, the equivalent of one rising edge of
// the clock signal.
func (clk *Clock) RunCycle() {
	for _, slot := range clk.slots {
		slot.Run()
	}
	clk.end.Run()
	clk.cycles++
}
