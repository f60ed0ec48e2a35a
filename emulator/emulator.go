// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"strings"

	"github.com/ezrec/starfish/vm"
)

// Emulator drives a machine from the caller side.
type Emulator struct {
	Verbose     bool // If set, traces every cycle.
	*vm.Machine      // Reference to the simulated machine.
}

// NewEmulator creates a new emulator of m.
func NewEmulator(m *vm.Machine) (emu *Emulator) {
	emu = &Emulator{
		Machine: m,
	}

	return
}

// Cycles returns the completed cycles of the machine.
func (emu *Emulator) Cycles() uint64 {
	return emu.Clock().Cycles()
}

// Tick performs a single cycle of the machine. An active set that cannot be
// ordered is reported as an ErrRuntime, and the cycle is not run.
func (emu *Emulator) Tick() (err error) {
	ctl := emu.Controller()
	cycle := emu.Cycles()

	_, err = ctl.Order()
	if err != nil {
		err = &ErrRuntime{Cycle: cycle, Err: err}
		return
	}

	if emu.Verbose {
		emu.Log().Info(f("cycle %d: [%v]", cycle, strings.Join(ctl.ActiveNames(), ", ")))
	}

	emu.RunCycle()

	if emu.Verbose {
		for name, value := range emu.Values() {
			emu.Log().Info(f("  %v = 0x%04x", name, value))
		}
	}

	return
}

// Run ticks the machine until until returns true, limit cycles have been
// run, ctx is done or a tick fails. until may be nil, and a limit of zero or
// less does not limit the run.
//
// If until is set and the limit is reached first, ErrLimit is returned.
func (emu *Emulator) Run(ctx context.Context, until func(m *vm.Machine) bool, limit int) (cycles int, err error) {
	for {
		if until != nil && until(emu.Machine) {
			return
		}

		if limit > 0 && cycles >= limit {
			if until != nil {
				err = ErrLimit
			}
			return
		}

		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		default:
		}

		err = emu.Tick()
		if err != nil {
			return
		}
		cycles++
	}
}
