package emulator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/starfish/graph"
	"github.com/ezrec/starfish/logger"
	"github.com/ezrec/starfish/starfish"
	"github.com/ezrec/starfish/vm"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(vm.NewMachine(nil))

	assert.False(emu.Verbose)
	assert.NotNil(emu.Machine)
	assert.Equal(uint64(0), emu.Cycles())

	assert.NoError(emu.Tick())
	assert.Equal(uint64(1), emu.Cycles())
}

func TestEmulator_Verbose(t *testing.T) {
	assert := assert.New(t)

	rec := &logger.Recorder{}
	sf := starfish.New(rec)
	emu := NewEmulator(sf.Machine)
	emu.Verbose = true

	assert.NoError(sf.Controller().ActivateNamed("Set Flag Halt"))
	rec.Reset()
	assert.NoError(emu.Tick())

	assert.Equal("cycle 0: [Set Flag Halt]", rec.Entries[0].Message)
	assert.True(strings.Contains(rec.String(), "Flags.Halt = 0x0001"), rec.String())
}

func TestEmulator_Cycle(t *testing.T) {
	assert := assert.New(t)

	sf := starfish.New(nil)
	emu := NewEmulator(sf.Machine)
	emu.Tick()

	assert.NoError(sf.Controller().ActivateNamed("Data Bus -> Register A", "Register A -> Data Bus"))

	err := emu.Tick()
	var rt *ErrRuntime
	assert.True(errors.As(err, &rt))
	assert.Equal(uint64(1), rt.Cycle)
	assert.ErrorIs(err, graph.ErrCycle)
	assert.Equal(uint64(1), emu.Cycles())

	cycles, err := emu.Run(context.Background(), nil, 10)
	assert.Equal(0, cycles)
	assert.ErrorIs(err, graph.ErrCycle)
}

func TestEmulator_Run(t *testing.T) {
	assert := assert.New(t)

	halted := func(m *vm.Machine) bool {
		index, ok := m.Flags().Index(starfish.FLAG_HALT)
		return ok && m.Flags().Get(index)
	}

	table := [](struct {
		limit  int
		until  func(m *vm.Machine) bool
		cycles int
		err    error
	}){
		{limit: 5, cycles: 5},
		{limit: 3, until: halted, cycles: 3, err: ErrLimit},
		{limit: 10, until: halted, cycles: 4},
		{limit: 0, until: halted, cycles: 4},
	}

	for n, entry := range table {
		sf := starfish.New(nil)
		emu := NewEmulator(sf.Machine)

		// Halt once the phase counter reaches 4.
		halt, _ := sf.Flags().Index(starfish.FLAG_HALT)
		sf.Clock().AtEnd().Add(func() {
			if sf.Phase.Phase() == 4 {
				sf.Flags().Update(halt, true)
			}
		})

		cycles, err := emu.Run(context.Background(), entry.until, entry.limit)
		if entry.err == nil {
			assert.NoError(err, "case %d", n)
		} else {
			assert.ErrorIs(err, entry.err, "case %d", n)
		}
		assert.Equal(entry.cycles, cycles, "case %d", n)
	}
}

func TestEmulator_Cancel(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(vm.NewMachine(nil))

	ctx, cancel := context.WithCancel(context.Background())
	emu.Clock().AtEnd().Add(func() {
		if emu.Cycles() == 6 {
			cancel()
		}
	})

	cycles, err := emu.Run(ctx, nil, 0)
	assert.ErrorIs(err, context.Canceled)
	assert.Equal(7, cycles)
}
