// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/starfish/graph"
	"github.com/ezrec/starfish/logger"
)

type ctlFixture struct {
	m    *Machine
	ctl  *Controller
	data *Bus
	a    *Register
	b    *Register
}

func newCtlFixture(log logger.Logger) (fx *ctlFixture) {
	fx = &ctlFixture{}
	fx.m = NewMachine(log)
	fx.ctl = fx.m.Controller()
	fx.data = NewBus(fx.m, "Data")
	fx.a = NewRegister(fx.m, "A", InOut(fx.data))
	fx.b = NewRegister(fx.m, "B", InOut(fx.data))
	return
}

func (fx *ctlFixture) cmd(name string) *Command {
	cmd, ok := fx.ctl.Command(name)
	if !ok {
		panic(name)
	}
	return cmd
}

func TestController_Registry(t *testing.T) {
	assert := assert.New(t)

	fx := newCtlFixture(nil)

	var names []string
	for _, cmd := range fx.ctl.Commands() {
		names = append(names, cmd.Name)
	}
	assert.Equal([]string{
		"Data Bus -> Register A",
		"Register A -> Data Bus",
		"Data Bus -> Register B",
		"Register B -> Data Bus",
	}, names)

	cmd, ok := fx.ctl.Command("Register B -> Data Bus")
	assert.True(ok)
	assert.Same(fx.b, cmd.Owner)

	_, ok = fx.ctl.Command("Register C -> Data Bus")
	assert.False(ok)
}

func TestController_ActiveSet(t *testing.T) {
	assert := assert.New(t)

	fx := newCtlFixture(nil)
	storeA := fx.cmd("Data Bus -> Register A")
	loadA := fx.cmd("Register A -> Data Bus")
	storeB := fx.cmd("Data Bus -> Register B")

	fx.ctl.Activate(storeA, storeB, storeA)
	assert.Equal([]*Command{storeA, storeB}, fx.ctl.ActiveCommands())
	assert.True(fx.ctl.IsActive(storeA))
	assert.False(fx.ctl.IsActive(loadA))

	fx.ctl.Deactivate(storeA, loadA)
	assert.Equal([]*Command{storeB}, fx.ctl.ActiveCommands())

	fx.ctl.Toggle(loadA)
	assert.Equal([]*Command{storeB, loadA}, fx.ctl.ActiveCommands())
	fx.ctl.Toggle(storeB)
	assert.Equal([]*Command{loadA}, fx.ctl.ActiveCommands())

	fx.ctl.SetActive(storeA, storeB)
	assert.Equal([]*Command{storeA, storeB}, fx.ctl.ActiveCommands())
	assert.Equal([]string{"Data Bus -> Register A", "Data Bus -> Register B"}, fx.ctl.ActiveNames())

	fx.ctl.ClearActive()
	assert.Empty(fx.ctl.ActiveCommands())
	assert.Equal(0, fx.ctl.Graph().Len())
}

func TestController_ActivateNamed(t *testing.T) {
	assert := assert.New(t)

	fx := newCtlFixture(nil)

	assert.NoError(fx.ctl.ActivateNamed("Register A -> Data Bus"))

	err := fx.ctl.ActivateNamed("Data Bus -> Register B", "No Such Command")
	var unknown ErrCommandUnknown
	assert.True(errors.As(err, &unknown))
	assert.Equal(ErrCommandUnknown("No Such Command"), unknown)
	assert.Equal([]string{"Register A -> Data Bus"}, fx.ctl.ActiveNames())

	err = fx.ctl.DeactivateNamed("Register A -> Data Bus", "Also Missing")
	assert.Error(err)
	assert.Equal([]string{"Register A -> Data Bus"}, fx.ctl.ActiveNames())

	assert.NoError(fx.ctl.DeactivateNamed("Register A -> Data Bus"))
	assert.Empty(fx.ctl.ActiveNames())
}

func TestController_Graph(t *testing.T) {
	assert := assert.New(t)

	fx := newCtlFixture(nil)
	loadA := fx.cmd("Register A -> Data Bus")
	storeB := fx.cmd("Data Bus -> Register B")

	// Activation order is the reverse of execution order.
	fx.ctl.Activate(storeB, loadA)

	assert.Equal([]graph.Edge[*Command]{{Start: loadA, End: storeB}}, fx.ctl.Graph().Edges())

	order, err := fx.ctl.Order()
	assert.NoError(err)
	assert.Equal([]*Command{loadA, storeB}, order)

	fx.a.Set(0x1234)
	fx.m.RunCycle()
	assert.Equal(uint16(0x1234), fx.b.Value())
	assert.Equal(uint16(0x1234), fx.data.Read())
}

func TestController_Cycle(t *testing.T) {
	assert := assert.New(t)

	rec := &logger.Recorder{}
	fx := newCtlFixture(rec)

	fx.a.Set(0x55)
	fx.data.Write(0xaa)
	assert.NoError(fx.ctl.ActivateNamed("Data Bus -> Register A", "Register A -> Data Bus"))

	_, err := fx.ctl.Order()
	assert.ErrorIs(err, graph.ErrCycle)

	fx.m.RunCycle()
	assert.Equal(1, rec.Count(logger.LEVEL_WARN))
	assert.Equal(uint16(0x55), fx.a.Value())
	assert.Equal(uint16(0xaa), fx.data.Read())
}

func TestController_Contention(t *testing.T) {
	assert := assert.New(t)

	rec := &logger.Recorder{}
	fx := newCtlFixture(rec)

	fx.a.Set(1)
	fx.b.Set(2)
	assert.NoError(fx.ctl.ActivateNamed("Register A -> Data Bus", "Register B -> Data Bus"))
	assert.Equal([]*Bus{fx.data}, fx.ctl.Contention())
	assert.Equal(1, rec.Count(logger.LEVEL_WARN))

	fx.m.RunCycle()
	assert.Equal(uint16(2), fx.data.Read())

	assert.NoError(fx.ctl.DeactivateNamed("Register A -> Data Bus"))
	assert.Empty(fx.ctl.Contention())
	assert.Equal(1, rec.Count(logger.LEVEL_WARN))
}

func TestController_Inputs(t *testing.T) {
	assert := assert.New(t)

	rec := &logger.Recorder{}
	m := NewMachine(rec)
	ctl := m.Controller()
	inst := NewBus(m, "Instruction")
	data := NewBus(m, "Data")
	ir := NewInstructionRegister(m, inst, data)
	pc := NewPhaseCounter(m)

	ctl.Input(pc, "Phase", 3)
	ctl.Input(ir, "OpCode", 7)
	ctl.Input(ir, "Nothing", 2)
	ctl.Input(ir, "Arg0", 0)
	assert.Equal(2, rec.Count(logger.LEVEL_WARN))
	assert.Len(ctl.Inputs(), 2)

	ir.Decode(0x55 << IR_OPCODE_LSB)
	m.RunCycle()
	m.RunCycle()
	assert.Equal(uint16(2), pc.Phase())
	assert.Equal(uint64(0x55<<3|2), ctl.Address())

	// Only the low bits of each input are used.
	for range 7 {
		m.RunCycle()
	}
	assert.Equal(uint16(9), pc.Phase())
	assert.Equal(uint64(0x55<<3|1), ctl.Address())
}
