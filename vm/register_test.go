package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegister_Commands(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine(nil)
	data := NewBus(m, "Data")
	left := NewBus(m, "ALU Left")
	reg := NewRegister(m, "A", InOut(data), Out(left))

	cmds := reg.Commands()
	names := make([]string, len(cmds))
	for n, cmd := range cmds {
		names[n] = cmd.Name
		assert.Same(reg, cmd.Owner.(*Register))
	}
	assert.Equal([]string{
		"Data Bus -> Register A",
		"Register A -> Data Bus",
		"Register A -> ALU Left Bus",
	}, names)

	assert.Equal([]Part{data}, cmds[0].Depends)
	assert.Equal([]Part{reg}, cmds[0].Changes)
	assert.Equal([]Part{reg}, cmds[1].Depends)
	assert.Equal([]Part{data}, cmds[1].Changes)
	assert.Equal([]Part{left}, cmds[2].Changes)

	assert.Len(reg.Wirings(), 2)
	assert.Equal(INOUT, reg.Wirings()[0].State)
}

func TestRegister_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine(nil)
	in := NewBus(m, "In")
	out := NewBus(m, "Out")
	reg := NewRegister(m, "R", In(in), Out(out))

	store, ok := m.Controller().Command("In Bus -> Register R")
	assert.True(ok)
	load, ok := m.Controller().Command("Register R -> Out Bus")
	assert.True(ok)

	for _, v := range []uint16{0, 1, 0x1234, 0x8000, 0xffff} {
		in.Write(v)
		store.Run()
		assert.Equal(v, reg.Value())
		load.Run()
		assert.Equal(v, out.Read())
	}
}

func TestRegister_Set(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine(nil)
	reg := NewRegister(m, "Lonely")

	changes := 0
	m.OnChange(func(p Part) { changes++ })

	reg.Set(0x55)
	assert.Equal(uint16(0x55), reg.Value())
	assert.Equal(1, changes)
	assert.Empty(reg.Commands())
}
