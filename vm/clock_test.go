package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClock_Order(t *testing.T) {
	assert := assert.New(t)

	var trace []string
	clk := &Clock{}

	clk.AtEnd().Add(func() { trace = append(trace, "end") })
	clk.At(2).Add(func() { trace = append(trace, "2a") })
	clk.At(0).Add(func() { trace = append(trace, "0") })
	clk.At(2).Add(func() { trace = append(trace, "2b") })

	assert.Equal(3, clk.Phases())
	assert.Equal(0, clk.At(1).Len())
	assert.Equal(2, clk.At(2).Len())
	assert.Equal(uint64(0), clk.Cycles())

	clk.RunCycle()
	assert.Equal([]string{"0", "2a", "2b", "end"}, trace)
	assert.Equal(uint64(1), clk.Cycles())

	clk.RunCycle()
	assert.Len(trace, 8)
	assert.Equal(uint64(2), clk.Cycles())
}

func TestClock_Empty(t *testing.T) {
	assert := assert.New(t)

	clk := &Clock{}
	clk.RunCycle()
	assert.Equal(0, clk.Phases())
	assert.Equal(uint64(1), clk.Cycles())
}
