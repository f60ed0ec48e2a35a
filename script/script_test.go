package script

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.starlark.net/starlark"

	"github.com/ezrec/starfish/graph"
	"github.com/ezrec/starfish/logger"
	"github.com/ezrec/starfish/starfish"
	"github.com/ezrec/starfish/vm"
)

func doExec(t *testing.T, m *vm.Machine, program []string) (s *Script, globals starlark.StringDict, err error) {
	s = New(m)
	globals, err = s.Exec(context.Background(), "test.star", strings.Join(program, "\n")+"\n")
	return
}

func TestScript_Build(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		`data = bus("Data")`,
		`left = bus("ALU Left")`,
		`right = bus("ALU Right")`,
		`a = register("A", inout(data), out(left))`,
		`b = register("B", inout(data), out(right))`,
		`alu(left, right, data)`,
		`set(a, 5)`,
		`set(b, 7)`,
		`activate("Register A -> ALU Left Bus", "Register B -> ALU Right Bus", "ALU add", "ALU Output")`,
		`cycles = cycle()`,
		`result = read(data)`,
		`zero = flag("Zero")`,
		`name = a.name`,
		`wiring = str(inout(data))`,
	}

	m := vm.NewMachine(nil)
	_, globals, err := doExec(t, m, program)
	assert.NoError(err)

	assert.Equal(starlark.MakeInt(12), globals["result"])
	assert.Equal(starlark.MakeInt(1), globals["cycles"])
	assert.Equal(starlark.False, globals["zero"])
	assert.Equal(starlark.String("Register A"), globals["name"])
	assert.Equal(starlark.String("inout(Data Bus)"), globals["wiring"])

	p, ok := m.Component("Register B")
	assert.True(ok)
	assert.Equal(uint16(7), p.(*vm.Register).Value())
}

func TestScript_Preset(t *testing.T) {
	assert := assert.New(t)

	sf := starfish.New(nil)

	program := []string{
		`poke(0x10, 0xaaee)`,
		`set(part("Register P"), 0x10)`,
		`activate("Register P -> Address Bus", "Memory(Address Bus) -> Instruction Bus", "Instruction Register In")`,
		`cycle(2)`,
		`clear()`,
		`ir = value(part("Instruction Register"))`,
		`op = value(part("Instruction Register"), "OpCode")`,
		`word = peek(0x10)`,
		`for n in range(3):`,
		`    activate("Set Flag Halt")`,
		`    cycle()`,
		`halted = flag("Halt")`,
		`total = len(commands())`,
		`log("done")`,
		`print("ok")`,
	}

	s := New(sf.Machine)
	out := &bytes.Buffer{}
	s.Output = out
	globals, err := s.Exec(context.Background(), "preset.star", strings.Join(program, "\n")+"\n")
	assert.NoError(err)

	assert.Equal(starlark.MakeInt(0x55), globals["op"])
	assert.Equal(starlark.MakeInt(0xaaee), globals["word"])
	assert.Equal(starlark.True, globals["halted"])
	assert.Equal(starlark.MakeInt(len(sf.Controller().Commands())), globals["total"])
	assert.Equal("ok\n", out.String())
	assert.Equal(uint64(5), sf.Clock().Cycles())

	ir, ok := globals["ir"].(*starlark.Dict)
	assert.True(ok)
	arg2, found, _ := ir.Get(starlark.String("Arg2"))
	assert.True(found)
	assert.Equal(starlark.MakeInt(6), arg2)
}

func TestScript_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		program string
		check   func(err error) bool
	}){
		{`activate("No Such Command")`, func(err error) bool {
			var unknown vm.ErrCommandUnknown
			return errors.As(err, &unknown) && unknown == "No Such Command"
		}},
		{`part("Nothing")`, func(err error) bool {
			var unknown ErrPartUnknown
			return errors.As(err, &unknown)
		}},
		{`flag("Nothing")`, func(err error) bool {
			var unknown ErrFlagUnknown
			return errors.As(err, &unknown)
		}},
		{`peek(0)`, func(err error) bool {
			return errors.Is(err, ErrNoMemory)
		}},
		{`write(bus("X"), 0x10000)`, func(err error) bool {
			var rng ErrWordRange
			return errors.As(err, &rng) && rng == 0x10000
		}},
		{`register("A", bus("X"))`, func(err error) bool {
			var wiring ErrNotWiring
			return errors.As(err, &wiring) && wiring == "part"
		}},
		{`inp(register("A"))`, func(err error) bool {
			var pt *ErrPartType
			return errors.As(err, &pt) && pt.Want == vm.TYPE_BUS
		}},
		{`value(bus("X"), "Nothing")`, func(err error) bool {
			var unknown ErrValueUnknown
			return errors.As(err, &unknown)
		}},
		{"d = bus(\"D\")\nr = register(\"R\", inout(d))\nactivate(\"D Bus -> Register R\", \"Register R -> D Bus\")\ncycle()", func(err error) bool {
			return errors.Is(err, graph.ErrCycle)
		}},
		{`bus(`, func(err error) bool { return err != nil }},
	}

	for n, entry := range table {
		_, _, err := doExec(t, vm.NewMachine(nil), []string{entry.program})
		var serr *ErrScript
		assert.True(errors.As(err, &serr), "case %d: %v", n, err)
		assert.True(entry.check(err), "case %d: %v", n, err)
	}
}

func TestScript_Backtrace(t *testing.T) {
	assert := assert.New(t)

	_, _, err := doExec(t, vm.NewMachine(nil), []string{
		`def f():`,
		`    flag("Missing")`,
		`f()`,
	})

	var serr *ErrScript
	assert.True(errors.As(err, &serr))
	assert.Equal("test.star", serr.Filename)
	assert.Contains(serr.Backtrace, "test.star:2")
	assert.Contains(err.Error(), "flag")
}

func TestScript_Cancel(t *testing.T) {
	assert := assert.New(t)

	s := New(vm.NewMachine(nil))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Exec(ctx, "loop.star", "while True:\n    cycle()\n")
	assert.Error(err)
}

func TestScript_ExecFile(t *testing.T) {
	assert := assert.New(t)

	rec := &logger.Recorder{}
	s := New(vm.NewMachine(rec))

	dir := t.TempDir()
	path := filepath.Join(dir, "log.star")
	assert.NoError(os.WriteFile(path, []byte(`log("hello")`+"\n"), 0o644))

	_, err := s.ExecFile(context.Background(), path)
	assert.NoError(err)
	assert.Equal("hello", rec.Entries[len(rec.Entries)-1].Message)

	_, err = s.ExecFile(context.Background(), filepath.Join(dir, "missing.star"))
	assert.ErrorIs(err, os.ErrNotExist)
}
