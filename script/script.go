// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package script describes and drives machines with Starlark scripts.
package script

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/starfish/emulator"
	"github.com/ezrec/starfish/vm"
)

// Script runs Starlark scripts against a machine.
type Script struct {
	*emulator.Emulator           // Emulator running cycle().
	Output             io.Writer // Destination of print(); nil discards.

	ctx context.Context
}

// New creates a script runner for m.
func New(m *vm.Machine) (s *Script) {
	s = &Script{
		Emulator: emulator.NewEmulator(m),
		ctx:      context.Background(),
	}

	return
}

type builtin func(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

// Builtins returns the predeclared names of a script.
func (s *Script) Builtins() (dict starlark.StringDict) {
	table := map[string]builtin{
		"bus":                  s.bus,
		"inp":                  s.wiring(vm.In),
		"out":                  s.wiring(vm.Out),
		"inout":                s.wiring(vm.InOut),
		"register":             s.register,
		"alu":                  s.alu,
		"memory":               s.memory,
		"phase_counter":        s.phaseCounter,
		"instruction_register": s.instructionRegister,
		"register_controller":  s.registerController,
		"part":                 s.lookup,
		"input":                s.input,
		"activate":             s.activate,
		"deactivate":           s.deactivate,
		"clear":                s.clear,
		"cycle":                s.cycle,
		"read":                 s.read,
		"write":                s.write,
		"value":                s.value,
		"set":                  s.set,
		"peek":                 s.peek,
		"poke":                 s.poke,
		"flag":                 s.flag,
		"commands":             s.commands,
		"log":                  s.log,
	}

	dict = starlark.StringDict{}
	for name, fn := range table {
		dict[name] = starlark.NewBuiltin(name, func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			return fn(b, args, kwargs)
		})
	}

	return
}

// Exec runs the script src, which may be a string, a []byte or an
// io.Reader, and returns its globals. Cancelling ctx stops the script.
func (s *Script) Exec(ctx context.Context, filename string, src any) (globals starlark.StringDict, err error) {
	s.ctx = ctx
	defer func() { s.ctx = context.Background() }()

	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			if s.Output != nil {
				fmt.Fprintln(s.Output, msg)
			}
		},
	}

	stop := context.AfterFunc(ctx, func() {
		thread.Cancel(ctx.Err().Error())
	})
	defer stop()

	opts := syntax.FileOptions{
		While:           true,
		TopLevelControl: true,
		GlobalReassign:  true,
	}
	globals, err = starlark.ExecFileOptions(&opts, thread, filename, src, s.Builtins())
	if err != nil {
		serr := &ErrScript{Filename: filename, Err: err}
		var evalErr *starlark.EvalError
		if errors.As(err, &evalErr) {
			serr.Backtrace = evalErr.Backtrace()
		}
		err = serr
	}

	return
}

// ExecFile runs the script stored in filename.
func (s *Script) ExecFile(ctx context.Context, filename string) (globals starlark.StringDict, err error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		err = errors.Wrapf(err, "read %v", filename)
		return
	}

	return s.Exec(ctx, filename, src)
}

// word converts a script integer to a 16-bit word. Negative values down to
// -0x8000 are taken as two's complement.
func word(v int) (w uint16, err error) {
	if v < -0x8000 || v > 0xffff {
		err = ErrWordRange(v)
		return
	}
	w = uint16(v)
	return
}

// split unpacks the first n positional arguments into vars and returns the
// remaining ones.
func split(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple, n int, vars ...any) (rest starlark.Tuple, err error) {
	head := args
	if len(args) > n {
		head, rest = args[:n], args[n:]
	}
	err = starlark.UnpackPositionalArgs(b.Name(), head, kwargs, n, vars...)
	return
}

func wirings(b *starlark.Builtin, args starlark.Tuple) (list []vm.Wiring, err error) {
	for n, arg := range args {
		w, ok := arg.(*Wiring)
		if !ok {
			err = errors.Wrapf(ErrNotWiring(arg.Type()), "%v: argument %d", b.Name(), n+1)
			return
		}
		list = append(list, w.wiring)
	}
	return
}

func names(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (list []string, err error) {
	if len(kwargs) != 0 {
		err = errors.Errorf("%v: unexpected keyword arguments", b.Name())
		return
	}
	for n, arg := range args {
		name, ok := starlark.AsString(arg)
		if !ok {
			err = errors.Errorf("%v: argument %d: got %v, want string", b.Name(), n+1, arg.Type())
			return
		}
		list = append(list, name)
	}
	return
}

func (s *Script) bus(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var name string
	err = starlark.UnpackArgs(b.Name(), args, kwargs, "name", &name)
	if err != nil {
		return
	}

	value = NewPart(vm.NewBus(s.Machine, name))
	return
}

func (s *Script) wiring(fn func(bus *vm.Bus) vm.Wiring) builtin {
	return func(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
		var p *Part
		err = starlark.UnpackArgs(b.Name(), args, kwargs, "bus", &p)
		if err != nil {
			return
		}
		bus, err := as[*vm.Bus](p, vm.TYPE_BUS)
		if err != nil {
			err = errors.Wrapf(err, "%v", b.Name())
			return
		}

		value = &Wiring{wiring: fn(bus)}
		return
	}
}

func (s *Script) register(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var name string
	rest, err := split(b, args, kwargs, 1, &name)
	if err != nil {
		return
	}
	list, err := wirings(b, rest)
	if err != nil {
		return
	}

	value = NewPart(vm.NewRegister(s.Machine, name, list...))
	return
}

func (s *Script) alu(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var left, right, out *Part
	err = starlark.UnpackArgs(b.Name(), args, kwargs, "left", &left, "right", &right, "out", &out)
	if err != nil {
		return
	}

	var buses [3]*vm.Bus
	for n, p := range []*Part{left, right, out} {
		buses[n], err = as[*vm.Bus](p, vm.TYPE_BUS)
		if err != nil {
			err = errors.Wrapf(err, "%v", b.Name())
			return
		}
	}

	value = NewPart(vm.NewALU(s.Machine, buses[0], buses[1], buses[2]))
	return
}

func (s *Script) memory(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var name string
	var address starlark.Value
	rest, err := split(b, args, kwargs, 2, &name, &address)
	if err != nil {
		return
	}

	var addr vm.Wiring
	switch v := address.(type) {
	case *Wiring:
		addr = v.wiring
	case *Part:
		var bus *vm.Bus
		bus, err = as[*vm.Bus](v, vm.TYPE_BUS)
		if err != nil {
			err = errors.Wrapf(err, "%v: address", b.Name())
			return
		}
		addr = vm.In(bus)
	default:
		err = errors.Wrapf(ErrNotWiring(address.Type()), "%v: address", b.Name())
		return
	}

	ports, err := wirings(b, rest)
	if err != nil {
		return
	}

	value = NewPart(vm.NewMemory(s.Machine, name, addr, ports...))
	return
}

func (s *Script) phaseCounter(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	err = starlark.UnpackArgs(b.Name(), args, kwargs)
	if err != nil {
		return
	}

	value = NewPart(vm.NewPhaseCounter(s.Machine))
	return
}

func (s *Script) instructionRegister(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var instPart, dataPart *Part
	err = starlark.UnpackArgs(b.Name(), args, kwargs, "inst", &instPart, "data", &dataPart)
	if err != nil {
		return
	}
	inst, err := as[*vm.Bus](instPart, vm.TYPE_BUS)
	if err != nil {
		err = errors.Wrapf(err, "%v: inst", b.Name())
		return
	}
	data, err := as[*vm.Bus](dataPart, vm.TYPE_BUS)
	if err != nil {
		err = errors.Wrapf(err, "%v: data", b.Name())
		return
	}

	value = NewPart(vm.NewInstructionRegister(s.Machine, inst, data))
	return
}

func (s *Script) registerController(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var count int
	var irPart *Part
	rest, err := split(b, args, kwargs, 2, &count, &irPart)
	if err != nil {
		return
	}
	ir, err := as[*vm.InstructionRegister](irPart, vm.TYPE_INSTRUCTION_REGISTER)
	if err != nil {
		err = errors.Wrapf(err, "%v", b.Name())
		return
	}
	if count < 0 {
		err = errors.Errorf("%v: negative register count %d", b.Name(), count)
		return
	}
	list, err := wirings(b, rest)
	if err != nil {
		return
	}

	value = NewPart(vm.NewRegisterController(s.Machine, count, ir, list...))
	return
}

func (s *Script) lookup(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var name string
	err = starlark.UnpackArgs(b.Name(), args, kwargs, "name", &name)
	if err != nil {
		return
	}

	p, ok := s.Component(name)
	if !ok {
		err = errors.Wrapf(ErrPartUnknown(name), "%v", b.Name())
		return
	}

	value = NewPart(p)
	return
}

func (s *Script) input(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var p *Part
	var name string
	var bits int
	err = starlark.UnpackArgs(b.Name(), args, kwargs, "part", &p, "value", &name, "bits", &bits)
	if err != nil {
		return
	}

	s.Controller().Input(p.part, name, bits)
	value = starlark.None
	return
}

func (s *Script) activate(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	list, err := names(b, args, kwargs)
	if err != nil {
		return
	}

	err = s.Controller().ActivateNamed(list...)
	if err != nil {
		err = errors.Wrapf(err, "%v", b.Name())
		return
	}

	value = starlark.None
	return
}

func (s *Script) deactivate(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	list, err := names(b, args, kwargs)
	if err != nil {
		return
	}

	err = s.Controller().DeactivateNamed(list...)
	if err != nil {
		err = errors.Wrapf(err, "%v", b.Name())
		return
	}

	value = starlark.None
	return
}

func (s *Script) clear(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	err = starlark.UnpackArgs(b.Name(), args, kwargs)
	if err != nil {
		return
	}

	s.Controller().ClearActive()
	value = starlark.None
	return
}

// cycle(n=1) runs n cycles and returns the total cycle count.
func (s *Script) cycle(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	n := 1
	err = starlark.UnpackArgs(b.Name(), args, kwargs, "n?", &n)
	if err != nil {
		return
	}

	if n > 0 {
		_, err = s.Run(s.ctx, nil, n)
		if err != nil {
			err = errors.Wrapf(err, "%v", b.Name())
			return
		}
	}

	value = starlark.MakeUint64(s.Cycles())
	return
}

func (s *Script) read(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var p *Part
	err = starlark.UnpackArgs(b.Name(), args, kwargs, "bus", &p)
	if err != nil {
		return
	}
	bus, err := as[*vm.Bus](p, vm.TYPE_BUS)
	if err != nil {
		err = errors.Wrapf(err, "%v", b.Name())
		return
	}

	value = starlark.MakeInt(int(bus.Read()))
	return
}

func (s *Script) write(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var p *Part
	var v int
	err = starlark.UnpackArgs(b.Name(), args, kwargs, "bus", &p, "value", &v)
	if err != nil {
		return
	}
	bus, err := as[*vm.Bus](p, vm.TYPE_BUS)
	if err != nil {
		err = errors.Wrapf(err, "%v", b.Name())
		return
	}
	w, err := word(v)
	if err != nil {
		err = errors.Wrapf(err, "%v", b.Name())
		return
	}

	bus.Write(w)
	value = starlark.None
	return
}

// value(part, name="") returns one display value of part, or all of them
// as a dict when name is empty.
func (s *Script) value(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var p *Part
	var name string
	err = starlark.UnpackArgs(b.Name(), args, kwargs, "part", &p, "name?", &name)
	if err != nil {
		return
	}

	if name == "" {
		value, err = valueDict(p.part)
		return
	}

	for key, v := range p.part.Values() {
		if key == name {
			value = starlark.MakeInt(int(v))
			return
		}
	}

	err = errors.Wrapf(ErrValueUnknown(name), "%v: %v", b.Name(), p.part.Name())
	return
}

func (s *Script) set(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var p *Part
	var v int
	err = starlark.UnpackArgs(b.Name(), args, kwargs, "register", &p, "value", &v)
	if err != nil {
		return
	}
	w, err := word(v)
	if err != nil {
		err = errors.Wrapf(err, "%v", b.Name())
		return
	}

	switch reg := p.part.(type) {
	case *vm.Register:
		reg.Set(w)
	case *vm.BankRegister:
		reg.Set(w)
	default:
		err = errors.Wrapf(&ErrPartType{Name: p.part.Name(), Want: vm.TYPE_REGISTER}, "%v", b.Name())
		return
	}

	value = starlark.None
	return
}

func (s *Script) peek(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var addr int
	err = starlark.UnpackArgs(b.Name(), args, kwargs, "address", &addr)
	if err != nil {
		return
	}
	mem := s.Memory()
	if mem == nil {
		err = errors.Wrapf(ErrNoMemory, "%v", b.Name())
		return
	}
	a, err := word(addr)
	if err != nil {
		err = errors.Wrapf(err, "%v", b.Name())
		return
	}

	value = starlark.MakeInt(int(mem.Read(a)))
	return
}

func (s *Script) poke(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var addr, v int
	err = starlark.UnpackArgs(b.Name(), args, kwargs, "address", &addr, "value", &v)
	if err != nil {
		return
	}
	mem := s.Memory()
	if mem == nil {
		err = errors.Wrapf(ErrNoMemory, "%v", b.Name())
		return
	}
	a, err := word(addr)
	if err != nil {
		err = errors.Wrapf(err, "%v: address", b.Name())
		return
	}
	w, err := word(v)
	if err != nil {
		err = errors.Wrapf(err, "%v: value", b.Name())
		return
	}

	mem.Write(a, w)
	value = starlark.None
	return
}

func (s *Script) flag(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var name string
	err = starlark.UnpackArgs(b.Name(), args, kwargs, "name", &name)
	if err != nil {
		return
	}

	index, ok := s.Flags().Index(name)
	if !ok {
		err = errors.Wrapf(ErrFlagUnknown(name), "%v", b.Name())
		return
	}

	value = starlark.Bool(s.Flags().Get(index))
	return
}

func (s *Script) commands(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	err = starlark.UnpackArgs(b.Name(), args, kwargs)
	if err != nil {
		return
	}

	value = commandList(s.Controller().Commands())
	return
}

func (s *Script) log(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var msg string
	err = starlark.UnpackArgs(b.Name(), args, kwargs, "msg", &msg)
	if err != nil {
		return
	}

	s.Log().Info(msg)
	value = starlark.None
	return
}
