package script

import (
	"fmt"

	"go.starlark.net/starlark"

	"github.com/ezrec/starfish/vm"
)

// Part is the Starlark value of a machine part.
type Part struct {
	part vm.Part
}

var _ starlark.HasAttrs = (*Part)(nil)

// NewPart wraps p.
func NewPart(p vm.Part) *Part {
	return &Part{part: p}
}

// Part returns the wrapped part.
func (p *Part) Part() vm.Part {
	return p.part
}

func (p *Part) String() string {
	return fmt.Sprintf("<%v %q>", p.part.Type(), p.part.Name())
}

func (p *Part) Type() string         { return "part" }
func (p *Part) Freeze()              {}
func (p *Part) Truth() starlark.Bool { return starlark.True }

func (p *Part) Hash() (uint32, error) {
	return uint32(p.part.ID()), nil
}

var partAttrNames = []string{"commands", "id", "name", "type", "values"}

func (p *Part) AttrNames() []string {
	return partAttrNames
}

func (p *Part) Attr(name string) (value starlark.Value, err error) {
	switch name {
	case "name":
		value = starlark.String(p.part.Name())
	case "type":
		value = starlark.String(p.part.Type())
	case "id":
		value = starlark.MakeInt(p.part.ID())
	case "commands":
		value = commandList(p.part.Commands())
	case "values":
		value, err = valueDict(p.part)
	}
	return
}

func commandList(cmds []*vm.Command) *starlark.List {
	elems := make([]starlark.Value, 0, len(cmds))
	for _, cmd := range cmds {
		elems = append(elems, starlark.String(cmd.Name))
	}
	return starlark.NewList(elems)
}

func valueDict(p vm.Part) (dict *starlark.Dict, err error) {
	dict = starlark.NewDict(0)
	for name, value := range p.Values() {
		err = dict.SetKey(starlark.String(name), starlark.MakeInt(int(value)))
		if err != nil {
			return
		}
	}
	return
}

// as returns the part as a T, or an ErrPartType naming want.
func as[T vm.Part](p *Part, want string) (t T, err error) {
	t, ok := p.part.(T)
	if !ok {
		err = &ErrPartType{Name: p.part.Name(), Want: want}
	}
	return
}

// Wiring is the Starlark value of a bus wiring.
type Wiring struct {
	wiring vm.Wiring
}

var _ starlark.Value = (*Wiring)(nil)

func (w *Wiring) String() string {
	return fmt.Sprintf("%v(%v)", w.wiring.State, w.wiring.Bus.Name())
}

func (w *Wiring) Type() string         { return "wiring" }
func (w *Wiring) Freeze()              {}
func (w *Wiring) Truth() starlark.Bool { return starlark.True }

func (w *Wiring) Hash() (uint32, error) {
	return uint32(w.wiring.Bus.ID())<<2 | uint32(w.wiring.State), nil
}
