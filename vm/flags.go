package vm

import (
	"fmt"
	"iter"
)

type flag struct {
	name  string
	value bool
}

// Flags is the ordered set of named status bits shared by the machine.
type Flags struct {
	Component

	flags []flag
}

var _ Part = (*Flags)(nil)

func newFlags(m *Machine) (fl *Flags) {
	fl = &Flags{}
	m.attach(fl, "Flags", TYPE_FLAGS)

	return
}

// Add declares a new flag and returns its index, which stays valid for the
// life of the machine. Each flag also gets "Set Flag <name>" and
// "Clear Flag <name>" commands.
func (fl *Flags) Add(name string, value bool) (index int) {
	index = len(fl.flags)
	fl.flags = append(fl.flags, flag{name: name, value: value})

	fl.AddCommand(&Command{
		Name:    fmt.Sprintf("Set Flag %v", name),
		Changes: []Part{fl},
		action:  func() { fl.Update(index, true) },
	})
	fl.AddCommand(&Command{
		Name:    fmt.Sprintf("Clear Flag %v", name),
		Changes: []Part{fl},
		action:  func() { fl.Update(index, false) },
	})

	return
}

// Update sets the flag at index.
func (fl *Flags) Update(index int, value bool) {
	fl.flags[index].value = value
	fl.changed()
}

// Get returns the flag at index.
func (fl *Flags) Get(index int) bool {
	return fl.flags[index].value
}

// Index returns the index of the first flag called name.
func (fl *Flags) Index(name string) (index int, ok bool) {
	for n, fg := range fl.flags {
		if fg.name == name {
			return n, true
		}
	}
	return
}

// Len returns the number of declared flags.
func (fl *Flags) Len() int {
	return len(fl.flags)
}

// Value packs the flags, first declared in bit 0. Flags past the 16th are
// not represented.
func (fl *Flags) Value() (value uint16) {
	for n, fg := range fl.flags {
		if n >= 16 {
			break
		}
		if fg.value {
			value |= 1 << n
		}
	}
	return
}

func (fl *Flags) Values() iter.Seq2[string, uint16] {
	return func(yield func(string, uint16) bool) {
		for _, fg := range fl.flags {
			var bit uint16
			if fg.value {
				bit = 1
			}
			if !yield(fg.name, bit) {
				return
			}
		}
		yield("Value", fl.Value())
	}
}
