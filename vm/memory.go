// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"iter"
)

// MEMORY_SIZE is the number of 16-bit words of a Memory.
const MEMORY_SIZE = 1 << 16

// Memory is a flat 64K word store with one address port and any number of
// data ports.
type Memory struct {
	Component

	address *Bus
	data    [MEMORY_SIZE]uint16
}

var _ Part = (*Memory)(nil)

// NewMemory creates a memory addressed by address.
//
// The address wiring should be IN; any other direction is reported and the
// bus is used as the address anyway. Each output capable port adds a
// "<name>(<address>) -> <port>" read command, each input capable port a
// "<port> -> <name>(<address>)" write command. Both sample the address bus
// when they run.
func NewMemory(m *Machine, name string, address Wiring, ports ...Wiring) (mem *Memory) {
	mem = &Memory{
		address: address.Bus,
	}
	m.attach(mem, name, TYPE_MEMORY)

	if address.State != IN {
		mem.logWarn(f("%v: address port %v must be wired %v, not %v", name, address.Bus.Name(), IN, address.State))
	}

	addr := address.Bus
	for _, port := range ports {
		bus := port.Bus
		if port.State.CanOutput() {
			mem.AddCommand(&Command{
				Name:    fmt.Sprintf("%v(%v) -> %v", name, addr.Name(), bus.Name()),
				Depends: []Part{mem, addr},
				Changes: []Part{bus},
				action:  func() { bus.Write(mem.Read(addr.Read())) },
			})
		}

		if port.State.CanInput() {
			mem.AddCommand(&Command{
				Name:    fmt.Sprintf("%v -> %v(%v)", bus.Name(), name, addr.Name()),
				Depends: []Part{addr, bus},
				Changes: []Part{mem},
				action:  func() { mem.Write(addr.Read(), bus.Read()) },
			})
		}
	}

	m.memory = mem

	return
}

// Address returns the address bus.
func (mem *Memory) Address() *Bus {
	return mem.address
}

// Read returns the word at address.
func (mem *Memory) Read(address uint16) uint16 {
	return mem.data[address]
}

// Write stores value at address.
func (mem *Memory) Write(address uint16, value uint16) {
	mem.data[address] = value
	mem.changed()
}

// Load reads big-endian words from r into memory, starting at origin.
func (mem *Memory) Load(r io.Reader, origin uint16) (n int, err error) {
	defer func() {
		if n > 0 {
			mem.logInfo(f("%v: loaded %d words at 0x%04x", mem.Name(), n, origin))
			mem.changed()
		}
	}()

	br := bufio.NewReader(r)
	var word [2]byte
	for addr := int(origin); ; addr++ {
		_, err = io.ReadFull(br, word[:])
		if errors.Is(err, io.EOF) {
			err = nil
			return
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			err = ErrImageOdd
			return
		}
		if err != nil {
			return
		}
		if addr >= MEMORY_SIZE {
			err = ErrImageSize
			return
		}
		mem.data[addr] = binary.BigEndian.Uint16(word[:])
		n++
	}
}

// Dump writes count big-endian words starting at origin to w. The dump
// stops at the end of memory.
func (mem *Memory) Dump(w io.Writer, origin uint16, count int) (err error) {
	end := min(int(origin)+count, MEMORY_SIZE)

	bw := bufio.NewWriter(w)
	for addr := int(origin); addr < end; addr++ {
		err = binary.Write(bw, binary.BigEndian, mem.data[addr])
		if err != nil {
			return
		}
	}

	err = bw.Flush()
	return
}

func (mem *Memory) Values() iter.Seq2[string, uint16] {
	return func(yield func(string, uint16) bool) {
		address := mem.address.Read()
		_ = yield("Address", address) &&
			yield("Data", mem.data[address])
	}
}
