// Package vm implements the Starfish machine: a small educational CPU built
// from discrete logic components driven by a microcode command scheduler.
//
// A Machine owns a Clock, a Controller and the shared Flags register. Parts
// (buses, registers, the ALU, memory, the phase counter and the instruction
// decode helpers) register themselves with the Machine when constructed, and
// contribute named Commands to the Controller. Each Command declares the
// parts it reads (Depends) and writes (Changes).
//
// The user selects the active commands for the next tick. On every change of
// the active set the Controller rebuilds a dependency graph, with an edge
// A->B whenever A changes a part that B depends on. During the execute phase
// of the clock the active commands run serially in topological order; if the
// graph has a cycle nothing runs for that tick.
//
// Bus writes synchronously re-evaluate combinational parts (the ALU) wired to
// the bus, so the ALU output settles within the same tick.
package vm
