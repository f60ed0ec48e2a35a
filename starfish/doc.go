// Package starfish builds the Starfish VM, a preset machine wiring every vm
// part into a working CPU datapath.
//
// Buses:
//
//	Data Bus         general purpose transfers
//	ALU Left Bus     left ALU operand
//	ALU Right Bus    right ALU operand
//	Address Bus      memory address
//	Instruction Bus  memory to instruction register
//
// Registers A and B feed the ALU operands, register P drives the address
// bus. The register bank R0..R7 is selected by the decoded instruction
// arguments. The microcode address is the phase counter (low bits) followed
// by the decoded opcode.
package starfish
