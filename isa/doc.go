// Package isa implements the KAPU8 instruction set: the nine instruction
// kinds, their bit-exact byte layouts, and the listing of an assembled or
// disassembled program.
//
// Every instruction starts with a 4-bit opcode nibble in the high bits of its
// first byte, followed by fields packed MSB first. The only exception is SYNC,
// which reuses the WAIT opcode with the reserved low nibble 0b1111. Each kind
// has a fixed size, so instruction boundaries inside a program are recovered
// by classifying the byte at an address and skipping the kind's size.
//
// The byte encoding is the only contract shared by the assembler and the
// interpreter.
package isa
