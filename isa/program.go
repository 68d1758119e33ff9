package isa

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

// Opcode is an instruction placed in a program.
type Opcode struct {
	LineNo      int         // Source line number.
	Address     int         // Byte address of the first instruction byte.
	Words       []string    // Source words, if assembled.
	Instruction Instruction // Decoded instruction.
}

// Size returns the encoded size of the opcode.
func (op *Opcode) Size() int {
	if op.Instruction == nil {
		return 0
	}
	return op.Instruction.Kind().Size()
}

// Program is a listing of opcodes, in address order.
type Program struct {
	Opcodes []Opcode
}

// Debug returns the opcode covering an address, or nil.
func (prog *Program) Debug(address int) (op *Opcode) {
	for n := range prog.Opcodes {
		at := &prog.Opcodes[n]
		if address >= at.Address && address < at.Address+at.Size() {
			op = at
			break
		}
	}

	return
}

// Len returns the length of the program's bytecode.
func (prog *Program) Len() int {
	if len(prog.Opcodes) == 0 {
		return 0
	}
	last := &prog.Opcodes[len(prog.Opcodes)-1]
	return last.Address + last.Size()
}

// Instructions iterates the program's instructions by address.
func (prog *Program) Instructions() iter.Seq2[int, Instruction] {
	return func(yield func(address int, inst Instruction) bool) {
		for _, op := range prog.Opcodes {
			if !yield(op.Address, op.Instruction) {
				return
			}
		}
	}
}

// Binary encodes the program as bytecode.
func (prog *Program) Binary() (data []byte, err error) {
	data = make([]byte, 0, prog.Len())
	for address, inst := range prog.Instructions() {
		data, err = Append(data, inst)
		if err != nil {
			err = errors.Join(err, ErrOpcode{Kind: inst.Kind()})
			err = fmt.Errorf("0x%03x: %w", address, err)
			return
		}
	}

	return
}

// String renders the program as assembler source, one instruction per line,
// annotated with addresses and bytes.
func (prog *Program) String() string {
	var sb strings.Builder
	for _, op := range prog.Opcodes {
		code, _ := Encode(op.Instruction)
		fmt.Fprintf(&sb, "%-36v # 0x%03x: % x\n", op.Instruction, op.Address, code)
	}
	return sb.String()
}

// Disassemble rebuilds a listing from bytecode. Line numbers are the
// 1-based instruction index. On a decode failure, the listing decoded so
// far is returned with the error.
func Disassemble(data []byte) (prog *Program, err error) {
	prog = &Program{}

	for address := 0; address < len(data); {
		var inst Instruction
		inst, err = Fetch(data, address)
		if err != nil {
			err = fmt.Errorf("0x%03x: %w", address, err)
			return
		}

		prog.Opcodes = append(prog.Opcodes, Opcode{
			LineNo:      len(prog.Opcodes) + 1,
			Address:     address,
			Instruction: inst,
		})
		address += inst.Kind().Size()
	}

	return
}
