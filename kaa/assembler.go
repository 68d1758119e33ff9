// Package kaa assembles KAA source text into KAPU8 bytecode.
package kaa

import (
	"io"
	"log"
	"strings"

	"github.com/DHKold/konsolid8-Studio/isa"
)

// generator builds an instruction from its parameters.
type generator struct {
	Arity int
	Make  func(p []int) (isa.Instruction, error)
}

func wrap[T isa.Instruction](inst T, err error) (isa.Instruction, error) {
	if err != nil {
		return nil, err
	}
	return inst, nil
}

// generators maps mnemonics to instruction constructors.
var generators = map[string]generator{
	"NOOP": {0, func(p []int) (isa.Instruction, error) { return wrap(isa.NewWait(0)) }},
	"WAIT": {1, func(p []int) (isa.Instruction, error) { return wrap(isa.NewWait(p[0])) }},
	"SYNC": {1, func(p []int) (isa.Instruction, error) { return wrap(isa.NewSync(p[0])) }},
	"SET":  {2, func(p []int) (isa.Instruction, error) { return wrap(isa.NewSetRegister(p[0], p[1])) }},
	"SETPHASE": {5, func(p []int) (isa.Instruction, error) {
		return wrap(isa.NewSetPhase(p[0], p[1], p[2], p[3], p[4]))
	}},
	"SETCHANNEL": {3, func(p []int) (isa.Instruction, error) {
		return wrap(isa.NewSetChannelRegister(p[0], p[1], p[2]))
	}},
	"LOOP": {2, func(p []int) (isa.Instruction, error) { return wrap(isa.NewLoop(p[0], p[1])) }},
	"JUMP": {1, func(p []int) (isa.Instruction, error) { return wrap(isa.NewJump(p[0])) }},
	"SAVE": {1, func(p []int) (isa.Instruction, error) { return wrap(isa.NewSave(p[0])) }},
	"LOAD": {1, func(p []int) (isa.Instruction, error) { return wrap(isa.NewLoad(p[0])) }},
}

// Generate builds the instruction of a statement.
func Generate(stmt Statement) (inst isa.Instruction, err error) {
	gen, ok := generators[stmt.Mnemonic]
	if !ok {
		err = ErrMnemonicUnknown
		return
	}

	if len(stmt.Parameters) != gen.Arity {
		err = ErrArity{Mnemonic: stmt.Mnemonic, Want: gen.Arity, Got: len(stmt.Parameters)}
		return
	}

	return gen.Make(stmt.Parameters)
}

// Assembler translates KAA source into a program listing.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.
}

// Parse parses an input stream into a Program. Any error aborts the whole
// input, and is reported as an ErrSyntax.
func (asm *Assembler) Parse(input io.Reader) (prog *isa.Program, err error) {
	data, err := io.ReadAll(input)
	if err != nil {
		return
	}

	source := string(data)
	lines := strings.Split(source, "\n")

	var lineno int
	defer func() {
		if err != nil {
			var line string
			if lineno > 0 && lineno <= len(lines) {
				line = strings.TrimSpace(lines[lineno-1])
			}
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
			prog = nil
		}
	}()

	prog = &isa.Program{}
	address := 0

	for stmt, stmt_err := range Statements(NewLexer(source).Tokens()) {
		lineno = stmt.LineNo
		if stmt_err != nil {
			err = stmt_err
			return
		}

		var inst isa.Instruction
		inst, err = Generate(stmt)
		if err != nil {
			return
		}

		if asm.Verbose {
			log.Printf("kaa: %d: 0x%03x: %v", lineno, address, inst)
		}

		prog.Opcodes = append(prog.Opcodes, isa.Opcode{
			LineNo:      lineno,
			Address:     address,
			Words:       stmt.Words,
			Instruction: inst,
		})
		address += inst.Kind().Size()
	}

	return
}

// Compile assembles KAA source text into bytecode.
func Compile(source string) (data []byte, err error) {
	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(source))
	if err != nil {
		return
	}

	return prog.Binary()
}
