// Package emulator runs KAPU8 programs with source-level diagnostics.
package emulator

import (
	"io"
	"log"
	"slices"

	"github.com/DHKold/konsolid8-Studio/apu"
	"github.com/DHKold/konsolid8-Studio/isa"
	"github.com/DHKold/konsolid8-Studio/kaa"
)

// Emulator state. APU + program listing.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*apu.Apu              // Reference to the APU simulation.
	Program  *isa.Program // Reference to the currently running program listing.

	binary []byte
}

// New creates a new emulator.
func New(cfg apu.Config) (emu *Emulator) {
	emu = &Emulator{
		Apu:     apu.New(cfg),
		Program: &isa.Program{},
	}

	return
}

// Assemble parses KAA source as the running program, and resets the APU.
func (emu *Emulator) Assemble(input io.Reader) (err error) {
	asm := &kaa.Assembler{Verbose: emu.Verbose}
	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	binary, err := prog.Binary()
	if err != nil {
		return
	}

	emu.Program = prog
	emu.binary = binary
	emu.Reset()

	return
}

// Load sets raw bytecode as the running program, and resets the APU.
//
// The listing is rebuilt by disassembly. Bytes that do not disassemble are
// still loaded, as they may never be executed.
func (emu *Emulator) Load(data []byte) {
	prog, err := isa.Disassemble(data)
	if err != nil && emu.Verbose {
		log.Printf("emulator: listing stops at %v", err)
	}

	emu.Program = prog
	emu.binary = slices.Clone(data)
	emu.Reset()
}

// Binary returns the running bytecode.
func (emu *Emulator) Binary() []byte {
	return emu.binary
}

// Reset the APU to its power-on state.
func (emu *Emulator) Reset() {
	emu.Apu.Verbose = emu.Verbose
	emu.Apu.Reset()
}

// LineNo returns the line number of the opcode at the program counter.
func (emu *Emulator) LineNo() int {
	op := emu.Program.Debug(emu.Apu.Pc())
	if op == nil {
		return 0
	}

	return op.LineNo
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (sample apu.Sample, emitted bool, err error) {
	emu.Apu.Verbose = emu.Verbose

	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: emu.LineNo(), Address: emu.Apu.Pc(), Err: err}
		}
	}()

	sample, emitted, err = emu.Apu.Tick(emu.binary)

	return
}

// Run ticks the program, and returns the emitted samples.
func (emu *Emulator) Run(ticks int) (samples []apu.Sample, err error) {
	for range ticks {
		var sample apu.Sample
		var emitted bool
		sample, emitted, err = emu.Tick()
		if err != nil {
			return
		}
		if emitted {
			samples = append(samples, sample)
		}
	}

	return
}

// Snapshot returns the APU state.
func (emu *Emulator) Snapshot() apu.State {
	return emu.Apu.State()
}

// Resume continues from a snapshot of the running program.
func (emu *Emulator) Resume(state apu.State) {
	emu.Apu.Restore(state)
}
