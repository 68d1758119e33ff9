package emulator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DHKold/konsolid8-Studio/apu"
	"github.com/DHKold/konsolid8-Studio/isa"
	"github.com/DHKold/konsolid8-Studio/kaa"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := New(apu.DefaultConfig())

	assert.False(emu.Verbose)
	assert.NotNil(emu.Apu)
	assert.Equal(0, len(emu.Program.Opcodes))
	assert.Equal(0, emu.LineNo())

	// An empty program idles at the midpoint.
	samples, err := emu.Run(32)
	assert.NoError(err)
	assert.Equal([]apu.Sample{{128, 128}, {128, 128}}, samples)
}

func doAssemble(emu *Emulator, program []string, t *testing.T) {
	err := emu.Assemble(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatalf("%v", err)
	}
}

func TestEmulator_LineNo(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"# header",
		"SET REG_CHAN_ENABLED, 0b11",
		"SETPHASE CHAN1, PHASE0, 10, 5, 2",
		"",
		"NOOP",
		"JUMP 0",
	}

	emu := New(apu.DefaultConfig())
	doAssemble(emu, program, t)

	for _, op := range emu.Program.Opcodes {
		assert.Equal(op.LineNo, emu.LineNo())
		assert.Equal(op.Address, emu.Pc())
		here := program[emu.LineNo()-1]
		_, _, err := emu.Tick()
		assert.NoError(err, here)
	}

	assert.Equal(2, emu.LineNo())
}

func TestEmulator_Load(t *testing.T) {
	assert := assert.New(t)

	data, err := kaa.Compile("SET 0, 1\nWAIT 0\n")
	assert.NoError(err)

	emu := New(apu.DefaultConfig())
	emu.Load(data)
	assert.Equal(data, emu.Binary())
	assert.Equal(2, len(emu.Program.Opcodes))
	assert.Equal(isa.SetRegister{Register: 0, Value: 1}, emu.Program.Opcodes[0].Instruction)

	samples, err := emu.Run(apu.SAMPLING_RATIO)
	assert.NoError(err)
	assert.Equal([]apu.Sample{{0, 0}}, samples)
}

func TestEmulator_LoadGarbage(t *testing.T) {
	assert := assert.New(t)

	// The trailing byte is never reached.
	emu := New(apu.DefaultConfig())
	emu.Verbose = true
	emu.Load([]byte{0x00, 0x50, 0x00, 0xff})
	assert.Equal(2, len(emu.Program.Opcodes))

	_, err := emu.Run(100)
	assert.NoError(err)
}

func TestEmulator_RuntimeError(t *testing.T) {
	assert := assert.New(t)

	emu := New(apu.DefaultConfig())
	emu.Load([]byte{0x00, 0x00, 0x50, 0x04, 0x90})
	assert.Equal(3, len(emu.Program.Opcodes))

	samples, err := emu.Run(10)
	assert.ErrorIs(err, isa.ErrOpcodeUnknown)
	assert.Equal(1, len(samples))

	var er *ErrRuntime
	assert.True(errors.As(err, &er))
	assert.Equal(4, er.Address)
	assert.Equal(0, er.LineNo)
	assert.Contains(er.Error(), "@0x004")

	emu.Load([]byte{0x00, 0x20, 0x00})
	_, err = emu.Run(10)
	assert.ErrorIs(err, isa.ErrTruncated)
	assert.True(errors.As(err, &er))
	assert.Equal(1, er.Address)
}

func TestEmulator_RuntimeErrorLine(t *testing.T) {
	assert := assert.New(t)

	emu := New(apu.DefaultConfig())
	doAssemble(emu, []string{
		"NOOP",
		"NOOP",
		"JUMP 1",
	}, t)

	// Corrupt the instruction at line 2.
	emu.binary[1] = 0xa0
	_, err := emu.Run(3)

	var er *ErrRuntime
	assert.True(errors.As(err, &er))
	assert.Equal(2, er.LineNo)
	assert.Equal(1, er.Address)
}

func TestEmulator_SnapshotResume(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"SETPHASE CHAN_ALL, PHASE0, 5, 30, 4",
		"SETPHASE CHAN_ALL, PHASE1, 3, -40, 3",
		"SETCHANNEL CHAN0, REG_PHASE_IDS, 0x110",
		"SETCHANNEL CHAN3, REG_PHASE_IDS, 0x011",
		"SET REG_CHAN_ENABLED, 0b1001",
		"SET REG_CHAN_LEFT, 0b0001",
		"SET REG_CHAN_RIGHT, 0b1000",
		"SYNC 3",
		"JUMP 0x016",
	}

	emu := New(apu.DefaultConfig())
	doAssemble(emu, program, t)

	_, err := emu.Run(123)
	assert.NoError(err)
	snapshot := emu.Snapshot()

	expected, err := emu.Run(1000)
	assert.NoError(err)

	emu.Reset()
	emu.Resume(snapshot)
	actual, err := emu.Run(1000)
	assert.NoError(err)

	assert.Equal(expected, actual)
}
