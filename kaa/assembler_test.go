package kaa

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DHKold/konsolid8-Studio/isa"
)

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Opcodes))

	prog, err = asm.Parse(strings.NewReader("\n# nothing\n\n"))
	assert.NoError(err)
	assert.Equal(0, len(prog.Opcodes))
}

func TestAssembler_Opcodes(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"# envelope demo",
		"SET REG_CHAN_ENABLED, 0b1",
		"",
		"setphase CHAN0, PHASE3, 100, -50, 10",
		"LOOP 3, 2",
		"  wait 2",
		"  NOOP",
	}

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	expected := []isa.Opcode{
		{LineNo: 2, Address: 0, Words: []string{"SET", "REG_CHAN_ENABLED", "0b1"},
			Instruction: isa.SetRegister{Register: isa.REG_CHAN_ENABLED, Value: 1}},
		{LineNo: 4, Address: 2, Words: []string{"SETPHASE", "CHAN0", "PHASE3", "100", "-50", "10"},
			Instruction: isa.SetPhase{Channel: 0, Phase: 3, Length: 100, Height: -50, Count: 10}},
		{LineNo: 5, Address: 7, Words: []string{"LOOP", "3", "2"},
			Instruction: isa.Loop{Count: 3, Length: 2}},
		{LineNo: 6, Address: 9, Words: []string{"WAIT", "2"},
			Instruction: isa.Wait{Count: 2}},
		{LineNo: 7, Address: 10, Words: []string{"NOOP"},
			Instruction: isa.Wait{}},
	}
	assert.Equal(expected, prog.Opcodes)

	data, err := prog.Binary()
	assert.NoError(err)
	assert.Equal([]byte{
		0x10, 0x01,
		0x20, 0x30, 0x64, 0x32, 0x0a,
		0x40, 0xc2,
		0x02,
		0x00,
	}, data)
}

func TestCompile(t *testing.T) {
	table := [...]struct {
		source string
		data   []byte
	}{
		{"SETPHASE 0, 0, 100, 50, 9", []byte{0x20, 0x08, 0x64, 0x32, 0x09}},
		{"LOOP 3, 16", []byte{0x40, 0xd0}},
		{"SYNC 1e3", []byte{0x0f, 0xe8, 0x03}},
		{"SETCHANNEL CHAN_ALL, REG_PHASE_IDS, 0x0f0", []byte{0x38, 0x00, 0xf0}},
		{"JUMP 0x123\nSAVE CHAN1\nLOAD CHAN1", []byte{0x51, 0x23, 0x61, 0x71}},
		{"SET 0, 1\nWAIT 0\n", []byte{0x10, 0x01, 0x00}},
	}

	for _, entry := range table {
		assert := assert.New(t)
		data, err := Compile(entry.source)
		assert.NoError(err, entry.source)
		assert.Equal(entry.data, data, entry.source)
	}
}

func TestCompile_Errors(t *testing.T) {
	table := [...]struct {
		source string
		lineno int
		err    error
	}{
		{"WAIT 15", 1, isa.ErrFieldRange},
		{"NOOP\nFROB 1", 2, ErrMnemonicUnknown},
		{"NOOP\n\nWAIT", 3, ErrParameterCount},
		{"SET 1, 2, 3", 1, ErrParameterCount},
		{"SET 1,", 1, ErrParameter},
		{"SET 1 2", 1, ErrSeparator},
		{", NOOP", 1, ErrStatement},
		{"WAIT NOOP", 1, ErrParameter},
		{"JUMP foo", 1, ErrParameter},
		{"NOOP\nWAIT @", 2, ErrCharacter},
		{"SET 0, 0x1_0000_0000", 1, ErrNumber},
		{"SETPHASE CHAN0, PHASE0, 2048, 1, 1", 1, isa.ErrFieldRange},
	}

	for _, entry := range table {
		assert := assert.New(t)

		_, err := Compile(entry.source)
		assert.ErrorIs(err, entry.err, entry.source)

		var es ErrSyntax
		if assert.True(errors.As(err, &es), entry.source) {
			assert.Equal(entry.lineno, es.LineNo, entry.source)
		}
	}
}

func TestCompile_AbortsWholeInput(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader("NOOP\nWAIT 1\nBAD\nNOOP\n"))
	assert.Error(err)
	assert.Nil(prog)

	var es ErrSyntax
	assert.True(errors.As(err, &es))
	assert.Equal("BAD", es.Line)
}

func TestReassemble(t *testing.T) {
	assert := assert.New(t)

	data := []byte{
		0x10, 0xff,
		0x11, 0x01,
		0x12, 0x02,
		0x27, 0x3f, 0xff, 0x10, 0x20,
		0x2f, 0x00, 0x10, 0x80, 0x01,
		0x38, 0x0a, 0x21,
		0x3c, 0x45, 0x67,
		0x44, 0xc8,
		0x0f, 0x00, 0x01,
		0x0e,
		0x00,
		0x5a, 0xbc,
		0x68, 0x77,
		0x19, 0x00,
	}

	prog, err := isa.Disassemble(data)
	assert.NoError(err)

	asm := &Assembler{}
	reprog, err := asm.Parse(strings.NewReader(prog.String()))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	redata, err := reprog.Binary()
	assert.NoError(err)
	assert.Equal(data, redata)
}
