package kaa

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func collect(source string) (tokens []Token, err error) {
	for tok, tok_err := range NewLexer(source).Tokens() {
		if tok_err != nil {
			err = tok_err
			return
		}
		tokens = append(tokens, tok)
	}
	return
}

func TestParseInteger(t *testing.T) {
	table := [...]struct {
		word  string
		value int
		ok    bool
	}{
		{"0", 0, true},
		{"42", 42, true},
		{"+7", 7, true},
		{"-50", -50, true},
		{"1e3", 1000, true},
		{"-2e2", -200, true},
		{"0x1F", 31, true},
		{"0X_ff_ff", 0xffff, true},
		{"0o17", 15, true},
		{"0b1010_0101", 0xa5, true},
		{"0x", 0, false},
		{"0b102", 0, false},
		{"0o_7", 0, false},
		{"1e", 0, false},
		{"12a", 0, false},
		{"-", 0, false},
		{"1e20", 0, false},
	}

	for _, entry := range table {
		assert := assert.New(t)
		value, err := parseInteger(entry.word)
		if entry.ok {
			assert.NoError(err, entry.word)
			assert.Equal(entry.value, value, entry.word)
		} else {
			assert.ErrorIs(err, ErrNumber, entry.word)
		}
	}
}

func TestLexer(t *testing.T) {
	assert := assert.New(t)

	source := "\n\n  setphase chan_all, Phase15, 0x10, -5, 1 # comment\n\n# only\n\nNOOP\nfoo"

	tokens, err := collect(source)
	assert.NoError(err)

	type brief struct {
		Class  TokenClass
		LineNo int
		Value  int
	}
	var got []brief
	for _, tok := range tokens {
		got = append(got, brief{tok.Class, tok.LineNo, tok.Value})
	}

	expected := []brief{
		{TOKEN_MNEMONIC, 3, 0},
		{TOKEN_CHANNEL, 3, 8},
		{TOKEN_COMMA, 3, 0},
		{TOKEN_PHASE, 3, 15},
		{TOKEN_COMMA, 3, 0},
		{TOKEN_INTEGER, 3, 16},
		{TOKEN_COMMA, 3, 0},
		{TOKEN_INTEGER, 3, -5},
		{TOKEN_COMMA, 3, 0},
		{TOKEN_INTEGER, 3, 1},
		{TOKEN_EOL, 3, 0},
		{TOKEN_MNEMONIC, 7, 0},
		{TOKEN_EOL, 7, 0},
		{TOKEN_IDENTIFIER, 8, 0},
		{TOKEN_EOL, 8, 0},
	}
	assert.Equal(expected, got)
	assert.Equal("SETPHASE", tokens[0].Text)
}

func TestLexer_Restartable(t *testing.T) {
	assert := assert.New(t)

	lex := NewLexer("WAIT 1\nWAIT 2\n")

	first, err := collect(lex.source)
	assert.NoError(err)

	var second []Token
	for tok := range lex.Tokens() {
		second = append(second, tok)
	}
	assert.Equal(first, second)

	// Early exit, then a full range.
	for range lex.Tokens() {
		break
	}
	var third []Token
	for tok := range lex.Tokens() {
		third = append(third, tok)
	}
	assert.Equal(first, third)
}

func TestLexer_Errors(t *testing.T) {
	table := [...]struct {
		source string
		lineno int
	}{
		{"WAIT 1\nWAIT $3\n", 2},
		{"\n\nSET 0, 0xZZ", 3},
		{"JUMP foo-bar", 1},
		{"LOOP 1; 2", 1},
	}

	for _, entry := range table {
		assert := assert.New(t)
		tokens, err := collect(entry.source)
		assert.Error(err, entry.source)

		var et ErrToken
		if assert.ErrorAs(err, &et) {
			assert.Equal(entry.lineno, et.Token.LineNo, entry.source)
		}
		_ = tokens
	}
}

func TestRegisterSymbols(t *testing.T) {
	assert := assert.New(t)

	tokens, err := collect("REG_CHAN_ENABLED REG_CHAN_LEFT REG_CHAN_RIGHT REG_PHASE_IDS CHAN7")
	assert.NoError(err)

	var values []int
	for _, tok := range tokens[:4] {
		assert.Equal(TOKEN_REGISTER, tok.Class)
		values = append(values, tok.Value)
	}
	assert.Equal([]int{0, 1, 2, 0}, values)
	assert.Equal(TOKEN_CHANNEL, tokens[4].Class)
	assert.Equal(7, tokens[4].Value)
}

func TestSymbols(t *testing.T) {
	assert := assert.New(t)

	names := slices.Collect(Symbols())
	assert.Contains(names, "CHAN0")
	assert.Contains(names, "CHAN_ALL")
	assert.Contains(names, "PHASE15")
	assert.Contains(names, "REG_PHASE_IDS")
	assert.Contains(names, "SETPHASE")
	assert.NotContains(names, "CHAN8")
	assert.NotContains(names, "PHASE16")
	assert.Equal(9+16+4+10, len(names))
}
