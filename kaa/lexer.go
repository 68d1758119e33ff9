package kaa

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/DHKold/konsolid8-Studio/internal"
	"github.com/DHKold/konsolid8-Studio/isa"
)

// symbol is a predefined name and its value.
type symbol struct {
	Class TokenClass
	Value int
}

func channelSymbols() iter.Seq2[string, symbol] {
	return func(yield func(string, symbol) bool) {
		for n := range isa.CHANNEL_COUNT {
			if !yield(fmt.Sprintf("CHAN%d", n), symbol{TOKEN_CHANNEL, n}) {
				return
			}
		}
		yield("CHAN_ALL", symbol{TOKEN_CHANNEL, isa.CHANNEL_ALL})
	}
}

func phaseSymbols() iter.Seq2[string, symbol] {
	return func(yield func(string, symbol) bool) {
		for n := range isa.PHASE_COUNT {
			if !yield(fmt.Sprintf("PHASE%d", n), symbol{TOKEN_PHASE, n}) {
				return
			}
		}
	}
}

var registerSymbols = map[string]symbol{
	"REG_CHAN_ENABLED": {TOKEN_REGISTER, isa.REG_CHAN_ENABLED},
	"REG_CHAN_LEFT":    {TOKEN_REGISTER, isa.REG_CHAN_LEFT},
	"REG_CHAN_RIGHT":   {TOKEN_REGISTER, isa.REG_CHAN_RIGHT},
	"REG_PHASE_IDS":    {TOKEN_REGISTER, isa.REG_PHASE_IDS},
}

// symbolTable maps upper-case names to predefined values.
var symbolTable = maps.Collect(internal.Concat2(
	channelSymbols(),
	phaseSymbols(),
	maps.All(registerSymbols),
))

// Symbols iterates every predefined name: value symbols, then mnemonics.
func Symbols() iter.Seq[string] {
	return internal.Concat(
		internal.SortedKeys(symbolTable),
		internal.SortedKeys(generators),
	)
}

var (
	reDecimal    = regexp.MustCompile(`^([+-]?[0-9]+)(?:[eE]([0-9]+))?$`)
	reIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// parseInteger parses an integer literal.
func parseInteger(word string) (value int, err error) {
	lower := strings.ToLower(word)

	var digits string
	var base int
	switch {
	case strings.HasPrefix(lower, "0x"):
		digits, base = strings.ReplaceAll(lower[2:], "_", ""), 16
	case strings.HasPrefix(lower, "0b"):
		digits, base = strings.ReplaceAll(lower[2:], "_", ""), 2
	case strings.HasPrefix(lower, "0o"):
		digits, base = lower[2:], 8
	}

	if base != 0 {
		var v64 int64
		if len(digits) == 0 || digits[0] == '+' || digits[0] == '-' {
			err = ErrNumber
			return
		}
		v64, err = strconv.ParseInt(digits, base, 32)
		if err != nil {
			err = errors.Join(ErrNumber, err)
			return
		}
		value = int(v64)
		return
	}

	match := reDecimal.FindStringSubmatch(lower)
	if match == nil {
		err = ErrNumber
		return
	}

	v64, err := strconv.ParseInt(match[1], 10, 32)
	if err != nil {
		err = errors.Join(ErrNumber, err)
		return
	}

	if len(match[2]) != 0 {
		var exp int
		exp, err = strconv.Atoi(match[2])
		if err != nil {
			err = errors.Join(ErrNumber, err)
			return
		}
		for range exp {
			if v64 == 0 {
				break
			}
			v64 *= 10
			if v64 > math.MaxInt32 || v64 < math.MinInt32 {
				err = ErrNumber
				return
			}
		}
	}

	value = int(v64)
	return
}

// Lexer tokenizes KAA source text.
type Lexer struct {
	source string
}

// NewLexer creates a lexer over the source text.
func NewLexer(source string) *Lexer {
	return &Lexer{source: source}
}

func isWordRune(c byte) bool {
	return c == '_' || c == '+' || c == '-' ||
		(c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z')
}

// classify turns a word into a token.
func classify(word string, lineno int) (tok Token, err error) {
	tok = Token{LineNo: lineno, Text: word}

	c := word[0]
	if c == '+' || c == '-' || (c >= '0' && c <= '9') {
		tok.Class = TOKEN_INTEGER
		tok.Value, err = parseInteger(word)
		if err != nil {
			err = ErrToken{Token: tok, Err: err}
		}
		return
	}

	upper := strings.ToUpper(word)
	if sym, ok := symbolTable[upper]; ok {
		tok.Class = sym.Class
		tok.Value = sym.Value
		return
	}

	if _, ok := generators[upper]; ok {
		tok.Class = TOKEN_MNEMONIC
		tok.Text = upper
		return
	}

	if !reIdentifier.MatchString(word) {
		tok.Class = TOKEN_IDENTIFIER
		err = ErrToken{Token: tok, Err: ErrCharacter}
		return
	}

	tok.Class = TOKEN_IDENTIFIER
	return
}

// Tokens iterates the tokens of the source. Each iteration restarts from
// the beginning of the source. A lexical error is the last item yielded.
func (lex *Lexer) Tokens() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		src := lex.source
		lineno := 1
		last := TOKEN_EOL
		started := false

		emit := func(tok Token, err error) bool {
			started = true
			last = tok.Class
			return yield(tok, err)
		}

		for n := 0; n < len(src); {
			c := src[n]
			switch {
			case c == ' ' || c == '\t' || c == '\r':
				n++
			case c == '#':
				for n < len(src) && src[n] != '\n' {
					n++
				}
			case c == '\n':
				if started && last != TOKEN_EOL {
					if !emit(Token{Class: TOKEN_EOL, LineNo: lineno}, nil) {
						return
					}
				}
				lineno++
				n++
			case c == ',':
				if !emit(Token{Class: TOKEN_COMMA, LineNo: lineno, Text: ","}, nil) {
					return
				}
				n++
			case isWordRune(c):
				start := n
				for n < len(src) && isWordRune(src[n]) {
					n++
				}
				tok, err := classify(src[start:n], lineno)
				if !emit(tok, err) || err != nil {
					return
				}
			default:
				tok := Token{LineNo: lineno, Text: string(c)}
				yield(tok, ErrToken{Token: tok, Err: ErrCharacter})
				return
			}
		}

		if started && last != TOKEN_EOL {
			yield(Token{Class: TOKEN_EOL, LineNo: lineno}, nil)
		}
	}
}
