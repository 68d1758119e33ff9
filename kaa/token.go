package kaa

import (
	"fmt"
)

// TokenClass is the lexical class of a token.
type TokenClass int

const (
	TOKEN_EOL        = TokenClass(0) // end of line
	TOKEN_COMMA      = TokenClass(1) // comma
	TOKEN_INTEGER    = TokenClass(2) // integer
	TOKEN_CHANNEL    = TokenClass(3) // channel
	TOKEN_PHASE      = TokenClass(4) // phase
	TOKEN_REGISTER   = TokenClass(5) // register
	TOKEN_MNEMONIC   = TokenClass(6) // mnemonic
	TOKEN_IDENTIFIER = TokenClass(7) // identifier
)

var tokenClassName = [...]string{
	TOKEN_EOL:        "end of line",
	TOKEN_COMMA:      "comma",
	TOKEN_INTEGER:    "integer",
	TOKEN_CHANNEL:    "channel",
	TOKEN_PHASE:      "phase",
	TOKEN_REGISTER:   "register",
	TOKEN_MNEMONIC:   "mnemonic",
	TOKEN_IDENTIFIER: "identifier",
}

func (tc TokenClass) String() string {
	if tc < 0 || int(tc) >= len(tokenClassName) {
		return fmt.Sprintf("TokenClass(%d)", int(tc))
	}
	return tokenClassName[tc]
}

// Parameter returns true if the class can be a statement parameter.
func (tc TokenClass) Parameter() bool {
	switch tc {
	case TOKEN_INTEGER, TOKEN_CHANNEL, TOKEN_PHASE, TOKEN_REGISTER:
		return true
	}
	return false
}

// Token is a lexical token.
type Token struct {
	Class  TokenClass
	LineNo int    // Line of the token, starting at 1.
	Text   string // Source text; mnemonics are upper-cased.
	Value  int    // Integer value of parameter tokens.
}

func (tok Token) String() string {
	switch tok.Class {
	case TOKEN_EOL:
		return "EOL"
	case TOKEN_COMMA:
		return ","
	}
	return tok.Text
}
