package kaa

import (
	"errors"

	"github.com/DHKold/konsolid8-Studio/translate"
)

var f = translate.From

var (
	// Lexer errors
	ErrCharacter = errors.New(f("character unexpected"))
	ErrNumber    = errors.New(f("number invalid"))

	// Parser errors
	ErrStatement       = errors.New(f("mnemonic expected"))
	ErrParameter       = errors.New(f("parameter expected"))
	ErrSeparator       = errors.New(f("comma or end of line expected"))
	ErrMnemonicUnknown = errors.New(f("mnemonic unknown"))
	ErrParameterCount  = errors.New(f("parameter count"))
)

// ErrToken reports the token where a syntax error was found.
type ErrToken struct {
	Token Token
	Err   error
}

func (err ErrToken) Error() string {
	return f("%v '%v': %v", err.Token.Class.String(), err.Token.String(), err.Err)
}

func (err ErrToken) Unwrap() error {
	return err.Err
}

// ErrArity reports a mnemonic called with the wrong number of parameters.
type ErrArity struct {
	Mnemonic string
	Want     int
	Got      int
}

func (err ErrArity) Error() string {
	return f("%v takes %d parameters, not %d", err.Mnemonic, err.Want, err.Got)
}

func (err ErrArity) Unwrap() error {
	return ErrParameterCount
}

// ErrSyntax locates an assembler error in the source.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
