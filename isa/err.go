package isa

import (
	"errors"

	"github.com/DHKold/konsolid8-Studio/translate"
)

var f = translate.From

var (
	// Codec errors
	ErrOpcodeUnknown  = errors.New(f("opcode unknown"))
	ErrOpcodeMismatch = errors.New(f("opcode mismatch"))
	ErrOpcodeLength   = errors.New(f("instruction length"))
	ErrTruncated      = errors.New(f("instruction truncated"))
	ErrAddress        = errors.New(f("address out of program"))
	ErrFieldRange     = errors.New(f("field out of range"))
	ErrInstruction    = errors.New(f("instruction invalid"))
)

// ErrOpcode describes the bytes that failed to decode.
type ErrOpcode struct {
	Kind Kind
	Data []byte
}

func (eo ErrOpcode) Error() string {
	if !eo.Kind.Valid() {
		return f("bad opcode % x", eo.Data)
	}
	return f("bad %v opcode % x", eo.Kind.String(), eo.Data)
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrRange reports an instruction field outside of its bit width.
type ErrRange struct {
	Kind  Kind
	Field string
	Value int
	Min   int
	Max   int
}

func (err ErrRange) Error() string {
	return f("%v %v %d not in [%d, %d]", err.Kind.String(), err.Field, err.Value, err.Min, err.Max)
}

func (err ErrRange) Unwrap() error {
	return ErrFieldRange
}
