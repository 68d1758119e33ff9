package isa

import (
	"errors"
)

// Kind identifies one of the nine instruction kinds.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	KIND_WAIT       = Kind(0) // WAIT
	KIND_SYNC       = Kind(1) // SYNC
	KIND_SET        = Kind(2) // SET
	KIND_SETPHASE   = Kind(3) // SETPHASE
	KIND_SETCHANNEL = Kind(4) // SETCHANNEL
	KIND_LOOP       = Kind(5) // LOOP
	KIND_JUMP       = Kind(6) // JUMP
	KIND_SAVE       = Kind(7) // SAVE
	KIND_LOAD       = Kind(8) // LOAD
)

// KIND_INVALID is returned when a byte does not start any instruction.
const KIND_INVALID = Kind(-1)

// Opcode nibbles, found in the high 4 bits of an instruction's first byte.
const (
	OP_WAIT       = uint8(0b0000)
	OP_SET        = uint8(0b0001)
	OP_SETPHASE   = uint8(0b0010)
	OP_SETCHANNEL = uint8(0b0011)
	OP_LOOP       = uint8(0b0100)
	OP_JUMP       = uint8(0b0101)
	OP_SAVE       = uint8(0b0110)
	OP_LOAD       = uint8(0b0111)

	// SYNC_BYTE is the complete first byte of a SYNC instruction.
	SYNC_BYTE = uint8(0x0F)
)

// Register and selector constants shared by the assembler and the APU.
const (
	REG_CHAN_ENABLED = 0 // SET: channel enable bitmask.
	REG_CHAN_LEFT    = 1 // SET: left output bitmask.
	REG_CHAN_RIGHT   = 2 // SET: right output bitmask.

	REG_PHASE_IDS = 0 // SETCHANNEL: active, max and shift phase ids.

	CHANNEL_COUNT = 8  // Number of APU channels.
	CHANNEL_ALL   = 8  // Channel selector addressing every channel.
	PHASE_COUNT   = 16 // Phase table slots per channel.
)

var kindSize = [...]int{
	KIND_WAIT:       1,
	KIND_SYNC:       3,
	KIND_SET:        2,
	KIND_SETPHASE:   5,
	KIND_SETCHANNEL: 3,
	KIND_LOOP:       2,
	KIND_JUMP:       2,
	KIND_SAVE:       1,
	KIND_LOAD:       1,
}

var kindOpcode = [...]uint8{
	KIND_WAIT:       OP_WAIT,
	KIND_SYNC:       OP_WAIT,
	KIND_SET:        OP_SET,
	KIND_SETPHASE:   OP_SETPHASE,
	KIND_SETCHANNEL: OP_SETCHANNEL,
	KIND_LOOP:       OP_LOOP,
	KIND_JUMP:       OP_JUMP,
	KIND_SAVE:       OP_SAVE,
	KIND_LOAD:       OP_LOAD,
}

// Valid returns true if the kind is one of the nine instruction kinds.
func (kind Kind) Valid() bool {
	return kind >= KIND_WAIT && kind <= KIND_LOAD
}

// Size returns the fixed encoded size of the kind, in bytes.
func (kind Kind) Size() int {
	if !kind.Valid() {
		return 0
	}
	return kindSize[kind]
}

// Opcode returns the opcode nibble of the kind.
func (kind Kind) Opcode() uint8 {
	if !kind.Valid() {
		return 0xff
	}
	return kindOpcode[kind]
}

// KindOf classifies the first byte of an instruction.
func KindOf(first byte) (kind Kind, err error) {
	switch first >> 4 {
	case OP_WAIT:
		if first == SYNC_BYTE {
			kind = KIND_SYNC
		} else {
			kind = KIND_WAIT
		}
	case OP_SET:
		kind = KIND_SET
	case OP_SETPHASE:
		kind = KIND_SETPHASE
	case OP_SETCHANNEL:
		kind = KIND_SETCHANNEL
	case OP_LOOP:
		kind = KIND_LOOP
	case OP_JUMP:
		kind = KIND_JUMP
	case OP_SAVE:
		kind = KIND_SAVE
	case OP_LOAD:
		kind = KIND_LOAD
	default:
		kind = KIND_INVALID
		err = errors.Join(ErrOpcodeUnknown, ErrOpcode{Kind: kind, Data: []byte{first}})
	}

	return
}
