package isa

import (
	"errors"
	"fmt"
)

// Instruction is one of the nine KAPU8 instructions.
//
// The set of implementations is closed: Wait, Sync, SetRegister, SetPhase,
// SetChannelRegister, Loop, Jump, Save and Load.
type Instruction interface {
	fmt.Stringer
	// Kind returns the instruction kind.
	Kind() Kind

	validate() error
	encode() []byte
}

// Wait suspends execution for Count instruction cycles.
type Wait struct {
	Count uint8 // 0..14
}

// Sync suspends execution for Count sample periods.
type Sync struct {
	Count uint16
}

// SetRegister writes a global channel bitmask register.
type SetRegister struct {
	Register uint8 // 0..15
	Value    uint8
}

// SetPhase stores an envelope into a channel's phase table.
//
// Height is signed; its sign is encoded as the step way bit.
type SetPhase struct {
	Channel uint8  // 0..15
	Phase   uint8  // 0..15
	Length  uint16 // 0..2047
	Height  int16  // -255..255
	Count   uint8
}

// SetChannelRegister writes a per-channel register.
type SetChannelRegister struct {
	Channel  uint8  // 0..15
	Register uint8  // 0..15
	Value    uint16 // 0..4095
}

// Loop repeats the next Length instructions Count additional times.
type Loop struct {
	Count  uint8 // 0..63
	Length uint8 // 0..63
}

// Jump sets the program counter.
type Jump struct {
	Address uint16 // 0..4095
}

// Save snapshots a channel's state into its save slot.
type Save struct {
	Channel uint8 // 0..15
}

// Load restores a channel's state from its save slot.
type Load struct {
	Channel uint8 // 0..15
}

var (
	_ Instruction = Wait{}
	_ Instruction = Sync{}
	_ Instruction = SetRegister{}
	_ Instruction = SetPhase{}
	_ Instruction = SetChannelRegister{}
	_ Instruction = Loop{}
	_ Instruction = Jump{}
	_ Instruction = Save{}
	_ Instruction = Load{}
)

// checkField returns an ErrRange if value is outside of [min, max].
func checkField(kind Kind, field string, value, min, max int) (err error) {
	if value < min || value > max {
		err = ErrRange{Kind: kind, Field: field, Value: value, Min: min, Max: max}
	}
	return
}

// NewWait creates a WAIT instruction. A count of 0 is a NOOP.
func NewWait(count int) (inst Wait, err error) {
	err = checkField(KIND_WAIT, "count", count, 0, 0x0e)
	if err != nil {
		return
	}
	inst = Wait{Count: uint8(count)}
	return
}

// NewSync creates a SYNC instruction.
func NewSync(count int) (inst Sync, err error) {
	err = checkField(KIND_SYNC, "count", count, 0, 0xffff)
	if err != nil {
		return
	}
	inst = Sync{Count: uint16(count)}
	return
}

// NewSetRegister creates a SET instruction.
func NewSetRegister(register, value int) (inst SetRegister, err error) {
	err = errors.Join(
		checkField(KIND_SET, "register", register, 0, 0x0f),
		checkField(KIND_SET, "value", value, 0, 0xff),
	)
	if err != nil {
		return
	}
	inst = SetRegister{Register: uint8(register), Value: uint8(value)}
	return
}

// NewSetPhase creates a SETPHASE instruction. A negative height encodes a
// descending envelope.
func NewSetPhase(channel, phase, length, height, count int) (inst SetPhase, err error) {
	err = errors.Join(
		checkField(KIND_SETPHASE, "channel", channel, 0, 0x0f),
		checkField(KIND_SETPHASE, "phase", phase, 0, 0x0f),
		checkField(KIND_SETPHASE, "length", length, 0, 0x7ff),
		checkField(KIND_SETPHASE, "height", height, -0xff, 0xff),
		checkField(KIND_SETPHASE, "count", count, 0, 0xff),
	)
	if err != nil {
		return
	}
	inst = SetPhase{
		Channel: uint8(channel),
		Phase:   uint8(phase),
		Length:  uint16(length),
		Height:  int16(height),
		Count:   uint8(count),
	}
	return
}

// NewSetChannelRegister creates a SETCHANNEL instruction.
func NewSetChannelRegister(channel, register, value int) (inst SetChannelRegister, err error) {
	err = errors.Join(
		checkField(KIND_SETCHANNEL, "channel", channel, 0, 0x0f),
		checkField(KIND_SETCHANNEL, "register", register, 0, 0x0f),
		checkField(KIND_SETCHANNEL, "value", value, 0, 0xfff),
	)
	if err != nil {
		return
	}
	inst = SetChannelRegister{Channel: uint8(channel), Register: uint8(register), Value: uint16(value)}
	return
}

// NewLoop creates a LOOP instruction.
func NewLoop(count, length int) (inst Loop, err error) {
	err = errors.Join(
		checkField(KIND_LOOP, "count", count, 0, 0x3f),
		checkField(KIND_LOOP, "length", length, 0, 0x3f),
	)
	if err != nil {
		return
	}
	inst = Loop{Count: uint8(count), Length: uint8(length)}
	return
}

// NewJump creates a JUMP instruction.
func NewJump(address int) (inst Jump, err error) {
	err = checkField(KIND_JUMP, "address", address, 0, 0xfff)
	if err != nil {
		return
	}
	inst = Jump{Address: uint16(address)}
	return
}

// NewSave creates a SAVE instruction.
func NewSave(channel int) (inst Save, err error) {
	err = checkField(KIND_SAVE, "channel", channel, 0, 0x0f)
	if err != nil {
		return
	}
	inst = Save{Channel: uint8(channel)}
	return
}

// NewLoad creates a LOAD instruction.
func NewLoad(channel int) (inst Load, err error) {
	err = checkField(KIND_LOAD, "channel", channel, 0, 0x0f)
	if err != nil {
		return
	}
	inst = Load{Channel: uint8(channel)}
	return
}

// PhaseIds packs the active, max and shift phase ids of REG_PHASE_IDS.
func PhaseIds(active, max, shift int) (value int) {
	return (active&0xf)<<8 | (max&0xf)<<4 | (shift & 0xf)
}

// PhaseIds unpacks the value as REG_PHASE_IDS fields.
func (inst SetChannelRegister) PhaseIds() (active, max, shift uint8) {
	active = uint8(inst.Value>>8) & 0xf
	max = uint8(inst.Value>>4) & 0xf
	shift = uint8(inst.Value) & 0xf
	return
}

// Way returns +1 for an ascending envelope, -1 for a descending one.
func (inst SetPhase) Way() int {
	if inst.Height < 0 {
		return -1
	}
	return 1
}

// Magnitude returns the unsigned step height.
func (inst SetPhase) Magnitude() uint8 {
	if inst.Height < 0 {
		return uint8(-inst.Height)
	}
	return uint8(inst.Height)
}

func (Wait) Kind() Kind               { return KIND_WAIT }
func (Sync) Kind() Kind               { return KIND_SYNC }
func (SetRegister) Kind() Kind        { return KIND_SET }
func (SetPhase) Kind() Kind           { return KIND_SETPHASE }
func (SetChannelRegister) Kind() Kind { return KIND_SETCHANNEL }
func (Loop) Kind() Kind               { return KIND_LOOP }
func (Jump) Kind() Kind               { return KIND_JUMP }
func (Save) Kind() Kind               { return KIND_SAVE }
func (Load) Kind() Kind               { return KIND_LOAD }

func (inst Wait) validate() error {
	return checkField(KIND_WAIT, "count", int(inst.Count), 0, 0x0e)
}

func (inst Sync) validate() error {
	return nil
}

func (inst SetRegister) validate() error {
	return checkField(KIND_SET, "register", int(inst.Register), 0, 0x0f)
}

func (inst SetPhase) validate() error {
	return errors.Join(
		checkField(KIND_SETPHASE, "channel", int(inst.Channel), 0, 0x0f),
		checkField(KIND_SETPHASE, "phase", int(inst.Phase), 0, 0x0f),
		checkField(KIND_SETPHASE, "length", int(inst.Length), 0, 0x7ff),
		checkField(KIND_SETPHASE, "height", int(inst.Height), -0xff, 0xff),
	)
}

func (inst SetChannelRegister) validate() error {
	return errors.Join(
		checkField(KIND_SETCHANNEL, "channel", int(inst.Channel), 0, 0x0f),
		checkField(KIND_SETCHANNEL, "register", int(inst.Register), 0, 0x0f),
		checkField(KIND_SETCHANNEL, "value", int(inst.Value), 0, 0xfff),
	)
}

func (inst Loop) validate() error {
	return errors.Join(
		checkField(KIND_LOOP, "count", int(inst.Count), 0, 0x3f),
		checkField(KIND_LOOP, "length", int(inst.Length), 0, 0x3f),
	)
}

func (inst Jump) validate() error {
	return checkField(KIND_JUMP, "address", int(inst.Address), 0, 0xfff)
}

func (inst Save) validate() error {
	return checkField(KIND_SAVE, "channel", int(inst.Channel), 0, 0x0f)
}

func (inst Load) validate() error {
	return checkField(KIND_LOAD, "channel", int(inst.Channel), 0, 0x0f)
}

// 0000cccc
func (inst Wait) encode() []byte {
	return []byte{OP_WAIT<<4 | inst.Count}
}

// 00001111 llllllll hhhhhhhh
func (inst Sync) encode() []byte {
	return []byte{SYNC_BYTE, uint8(inst.Count), uint8(inst.Count >> 8)}
}

// 0001rrrr vvvvvvvv
func (inst SetRegister) encode() []byte {
	return []byte{OP_SET<<4 | inst.Register, inst.Value}
}

// 0010cccc ppppwlll llllllll hhhhhhhh nnnnnnnn
func (inst SetPhase) encode() []byte {
	var way uint8
	if inst.Height >= 0 {
		way = 1
	}
	return []byte{
		OP_SETPHASE<<4 | inst.Channel,
		inst.Phase<<4 | way<<3 | uint8(inst.Length>>8)&0x07,
		uint8(inst.Length),
		inst.Magnitude(),
		inst.Count,
	}
}

// 0011cccc rrrrvvvv vvvvvvvv
func (inst SetChannelRegister) encode() []byte {
	return []byte{
		OP_SETCHANNEL<<4 | inst.Channel,
		inst.Register<<4 | uint8(inst.Value>>8)&0x0f,
		uint8(inst.Value),
	}
}

// 0100nnnn nnllllll
func (inst Loop) encode() []byte {
	return []byte{
		OP_LOOP<<4 | (inst.Count>>2)&0x0f,
		(inst.Count&0x03)<<6 | inst.Length&0x3f,
	}
}

// 0101aaaa aaaaaaaa
func (inst Jump) encode() []byte {
	return []byte{OP_JUMP<<4 | uint8(inst.Address>>8)&0x0f, uint8(inst.Address)}
}

// 0110cccc
func (inst Save) encode() []byte {
	return []byte{OP_SAVE<<4 | inst.Channel}
}

// 0111cccc
func (inst Load) encode() []byte {
	return []byte{OP_LOAD<<4 | inst.Channel}
}

// Encode returns the byte encoding of an instruction. Out-of-range fields
// are rejected, never truncated.
func Encode(inst Instruction) (data []byte, err error) {
	if inst == nil {
		err = ErrInstruction
		return
	}

	err = inst.validate()
	if err != nil {
		return
	}

	data = inst.encode()
	return
}

// Append appends the encoding of inst to data.
func Append(data []byte, inst Instruction) ([]byte, error) {
	code, err := Encode(inst)
	if err != nil {
		return data, err
	}
	return append(data, code...), nil
}

// Decode decodes data as an instruction of the requested kind.
//
// The opcode of data must match the kind, and data must be exactly the
// kind's size.
func Decode(kind Kind, data []byte) (inst Instruction, err error) {
	if !kind.Valid() {
		err = ErrInstruction
		return
	}

	if len(data) != kind.Size() {
		err = errors.Join(ErrOpcodeLength, ErrOpcode{Kind: kind, Data: data})
		return
	}

	actual, err := KindOf(data[0])
	if err != nil {
		return
	}
	if actual != kind {
		err = errors.Join(ErrOpcodeMismatch, ErrOpcode{Kind: kind, Data: data})
		return
	}

	switch kind {
	case KIND_WAIT:
		inst = Wait{Count: data[0] & 0x0f}
	case KIND_SYNC:
		inst = Sync{Count: uint16(data[1]) | uint16(data[2])<<8}
	case KIND_SET:
		inst = SetRegister{Register: data[0] & 0x0f, Value: data[1]}
	case KIND_SETPHASE:
		height := int16(data[3])
		if (data[1]>>3)&1 == 0 {
			height = -height
		}
		inst = SetPhase{
			Channel: data[0] & 0x0f,
			Phase:   data[1] >> 4,
			Length:  uint16(data[1]&0x07)<<8 | uint16(data[2]),
			Height:  height,
			Count:   data[4],
		}
	case KIND_SETCHANNEL:
		inst = SetChannelRegister{
			Channel:  data[0] & 0x0f,
			Register: data[1] >> 4,
			Value:    uint16(data[1]&0x0f)<<8 | uint16(data[2]),
		}
	case KIND_LOOP:
		inst = Loop{
			Count:  (data[0]&0x0f)<<2 | data[1]>>6,
			Length: data[1] & 0x3f,
		}
	case KIND_JUMP:
		inst = Jump{Address: uint16(data[0]&0x0f)<<8 | uint16(data[1])}
	case KIND_SAVE:
		inst = Save{Channel: data[0] & 0x0f}
	case KIND_LOAD:
		inst = Load{Channel: data[0] & 0x0f}
	}

	return
}

// Fetch decodes the instruction starting at address in program.
func Fetch(program []byte, address int) (inst Instruction, err error) {
	if address < 0 || address >= len(program) {
		err = ErrAddress
		return
	}

	kind, err := KindOf(program[address])
	if err != nil {
		return
	}

	end := address + kind.Size()
	if end > len(program) {
		err = errors.Join(ErrTruncated, ErrOpcode{Kind: kind, Data: program[address:]})
		return
	}

	return Decode(kind, program[address:end])
}
