package isa

import (
	"fmt"
)

var setRegisterName = map[uint8]string{
	REG_CHAN_ENABLED: "REG_CHAN_ENABLED",
	REG_CHAN_LEFT:    "REG_CHAN_LEFT",
	REG_CHAN_RIGHT:   "REG_CHAN_RIGHT",
}

// ChannelName returns the assembler symbol for a channel selector.
func ChannelName(channel uint8) string {
	switch {
	case channel < CHANNEL_COUNT:
		return fmt.Sprintf("CHAN%d", channel)
	case channel == CHANNEL_ALL:
		return "CHAN_ALL"
	default:
		return fmt.Sprintf("%d", channel)
	}
}

// PhaseName returns the assembler symbol for a phase slot.
func PhaseName(phase uint8) string {
	return fmt.Sprintf("PHASE%d", phase&0x0f)
}

func (inst Wait) String() string {
	if inst.Count == 0 {
		return "NOOP"
	}
	return fmt.Sprintf("WAIT %d", inst.Count)
}

func (inst Sync) String() string {
	return fmt.Sprintf("SYNC %d", inst.Count)
}

func (inst SetRegister) String() string {
	reg, ok := setRegisterName[inst.Register]
	if !ok {
		reg = fmt.Sprintf("%d", inst.Register)
	}
	return fmt.Sprintf("SET %v, 0b%08b", reg, inst.Value)
}

func (inst SetPhase) String() string {
	return fmt.Sprintf("SETPHASE %v, %v, %d, %d, %d",
		ChannelName(inst.Channel), PhaseName(inst.Phase),
		inst.Length, inst.Height, inst.Count)
}

func (inst SetChannelRegister) String() string {
	reg := fmt.Sprintf("%d", inst.Register)
	if inst.Register == REG_PHASE_IDS {
		reg = "REG_PHASE_IDS"
	}
	return fmt.Sprintf("SETCHANNEL %v, %v, 0x%03x", ChannelName(inst.Channel), reg, inst.Value)
}

func (inst Loop) String() string {
	return fmt.Sprintf("LOOP %d, %d", inst.Count, inst.Length)
}

func (inst Jump) String() string {
	return fmt.Sprintf("JUMP 0x%03x", inst.Address)
}

func (inst Save) String() string {
	return fmt.Sprintf("SAVE %v", ChannelName(inst.Channel))
}

func (inst Load) String() string {
	return fmt.Sprintf("LOAD %v", ChannelName(inst.Channel))
}
