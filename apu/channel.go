package apu

import (
	"github.com/DHKold/konsolid8-Studio/isa"
)

// ChannelState is the live state of one APU channel.
//
// Phases holds 16 independent envelopes; Active is a copy of the selected
// slot, so counting down its steps never alters the table.
type ChannelState struct {
	Enabled bool
	Left    bool
	Right   bool

	Phases        [isa.PHASE_COUNT]Envelope
	PhaseMaxId    uint8
	PhaseIdShift  uint8
	PhaseActiveId uint8

	Active        Envelope
	StepCountdown uint16
	Amplitude     uint8
}

// NewChannelState returns the power-on state of a channel.
func NewChannelState() (state ChannelState) {
	for n := range state.Phases {
		state.Phases[n] = DefaultEnvelope
	}
	state.Active = state.Phases[0]
	return
}

// Channel is a channel state and its SAVE/LOAD slot.
type Channel struct {
	State ChannelState
	Saved ChannelState
}

// NewChannel returns a power-on channel.
func NewChannel() Channel {
	state := NewChannelState()
	return Channel{State: state, Saved: state}
}

// Activate selects phase id as the active phase.
func (ch *Channel) Activate(id uint8) {
	state := &ch.State
	state.PhaseActiveId = id & 0x0f
	slot := (state.PhaseActiveId + state.PhaseIdShift) % isa.PHASE_COUNT
	state.Active = state.Phases[slot]
	state.StepCountdown = state.Active.StepLength
}

// Advance moves the envelope forward by one tick.
func (ch *Channel) Advance(cfg *Config) {
	state := &ch.State
	if !state.Enabled {
		return
	}

	if state.StepCountdown > 0 {
		state.StepCountdown--
	}

	if state.StepCountdown == 0 {
		if state.Active.StepCount > 0 {
			state.Amplitude = cfg.clamp(int(state.Amplitude) + state.Active.Delta())
			state.Active.StepCount--
		}
		state.StepCountdown = state.Active.StepLength
	}

	if state.Active.StepCount == 0 {
		if state.PhaseActiveId == 0 {
			ch.Activate(state.PhaseMaxId)
		} else {
			ch.Activate(state.PhaseActiveId - 1)
		}
	}
}

// Sample returns the channel output for each stereo side.
func (ch *Channel) Sample(cfg *Config) (sample Sample) {
	state := &ch.State
	if !state.Enabled {
		mid := uint8(cfg.AmplitudeMid)
		sample = Sample{Left: mid, Right: mid}
		return
	}

	if state.Left {
		sample.Left = state.Amplitude
	}
	if state.Right {
		sample.Right = state.Amplitude
	}

	return
}

// Save copies the live state into the save slot.
func (ch *Channel) Save() {
	ch.Saved = ch.State
}

// Load replaces the live state with the save slot.
func (ch *Channel) Load() {
	ch.State = ch.Saved
}
