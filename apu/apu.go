// Package apu interprets KAPU8 bytecode, one instruction tick at a time,
// producing a stream of stereo samples.
package apu

import (
	"iter"
	"log"

	"github.com/DHKold/konsolid8-Studio/isa"
)

// State is the complete interpreter state. It is a plain value, so it
// can be copied, persisted and restored.
type State struct {
	Pc int // Program counter.

	WaitCountdown int  // Ticks, or sample periods if synced, left to wait.
	WaitSynced    bool // WaitCountdown counts sample periods.

	LoopAddress          int // First address of the loop body.
	LoopCountdown        int // Repetitions left.
	LoopLength           int // Instructions in the loop body.
	LoopCommandCountdown int // Instructions left in the current pass.

	Channels [isa.CHANNEL_COUNT]Channel

	MixerMode MixerMode
	Divider   int // Ticks left before the next sample.

	Halted bool   // No further instruction executes.
	Ticks  uint64 // Ticks since reset.
}

// NewState returns the power-on state for a mixer mode.
func NewState(mode MixerMode) (state State) {
	for n := range state.Channels {
		state.Channels[n] = NewChannel()
	}
	state.MixerMode = mode
	return
}

// Apu is a KAPU8 interpreter instance.
type Apu struct {
	Verbose bool   // If set, enables verbose logging.
	Config  Config // Constants of this instance.

	state State
}

// New creates an APU in its power-on state.
func New(cfg Config) (apu *Apu) {
	apu = &Apu{Config: cfg}
	apu.Reset()
	return
}

// Reset returns to the power-on state.
func (apu *Apu) Reset() {
	if apu.Verbose {
		log.Printf("apu: reset")
	}
	apu.state = NewState(apu.Config.MixerMode)
}

// State returns a copy of the interpreter state.
func (apu *Apu) State() State {
	return apu.state
}

// Restore replaces the interpreter state.
func (apu *Apu) Restore(state State) {
	apu.state = state
}

// Halt stops instruction execution. Envelopes and samples keep running.
func (apu *Apu) Halt() {
	apu.state.Halted = true
}

// Halted returns true if instruction execution has stopped.
func (apu *Apu) Halted() bool {
	return apu.state.Halted
}

// Pc returns the program counter.
func (apu *Apu) Pc() int {
	return apu.state.Pc
}

// Ticks returns the ticks since reset.
func (apu *Apu) Ticks() uint64 {
	return apu.state.Ticks
}

// Channel returns a copy of a channel's live state.
func (apu *Apu) Channel(index int) (state ChannelState, err error) {
	if index < 0 || index >= isa.CHANNEL_COUNT {
		err = ErrChannelIndex
		return
	}
	state = apu.state.Channels[index].State
	return
}

// channels iterates the channels addressed by a selector.
func (apu *Apu) channels(selector uint8) iter.Seq[*Channel] {
	return func(yield func(*Channel) bool) {
		switch {
		case selector < isa.CHANNEL_COUNT:
			yield(&apu.state.Channels[selector])
		case selector == isa.CHANNEL_ALL:
			for n := range apu.state.Channels {
				if !yield(&apu.state.Channels[n]) {
					return
				}
			}
		default:
			if apu.Verbose {
				log.Printf("apu: 0x%03x: channel %d ignored", apu.state.Pc, selector)
			}
		}
	}
}

// setMask applies a SET bitmask to one flag of every channel.
func (apu *Apu) setMask(value uint8, flag func(state *ChannelState) *bool) {
	for n := range apu.state.Channels {
		*flag(&apu.state.Channels[n].State) = (value>>n)&1 == 1
	}
}

// execute runs one decoded instruction.
func (apu *Apu) execute(inst isa.Instruction) {
	st := &apu.state
	next := st.Pc + inst.Kind().Size()

	switch inst := inst.(type) {
	case isa.Wait:
		st.WaitCountdown = int(inst.Count)
		st.WaitSynced = false
	case isa.Sync:
		st.WaitCountdown = int(inst.Count)
		st.WaitSynced = true
	case isa.SetRegister:
		switch inst.Register {
		case isa.REG_CHAN_ENABLED:
			apu.setMask(inst.Value, func(state *ChannelState) *bool { return &state.Enabled })
		case isa.REG_CHAN_LEFT:
			apu.setMask(inst.Value, func(state *ChannelState) *bool { return &state.Left })
		case isa.REG_CHAN_RIGHT:
			apu.setMask(inst.Value, func(state *ChannelState) *bool { return &state.Right })
		default:
			if apu.Verbose {
				log.Printf("apu: 0x%03x: register %d ignored", st.Pc, inst.Register)
			}
		}
	case isa.SetPhase:
		env := EnvelopeOf(inst)
		for ch := range apu.channels(inst.Channel) {
			ch.State.Phases[inst.Phase] = env
		}
	case isa.SetChannelRegister:
		if inst.Register != isa.REG_PHASE_IDS {
			if apu.Verbose {
				log.Printf("apu: 0x%03x: channel register %d ignored", st.Pc, inst.Register)
			}
			break
		}
		active, max, shift := inst.PhaseIds()
		for ch := range apu.channels(inst.Channel) {
			ch.State.PhaseMaxId = max
			ch.State.PhaseIdShift = shift
			ch.Activate(active)
		}
	case isa.Loop:
		if inst.Length == 0 {
			st.LoopAddress = 0
			st.LoopCountdown = 0
			st.LoopLength = 0
			st.LoopCommandCountdown = 0
			break
		}
		st.LoopAddress = next
		st.LoopCountdown = int(inst.Count)
		st.LoopLength = int(inst.Length)
		st.LoopCommandCountdown = int(inst.Length)
	case isa.Jump:
		next = int(inst.Address)
	case isa.Save:
		for ch := range apu.channels(inst.Channel) {
			ch.Save()
		}
	case isa.Load:
		for ch := range apu.channels(inst.Channel) {
			ch.Load()
		}
	}

	st.Pc = next
}

// step runs the loop bookkeeping, then fetches and executes one
// instruction.
func (apu *Apu) step(program []byte) (err error) {
	st := &apu.state

	if st.LoopCountdown > 0 {
		if st.LoopCommandCountdown == 0 {
			st.Pc = st.LoopAddress
			st.LoopCountdown--
			st.LoopCommandCountdown = st.LoopLength
		}
		if st.LoopCommandCountdown > 0 {
			st.LoopCommandCountdown--
		}
	}

	if len(program) == 0 {
		return
	}

	if st.Pc >= len(program) || st.Pc < 0 {
		if apu.Verbose {
			log.Printf("apu: 0x%03x: out of program, restart at 0x000", st.Pc)
		}
		st.Pc = 0
	}

	inst, err := isa.Fetch(program, st.Pc)
	if err != nil {
		return
	}

	if apu.Verbose {
		log.Printf("apu: 0x%03x: %v", st.Pc, inst)
	}

	apu.execute(inst)

	return
}

// sample mixes the outputs of all channels.
func (apu *Apu) sample() Sample {
	var inputs [isa.CHANNEL_COUNT]Sample
	for n := range apu.state.Channels {
		inputs[n] = apu.state.Channels[n].Sample(&apu.Config)
	}
	return apu.Config.Mix(apu.state.MixerMode, inputs[:])
}

// Tick performs a single instruction tick over the program. When the
// sample clock fires, the mixed sample is returned with emitted set.
//
// A fatal error leaves the state at the faulting instruction.
func (apu *Apu) Tick(program []byte) (sample Sample, emitted bool, err error) {
	st := &apu.state

	switch {
	case st.Halted:
	case st.WaitCountdown > 0:
		if !st.WaitSynced || st.Divider == 0 {
			st.WaitCountdown--
		}
	default:
		err = apu.step(program)
		if err != nil {
			return
		}
	}

	st.Ticks++

	for n := range st.Channels {
		st.Channels[n].Advance(&apu.Config)
	}

	if st.Divider <= 0 {
		sample = apu.sample()
		emitted = true
		st.Divider = apu.Config.SamplingRatio
	}
	st.Divider--

	return
}

// Run ticks the program the given number of times and returns the
// emitted samples. On a fatal error, the samples emitted so far are
// returned with the error.
func (apu *Apu) Run(program []byte, ticks int) (samples []Sample, err error) {
	samples = make([]Sample, 0, ticks/max(apu.Config.SamplingRatio, 1)+1)

	for range ticks {
		var sample Sample
		var emitted bool
		sample, emitted, err = apu.Tick(program)
		if err != nil {
			return
		}
		if emitted {
			samples = append(samples, sample)
		}
	}

	return
}
