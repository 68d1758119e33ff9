package apu

import (
	"github.com/DHKold/konsolid8-Studio/isa"
)

// Envelope is one leg of a piecewise linear amplitude ramp: StepCount
// steps of StepLength ticks, each changing the amplitude by
// StepHeight*StepWay.
type Envelope struct {
	StepLength uint16 // 0..2047
	StepHeight uint8
	StepCount  uint8
	StepWay    int8 // -1 or +1
}

// DefaultEnvelope fills every phase slot of a fresh channel.
var DefaultEnvelope = Envelope{
	StepLength: 255,
	StepHeight: 0,
	StepCount:  255,
	StepWay:    1,
}

// EnvelopeOf converts a SETPHASE instruction into an envelope.
func EnvelopeOf(inst isa.SetPhase) Envelope {
	return Envelope{
		StepLength: inst.Length,
		StepHeight: inst.Magnitude(),
		StepCount:  inst.Count,
		StepWay:    int8(inst.Way()),
	}
}

// Delta returns the signed amplitude change of one step.
func (env Envelope) Delta() int {
	return int(env.StepHeight) * int(env.StepWay)
}
