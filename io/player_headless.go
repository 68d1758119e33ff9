//go:build headless

package io

import (
	"github.com/DHKold/konsolid8-Studio/apu"
)

// Player discards samples on builds without an audio device.
type Player struct {
	SampleRate int
	Played     int // Samples accepted since creation.

	closed bool
}

func NewPlayer(sampleRate int) (pl *Player, err error) {
	if sampleRate <= 0 {
		err = ErrSampleRate
		return
	}

	pl = &Player{SampleRate: sampleRate}
	return
}

func (pl *Player) Write(samples []apu.Sample) (err error) {
	if pl.closed {
		err = ErrSinkClosed
		return
	}
	pl.Played += len(samples)
	return
}

func (pl *Player) Close() (err error) {
	pl.closed = true
	return
}
