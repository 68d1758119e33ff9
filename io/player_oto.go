//go:build !headless

package io

import (
	"bytes"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/DHKold/konsolid8-Studio/apu"
)

// Player renders samples on the default audio device.
//
// Samples are buffered by Write and played, to the end, by Close.
type Player struct {
	SampleRate int

	ctx    *oto.Context
	buffer []byte
	closed bool
}

// NewPlayer opens the audio device for 8-bit stereo playback.
func NewPlayer(sampleRate int) (pl *Player, err error) {
	if sampleRate <= 0 {
		err = ErrSampleRate
		return
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatUnsignedInt8,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return
	}
	<-ready

	pl = &Player{
		SampleRate: sampleRate,
		ctx:        ctx,
	}

	return
}

// Write queues samples for playback.
func (pl *Player) Write(samples []apu.Sample) (err error) {
	if pl.closed {
		err = ErrSinkClosed
		return
	}

	for _, sample := range samples {
		pl.buffer = append(pl.buffer, sample.Left, sample.Right)
	}

	return
}

// Close plays the queued samples, and waits for playback to end.
func (pl *Player) Close() (err error) {
	if pl.closed {
		return
	}
	pl.closed = true

	if len(pl.buffer) == 0 {
		return
	}

	player := pl.ctx.NewPlayer(bytes.NewReader(pl.buffer))
	player.Play()
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}

	err = player.Close()
	pl.buffer = nil

	return
}
