// Package io provides the transport around the KAPU8 core: sample sinks
// (WAV files, raw PCM, audio playback), bytecode renderings and state
// snapshots.
package io

import (
	"github.com/DHKold/konsolid8-Studio/apu"
)

// Sink consumes rendered samples.
type Sink interface {
	// Write appends samples to the sink.
	Write(samples []apu.Sample) error
	// Close flushes and releases the sink.
	Close() error
}

var (
	_ Sink = (*Wav)(nil)
	_ Sink = (*Raw)(nil)
	_ Sink = (*Player)(nil)
)
