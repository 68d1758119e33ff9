package io

import (
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/DHKold/konsolid8-Studio/apu"
)

const (
	WAV_BIT_DEPTH = 8 // Unsigned 8-bit PCM.
	WAV_CHANNELS  = 2 // Interleaved left, right.
	WAV_FORMAT    = 1 // PCM.
)

// Wav writes samples as an 8-bit stereo PCM WAV stream.
type Wav struct {
	SampleRate int

	enc    *wav.Encoder
	format *audio.Format
}

// NewWav creates a WAV sink. The header is completed on Close, so the
// output must be seekable.
func NewWav(output io.WriteSeeker, sampleRate int) (ws *Wav, err error) {
	if sampleRate <= 0 {
		err = ErrSampleRate
		return
	}

	ws = &Wav{
		SampleRate: sampleRate,
		enc:        wav.NewEncoder(output, sampleRate, WAV_BIT_DEPTH, WAV_CHANNELS, WAV_FORMAT),
		format: &audio.Format{
			NumChannels: WAV_CHANNELS,
			SampleRate:  sampleRate,
		},
	}

	return
}

// Write appends samples to the WAV data chunk.
func (ws *Wav) Write(samples []apu.Sample) (err error) {
	if ws.enc == nil {
		err = ErrSinkClosed
		return
	}

	buf := &audio.IntBuffer{
		Format:         ws.format,
		Data:           make([]int, 0, len(samples)*WAV_CHANNELS),
		SourceBitDepth: WAV_BIT_DEPTH,
	}
	for _, sample := range samples {
		buf.Data = append(buf.Data, int(sample.Left), int(sample.Right))
	}

	return ws.enc.Write(buf)
}

// Close completes the WAV header.
func (ws *Wav) Close() (err error) {
	if ws.enc == nil {
		return
	}

	err = ws.enc.Close()
	ws.enc = nil

	return
}

// WriteWav writes a complete WAV stream of samples.
func WriteWav(output io.WriteSeeker, samples []apu.Sample, sampleRate int) (err error) {
	ws, err := NewWav(output, sampleRate)
	if err != nil {
		return
	}

	err = ws.Write(samples)
	if err != nil {
		ws.Close()
		return
	}

	return ws.Close()
}
