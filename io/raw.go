package io

import (
	"io"

	"github.com/DHKold/konsolid8-Studio/apu"
)

// Raw writes samples as interleaved unsigned 8-bit left, right bytes.
type Raw struct {
	Output io.Writer
}

// Write appends samples to the output.
func (rs *Raw) Write(samples []apu.Sample) (err error) {
	if rs.Output == nil {
		err = ErrSinkClosed
		return
	}

	data := make([]byte, 0, len(samples)*2)
	for _, sample := range samples {
		data = append(data, sample.Left, sample.Right)
	}

	_, err = rs.Output.Write(data)
	return
}

// Close releases the output, closing it if it is a Closer.
func (rs *Raw) Close() (err error) {
	if closer, ok := rs.Output.(io.Closer); ok {
		err = closer.Close()
	}
	rs.Output = nil
	return
}

// WriteRaw writes samples as interleaved left, right bytes.
func WriteRaw(output io.Writer, samples []apu.Sample) error {
	rs := &Raw{Output: output}
	return rs.Write(samples)
}
