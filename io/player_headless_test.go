//go:build headless

package io

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DHKold/konsolid8-Studio/apu"
)

func TestPlayer(t *testing.T) {
	assert := assert.New(t)

	_, err := NewPlayer(0)
	assert.ErrorIs(err, ErrSampleRate)

	pl, err := NewPlayer(44100)
	assert.NoError(err)
	assert.NoError(pl.Write(make([]apu.Sample, 10)))
	assert.Equal(10, pl.Played)
	assert.NoError(pl.Close())
	assert.ErrorIs(pl.Write(nil), ErrSinkClosed)
}
