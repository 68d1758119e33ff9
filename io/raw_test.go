package io

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DHKold/konsolid8-Studio/apu"
)

func TestRaw(t *testing.T) {
	assert := assert.New(t)

	var out bytes.Buffer
	err := WriteRaw(&out, []apu.Sample{{Left: 1, Right: 2}, {Left: 255, Right: 128}})
	assert.NoError(err)
	assert.Equal([]byte{1, 2, 255, 128}, out.Bytes())

	rs := &Raw{Output: &out}
	assert.NoError(rs.Write(nil))
	assert.NoError(rs.Close())
	assert.ErrorIs(rs.Write([]apu.Sample{{}}), ErrSinkClosed)
	assert.Equal(4, out.Len())
}
